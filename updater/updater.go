/*
Package updater drives one run of the pipeline: discover the public IP, find
the authoritative servers, read the current state of every managed record,
decide what differs and push updates to the registrar. A run is stateless;
nothing survives it, which is why the external scheduler re-invoking the
program is a sufficient retry mechanism.
*/
package updater

import (
	"context"
	"net"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/bwolf/gandi-dns-update/config"
	"github.com/bwolf/gandi-dns-update/discover"
	"github.com/bwolf/gandi-dns-update/dnsutil"
	"github.com/bwolf/gandi-dns-update/reconcile"
)

// Registrar is the write side of the pipeline. *gandi.Client implements it.
type Registrar interface {
	UpdateARecord(ctx context.Context, domain, name, ip string) error
}

type Outcome int

const (
	// UpToDate means the record already held the current public IP.
	UpToDate Outcome = iota
	// Updated means an update was issued and the registrar accepted it.
	Updated
	// Skipped means the record could not be read so no update decision was
	// possible. Deliberately neither "needs update" nor "current".
	Skipped
	// UpdateFailed means an update was issued and the registrar rejected it.
	UpdateFailed
)

func (o Outcome) String() string {
	switch o {
	case UpToDate:
		return "up-to-date"
	case Updated:
		return "updated"
	case Skipped:
		return "skipped"
	case UpdateFailed:
		return "update-failed"
	}

	return "unknown"
}

// ItemResult is the fate of one dynamic item within a run.
type ItemResult struct {
	Label   string
	Name    string
	Outcome Outcome
	Err     error // Set for Skipped and UpdateFailed

	// Observed record state, carried along to feed the reconciler.
	snapshotIP    net.IP
	snapshotFound bool
}

// Result aggregates a whole run. Items appear in configuration order.
type Result struct {
	PublicIP net.IP
	Items    []ItemResult
}

// Count returns how many items ended with the given outcome.
func (r *Result) Count(o Outcome) int {
	n := 0
	for _, item := range r.Items {
		if item.Outcome == o {
			n++
		}
	}

	return n
}

// OK reports whether every item was either current or successfully updated.
func (r *Result) OK() bool {
	return r.Count(Skipped) == 0 && r.Count(UpdateFailed) == 0
}

type Updater struct {
	cfg       *config.Config
	disc      *discover.Discoverer
	registrar Registrar
	logger    zerolog.Logger
	dryRun    bool
}

func New(cfg *config.Config, disc *discover.Discoverer, registrar Registrar,
	logger zerolog.Logger, dryRun bool) *Updater {

	return &Updater{cfg: cfg, disc: disc, registrar: registrar, logger: logger, dryRun: dryRun}
}

// Run executes one reconciliation pass. The returned error is fatal - a
// failed prerequisite which stopped the run before any per-item work
// started. Per-item failures are not fatal; they are reported in the Result
// so one broken record cannot shield the others from their updates.
func (t *Updater) Run(ctx context.Context) (*Result, error) {
	ip, err := t.disc.PublicIP(ctx, t.cfg.OverrideIP)
	if err != nil {
		return nil, errors.Wrap(err, "public IP discovery")
	}

	servers, err := t.disc.AuthoritativeServers(ctx, t.cfg.FQDN)
	if err != nil {
		return nil, errors.Wrap(err, "authoritative server resolution")
	}

	result := &Result{PublicIP: ip, Items: t.readAll(ctx, servers)}

	var snapshots []reconcile.Snapshot
	for _, item := range result.Items {
		if item.Outcome == Skipped {
			continue
		}
		snapshots = append(snapshots, t.snapshotOf(item))
	}

	changes := reconcile.Plan(ip, snapshots)
	for _, item := range result.Items {
		if item.Outcome != Skipped && !planned(changes, item.Label) {
			t.logger.Info().Str("name", item.Name).Stringer("ip", ip).
				Msg("record is up to date")
		}
	}

	t.updateAll(ctx, result, changes)

	return result, nil
}

// readAll queries the current state of every item, concurrently since the
// items are independent. Each goroutine owns one slot of the result slice so
// aggregation needs no further synchronization beyond the WaitGroup.
func (t *Updater) readAll(ctx context.Context, servers []string) []ItemResult {
	items := make([]ItemResult, len(t.cfg.Items))

	var wg sync.WaitGroup
	for ix, label := range t.cfg.Items {
		wg.Add(1)
		go func(ix int, label string) {
			defer wg.Done()
			name := dnsutil.ItemName(label, t.cfg.FQDN)
			t.logger.Info().Str("domain", t.cfg.FQDN).Str("name", name).
				Msg("checking dynamic record")

			ip, found, err := t.disc.ReadRecord(ctx, servers, name)
			item := ItemResult{Label: label, Name: name}
			switch {
			case err != nil:
				item.Outcome = Skipped
				item.Err = err
			case found:
				item.snapshotIP = ip
				item.snapshotFound = true
			}
			items[ix] = item
		}(ix, label)
	}
	wg.Wait()

	return items
}

func (t *Updater) snapshotOf(item ItemResult) reconcile.Snapshot {
	return reconcile.Snapshot{
		Label: item.Label,
		Name:  item.Name,
		IP:    item.snapshotIP,
		Found: item.snapshotFound,
	}
}

func planned(changes []reconcile.Change, label string) bool {
	for _, c := range changes {
		if c.Label == label {
			return true
		}
	}

	return false
}

// updateAll pushes every planned change to the registrar, concurrently. One
// rejected update must not prevent the remaining updates from being
// attempted; each failure lands in its own item's result.
func (t *Updater) updateAll(ctx context.Context, result *Result, changes []reconcile.Change) {
	domain := dnsutil.ChompCanonicalName(t.cfg.FQDN)

	index := make(map[string]int, len(result.Items))
	for ix, item := range result.Items {
		index[item.Label] = ix
	}

	var wg sync.WaitGroup
	for _, change := range changes {
		wg.Add(1)
		go func(change reconcile.Change) {
			defer wg.Done()
			ix := index[change.Label]

			ev := t.logger.Info().Str("name", change.Name).Stringer("to", change.To)
			if change.From != nil {
				ev = ev.Stringer("from", change.From)
			}

			if t.dryRun {
				ev.Msg("record needs update (dry-run, not applied)")
				result.Items[ix].Outcome = Updated
				return
			}
			ev.Msg("record needs update")

			err := t.registrar.UpdateARecord(ctx, domain, change.Label, change.To.String())
			if err != nil {
				t.logger.Error().Err(err).Str("name", change.Name).Msg("record update failed")
				result.Items[ix].Outcome = UpdateFailed
				result.Items[ix].Err = err
				return
			}
			result.Items[ix].Outcome = Updated
		}(change)
	}
	wg.Wait()
}
