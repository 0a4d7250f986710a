/*
Package reconcile holds the one business decision of this program: which
records need updating. It is a pure function of its inputs and performs no
I/O, so it is testable without any network mocking and trivially idempotent,
which is what makes re-invocation by an external scheduler a safe retry
mechanism.
*/
package reconcile

import (
	"net"
)

// Snapshot is the observed state of one managed record, as read directly
// from an authoritative server. IP is only meaningful when Found is true.
type Snapshot struct {
	Label string // The dynamic item, e.g. "a"
	Name  string // The full record name, e.g. "a.domain.tld."
	IP    net.IP
	Found bool
}

// Change is one record which needs its A record set to To. From is nil when
// the record did not exist.
type Change struct {
	Label string
	Name  string
	From  net.IP
	To    net.IP
}

// Plan returns the records requiring an update: those which do not exist and
// those whose value differs from current. Comparison is exact address
// equality, no prefix or subnet matching. The result preserves the input
// order so log output stays deterministic.
func Plan(current net.IP, snapshots []Snapshot) []Change {
	var changes []Change
	for _, s := range snapshots {
		if s.Found && s.IP.Equal(current) {
			continue
		}
		changes = append(changes, Change{Label: s.Label, Name: s.Name, From: s.IP, To: current})
	}

	return changes
}
