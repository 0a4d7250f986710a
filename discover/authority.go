package discover

import (
	"context"
	"net"

	"github.com/pkg/errors"
)

// AuthoritativeServers returns the addresses (host:port) of the name servers
// which are authoritative for fqdn, resolved fresh via the trusted recursive
// server. A name server whose own address cannot be resolved is logged and
// skipped; the step only fails when not a single usable address remains.
func (t *Discoverer) AuthoritativeServers(ctx context.Context, fqdn string) ([]string, error) {
	hosts, err := t.res.LookupNS(ctx, t.recursive, fqdn)
	if err != nil {
		return nil, errors.Wrapf(err, "resolving NS of %s via %s", fqdn, t.recursive)
	}

	var servers []string
	var lastErr error
	for _, host := range hosts {
		ips, err := t.res.LookupA(ctx, t.recursive, host)
		if err != nil {
			t.logger.Warn().Err(err).Str("ns", host).Msg("skipping unresolvable name server")
			lastErr = err
			continue
		}
		for _, ip := range ips {
			servers = append(servers, net.JoinHostPort(ip.String(), "53"))
		}
	}

	if len(servers) == 0 {
		return nil, errors.Wrapf(lastErr, "no usable authoritative server for %s", fqdn)
	}

	t.logger.Debug().Str("fqdn", fqdn).Strs("servers", servers).Msg("authoritative servers")

	return servers, nil
}
