package discover

import (
	"context"
	"net"

	"github.com/pkg/errors"
)

// The OpenDNS mirror trick: resolver1.opendns.com is authoritative for
// myip.opendns.com and answers it with the address the query arrived from.
// Querying it directly, rather than through any caching resolver, is what
// makes the answer trustworthy.
const (
	openDNSResolver = "resolver1.opendns.com."
	openDNSMirror   = "myip.opendns.com."
)

// PublicIP returns the caller's externally visible IPv4 address. A non-nil
// override is returned as-is with no network activity whatsoever; it is the
// escape hatch for hosts where outbound discovery is undesirable. Discovery
// failure is fatal to the run - there is no fallback address to fall back on.
func (t *Discoverer) PublicIP(ctx context.Context, override net.IP) (net.IP, error) {
	if override != nil {
		t.logger.Info().Stringer("ip", override).Msg("using configured IP address")
		return override, nil
	}

	t.logger.Info().Msg("looking up my IP address")

	// Hop one: find the address of the OpenDNS resolver via the trusted
	// recursive server.
	resolverIPs, err := t.res.LookupA(ctx, t.recursive, openDNSResolver)
	if err != nil {
		return nil, errors.Wrapf(err, "resolving %s via %s", openDNSResolver, t.recursive)
	}

	// Hop two: ask that server directly what address we arrive from.
	mirror := net.JoinHostPort(resolverIPs[0].String(), "53")
	myIPs, err := t.res.LookupA(ctx, mirror, openDNSMirror)
	if err != nil {
		return nil, errors.Wrapf(err, "querying %s at %s", openDNSMirror, mirror)
	}

	t.logger.Info().Stringer("ip", myIPs[0]).Msg("my IP address")

	return myIPs[0], nil
}
