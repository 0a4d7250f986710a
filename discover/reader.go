package discover

import (
	"context"
	"net"

	"github.com/pkg/errors"

	"github.com/bwolf/gandi-dns-update/resolver"
)

// ReadRecord queries the authoritative servers directly for the current A
// record of name. The servers are tried in order; a timeout or server
// failure moves on to the next one. An authoritative "does not exist" is a
// valid outcome, reported as found == false with a nil error, and is final -
// no point asking the siblings of a server which authoritatively denied the
// name.
func (t *Discoverer) ReadRecord(ctx context.Context, servers []string, name string) (ip net.IP, found bool, err error) {
	var lastErr error
	for _, server := range servers {
		ips, err := t.res.LookupA(ctx, server, name)
		switch {
		case err == nil:
			t.logger.Debug().Str("name", name).Str("server", server).
				Stringer("ip", ips[0]).Msg("current record")
			return ips[0], true, nil

		case errors.Is(err, resolver.ErrNotFound) || errors.Is(err, resolver.ErrNoData):
			t.logger.Debug().Str("name", name).Str("server", server).Msg("record does not exist")
			return nil, false, nil

		default:
			t.logger.Warn().Err(err).Str("name", name).Str("server", server).
				Msg("record read failed, trying next server")
			lastErr = err
		}
	}

	if lastErr == nil {
		return nil, false, errors.Errorf("reading %s: no servers to query", name)
	}

	return nil, false, errors.Wrapf(lastErr, "reading %s", name)
}
