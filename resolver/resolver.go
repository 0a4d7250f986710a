package resolver

import (
	"context"
	"net"
	"time"

	"github.com/miekg/dns"
	"github.com/rs/zerolog"

	"github.com/bwolf/gandi-dns-update/dnsutil"
)

// QueryTimeout bounds every single DNS exchange. A cron-driven run must
// complete or fail well inside its schedule interval, so no query may block
// past this deadline under any network condition.
const QueryTimeout = 15 * time.Second

// Resolver is the sole gateway to DNS for this program. All functions take
// the server to query as an explicit address; there is no ambient resolver
// configuration anywhere. Implementations must be concurrency safe as the
// per-item fan-out shares one Resolver across goroutines.
type Resolver interface {
	// Exchange sends a single question to the server and returns the raw
	// response. The server address may omit the port, in which case "domain"
	// is coerced onto it. Error classification: ErrTimeout, ErrNotFound
	// (NXDomain), ErrNoData (NOERROR with no usable answer) and ErrServFail
	// (everything else non-success).
	Exchange(ctx context.Context, server, qname string, qtype uint16) (*dns.Msg, error)

	// LookupA returns the IPv4 addresses of qname as answered by server.
	// Answer RRs of other types (such as CNAMEs in a chain) are ignored.
	// An answer carrying no A records maps to ErrNoData.
	LookupA(ctx context.Context, server, qname string) ([]net.IP, error)

	// LookupNS returns the name server hostnames of qname as answered by
	// server. An answer carrying no NS records maps to ErrNoData.
	LookupNS(ctx context.Context, server, qname string) ([]string, error)
}

type resolver struct {
	timeout time.Duration
	logger  zerolog.Logger
}

// New creates a fully formed Resolver which is ready to use. A zero timeout
// selects QueryTimeout; anything else is mostly of use to tests which want
// to provoke deadline behavior quickly.
func New(logger zerolog.Logger, timeout time.Duration) Resolver {
	if timeout <= 0 {
		timeout = QueryTimeout
	}

	return &resolver{timeout: timeout, logger: logger}
}

// withPort coerces a service onto the address if it hasn't got one.
func withPort(server string) string {
	if _, _, err := net.SplitHostPort(server); err != nil {
		return net.JoinHostPort(server, dnsutil.DNSService)
	}

	return server
}
