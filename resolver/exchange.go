package resolver

import (
	"context"
	"net"
	"time"

	"github.com/miekg/dns"
	"github.com/pkg/errors"

	"github.com/bwolf/gandi-dns-update/dnsutil"
)

func (t *resolver) Exchange(ctx context.Context, server, qname string, qtype uint16) (*dns.Msg, error) {
	server = withPort(server)
	qname = dns.Fqdn(qname)

	q := new(dns.Msg)
	q.SetQuestion(qname, qtype)
	q.SetEdns0(dnsutil.MaxUDPSize, false)

	// The dns.Client timeout covers dial+write+read of one attempt; the
	// context deadline caps the whole exchange including the possible TCP
	// retry after truncation.
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	r, rtt, err := t.exchangeOnce(ctx, dnsutil.UDPNetwork, q, server)

	// If truncated, try again with TCP.
	if err == nil && r.Rcode == dns.RcodeSuccess && r.Truncated {
		r, rtt, err = t.exchangeOnce(ctx, dnsutil.TCPNetwork, q, server)
	}

	if err != nil {
		if isTimeout(err) {
			return nil, errors.Wrapf(ErrTimeout, "%s %s @%s", dns.TypeToString[qtype], qname, server)
		}
		return nil, errors.Wrapf(err, "dns: %s %s @%s", dns.TypeToString[qtype], qname, server)
	}

	t.logger.Debug().
		Str("server", server).
		Str("qname", qname).
		Str("qtype", dns.TypeToString[qtype]).
		Str("rcode", dns.RcodeToString[r.Rcode]).
		Int("answers", len(r.Answer)).
		Dur("rtt", rtt).
		Msg("dns exchange")

	switch r.Rcode {
	case dns.RcodeSuccess:
		if len(r.Answer) == 0 {
			return nil, errors.Wrapf(ErrNoData, "%s %s @%s", dns.TypeToString[qtype], qname, server)
		}
	case dns.RcodeNameError:
		return nil, errors.Wrapf(ErrNotFound, "%s @%s", qname, server)
	default:
		return nil, errors.Wrapf(ErrServFail, "%s %s @%s rcode=%s",
			dns.TypeToString[qtype], qname, server, dns.RcodeToString[r.Rcode])
	}

	return r, nil
}

func (t *resolver) exchangeOnce(ctx context.Context, network string, q *dns.Msg, server string) (*dns.Msg, time.Duration, error) {
	client := &dns.Client{Net: network, Timeout: t.timeout, UDPSize: dnsutil.MaxUDPSize}

	t.logger.Debug().
		Str("net", network).
		Str("server", server).
		Str("qname", q.Question[0].Name).
		Msg("dns query")

	return client.ExchangeContext(ctx, q, server)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var nerr net.Error
	return errors.As(err, &nerr) && nerr.Timeout()
}
