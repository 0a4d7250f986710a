package resolver

import (
	"context"
	"net"

	"github.com/miekg/dns"
	"github.com/pkg/errors"
)

func (t *resolver) LookupA(ctx context.Context, server, qname string) ([]net.IP, error) {
	r, err := t.Exchange(ctx, server, qname, dns.TypeA)
	if err != nil {
		return nil, err
	}

	ips := make([]net.IP, 0, len(r.Answer))
	for _, rr := range r.Answer {
		if a, ok := rr.(*dns.A); ok {
			if ip4 := a.A.To4(); ip4 != nil {
				ips = append(ips, ip4)
			}
		}
	}
	if len(ips) == 0 { // Answered, but nothing of type A - a CNAME perhaps
		return nil, errors.Wrapf(ErrNoData, "A %s @%s", qname, server)
	}

	return ips, nil
}

func (t *resolver) LookupNS(ctx context.Context, server, qname string) ([]string, error) {
	r, err := t.Exchange(ctx, server, qname, dns.TypeNS)
	if err != nil {
		return nil, err
	}

	hosts := make([]string, 0, len(r.Answer))
	for _, rr := range r.Answer {
		if ns, ok := rr.(*dns.NS); ok {
			hosts = append(hosts, ns.Ns)
		}
	}
	if len(hosts) == 0 {
		return nil, errors.Wrapf(ErrNoData, "NS %s @%s", qname, server)
	}

	return hosts, nil
}
