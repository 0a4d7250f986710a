/*
Package resolver implements the resolver.Resolver interface from canned,
in-memory answers keyed by (server, qname, qtype). It exists so the discovery
and pipeline logic, which only routes queries between servers, can be tested
without opening a single socket. Socket-level behavior is covered by the
resolver package's own tests against mock/dns servers.
*/
package resolver

import (
	"context"
	"net"
	"strings"
	"sync"

	"github.com/miekg/dns"
	"github.com/pkg/errors"

	"github.com/bwolf/gandi-dns-update/resolver"
)

type answer struct {
	ips   []net.IP
	hosts []string
	err   error
}

// Resolver is a scripted stand-in for the real thing. Unscripted questions
// return resolver.ErrNotFound, which approximates what an unsuspecting
// server would say.
type Resolver struct {
	mu      sync.Mutex
	answers map[string]answer
	calls   int
}

func New() *Resolver {
	return &Resolver{answers: make(map[string]answer)}
}

func key(server, qname string, qtype uint16) string {
	return server + "|" + strings.ToLower(dns.Fqdn(qname)) + "|" + dns.TypeToString[qtype]
}

// SetA scripts the answer to an A query of qname directed at server.
func (t *Resolver) SetA(server, qname string, ips ...net.IP) {
	t.set(server, qname, dns.TypeA, answer{ips: ips})
}

// SetNS scripts the answer to an NS query of qname directed at server.
func (t *Resolver) SetNS(server, qname string, hosts ...string) {
	t.set(server, qname, dns.TypeNS, answer{hosts: hosts})
}

// SetError scripts a failure for (server, qname, qtype).
func (t *Resolver) SetError(server, qname string, qtype uint16, err error) {
	t.set(server, qname, qtype, answer{err: err})
}

func (t *Resolver) set(server, qname string, qtype uint16, a answer) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.answers[key(server, qname, qtype)] = a
}

// Calls returns the number of lookups made so far, scripted or not. The
// override short-circuit test relies on this staying at zero.
func (t *Resolver) Calls() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.calls
}

func (t *Resolver) lookup(server, qname string, qtype uint16) (answer, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.calls++
	a, ok := t.answers[key(server, qname, qtype)]
	if !ok {
		return answer{}, errors.Wrapf(resolver.ErrNotFound,
			"unscripted %s %s @%s", dns.TypeToString[qtype], qname, server)
	}

	return a, a.err
}

func (t *Resolver) Exchange(ctx context.Context, server, qname string, qtype uint16) (*dns.Msg, error) {
	if _, err := t.lookup(server, qname, qtype); err != nil {
		return nil, err
	}

	m := new(dns.Msg) // Nothing in this program inspects a scripted raw response
	m.SetQuestion(dns.Fqdn(qname), qtype)
	return m, nil
}

func (t *Resolver) LookupA(ctx context.Context, server, qname string) ([]net.IP, error) {
	a, err := t.lookup(server, qname, dns.TypeA)
	if err != nil {
		return nil, err
	}

	return a.ips, nil
}

func (t *Resolver) LookupNS(ctx context.Context, server, qname string) ([]string, error) {
	a, err := t.lookup(server, qname, dns.TypeNS)
	if err != nil {
		return nil, err
	}

	return a.hosts, nil
}
