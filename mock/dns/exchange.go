package dns

import (
	"fmt"
	"strings"
	"sync"

	"github.com/miekg/dns"
)

// Response describes how the server answers one question. Ignore simulates a
// dead or black-holed server by never writing a reply, which is how the
// deadline tests provoke a timeout.
type Response struct {
	Ignore    bool
	Truncated bool
	Rcode     int
	Answer    []dns.RR

	queryCount int // Times the server served this Response
}

// ExchangeServer is a dumb server which copies the configured Response for a
// question into the reply message. It never validates the input. Responses
// are keyed by qname and qtype so one server can play several roles during a
// pipeline test; unknown questions get REFUSED.
type ExchangeServer struct {
	mu        sync.Mutex
	responses map[string]*Response
}

func key(qname string, qtype uint16) string {
	return strings.ToLower(dns.Fqdn(qname)) + "/" + dns.TypeToString[qtype]
}

// SetResponse configures the reply for all subsequent queries of (qname, qtype).
func (t *ExchangeServer) SetResponse(qname string, qtype uint16, r *Response) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.responses == nil {
		t.responses = make(map[string]*Response)
	}
	t.responses[key(qname, qtype)] = r
}

// QueryCount returns how often (qname, qtype) has been served so far.
func (t *ExchangeServer) QueryCount(qname string, qtype uint16) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if r, ok := t.responses[key(qname, qtype)]; ok {
		return r.queryCount
	}

	return 0
}

// ServeDNS meets the interface definition for dns.Handler.
func (t *ExchangeServer) ServeDNS(wtr dns.ResponseWriter, q *dns.Msg) {
	if len(q.Question) != 1 {
		panic(fmt.Sprintf("mock exchange server expects one question, got %d", len(q.Question)))
	}
	question := q.Question[0]

	t.mu.Lock()
	resp := t.responses[key(question.Name, question.Qtype)]
	if resp != nil {
		resp.queryCount++
	}
	t.mu.Unlock()

	m := new(dns.Msg)
	switch {
	case resp == nil:
		m.SetRcode(q, dns.RcodeRefused)
	case resp.Ignore:
		return
	default:
		m.SetRcode(q, resp.Rcode)
		if resp.Truncated {
			m.MsgHdr.Truncated = true
		} else if resp.Rcode == dns.RcodeSuccess { // Only populate if rcode is good
			m.Answer = resp.Answer
		}
	}

	err := wtr.WriteMsg(m)
	if err != nil {
		fmt.Println("Alert: WriteMsg error:", err)
	}
}
