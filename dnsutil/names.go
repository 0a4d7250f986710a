package dnsutil

import (
	"strings"

	"github.com/miekg/dns"
)

// Make name canonical but lose trailing dot. The Gandi API wants the bare
// domain whereas every DNS query wants the fully qualified form, so both
// directions are needed somewhere.
func ChompCanonicalName(n string) string {
	n = dns.CanonicalName(n)
	if len(n) > 0 && n[len(n)-1] == '.' {
		n = n[:len(n)-1]
	}

	return n
}

// IsFQDN reports whether the name is syntactically absolute, that is, ends
// with a trailing dot. A name failing this test is a configuration error as
// far as this program is concerned, not something to silently repair.
func IsFQDN(n string) bool {
	return len(n) > 1 && strings.HasSuffix(n, ".")
}

// ItemName forms the fully qualified record name for a dynamic item by
// prefixing the item label to the managed domain, e.g. "a" + "domain.tld." =
// "a.domain.tld.".
func ItemName(label, fqdn string) string {
	return dns.Fqdn(label + "." + fqdn)
}
