package dnsutil

import (
	"testing"
)

func TestChompCanonicalName(t *testing.T) {
	testCases := []struct{ input, expect string }{
		{"", ""},
		{".", ""},
		{"Example.Org.", "example.org"},
		{"example.org", "example.org"},
		{"a.b.c.example.org.", "a.b.c.example.org"},
	}

	for ix, tc := range testCases {
		got := ChompCanonicalName(tc.input)
		if got != tc.expect {
			t.Error(ix, "Got", got, "Expected", tc.expect)
		}
	}
}

func TestIsFQDN(t *testing.T) {
	testCases := []struct {
		input  string
		expect bool
	}{
		{"", false},
		{".", false},
		{"example.org", false},
		{"example.org.", true},
		{"a.example.org.", true},
	}

	for ix, tc := range testCases {
		if got := IsFQDN(tc.input); got != tc.expect {
			t.Error(ix, "IsFQDN", tc.input, "Got", got, "Expected", tc.expect)
		}
	}
}

func TestItemName(t *testing.T) {
	testCases := []struct{ label, fqdn, expect string }{
		{"a", "example.org.", "a.example.org."},
		{"www", "example.org", "www.example.org."},
	}

	for ix, tc := range testCases {
		got := ItemName(tc.label, tc.fqdn)
		if got != tc.expect {
			t.Error(ix, "Got", got, "Expected", tc.expect)
		}
	}
}
