package reconcile

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snap(label, name, ip string) Snapshot {
	s := Snapshot{Label: label, Name: name}
	if ip != "" {
		s.IP = net.ParseIP(ip)
		s.Found = true
	}

	return s
}

func TestPlanIdempotent(t *testing.T) {
	current := net.ParseIP("203.0.113.9")
	snapshots := []Snapshot{
		snap("a", "a.example.com.", "203.0.113.9"),
		snap("b", "b.example.com.", "203.0.113.9"),
	}

	assert.Empty(t, Plan(current, snapshots), "nothing to do when every record matches")
}

func TestPlanNotFoundAlwaysUpdates(t *testing.T) {
	current := net.ParseIP("203.0.113.9")
	snapshots := []Snapshot{snap("b", "b.example.com.", "")}

	changes := Plan(current, snapshots)
	require.Len(t, changes, 1)
	assert.Equal(t, "b", changes[0].Label)
	assert.Nil(t, changes[0].From)
	assert.True(t, changes[0].To.Equal(current))
}

func TestPlanStaleRecordUpdates(t *testing.T) {
	current := net.ParseIP("203.0.113.9")
	snapshots := []Snapshot{
		snap("a", "a.example.com.", "203.0.113.9"),
		snap("b", "b.example.com.", "198.51.100.1"),
	}

	changes := Plan(current, snapshots)
	require.Len(t, changes, 1)
	assert.Equal(t, "b.example.com.", changes[0].Name)
	assert.True(t, changes[0].From.Equal(net.ParseIP("198.51.100.1")))
	assert.True(t, changes[0].To.Equal(current))
}

func TestPlanExactEqualityOnly(t *testing.T) {
	// Same /24 is not the same address.
	current := net.ParseIP("203.0.113.9")
	snapshots := []Snapshot{snap("a", "a.example.com.", "203.0.113.10")}

	assert.Len(t, Plan(current, snapshots), 1)
}

func TestPlanDeterministic(t *testing.T) {
	current := net.ParseIP("203.0.113.9")
	snapshots := []Snapshot{
		snap("c", "c.example.com.", ""),
		snap("a", "a.example.com.", "198.51.100.1"),
		snap("b", "b.example.com.", "203.0.113.9"),
	}

	first := Plan(current, snapshots)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Plan(current, snapshots))
	}

	require.Len(t, first, 2)
	assert.Equal(t, "c", first[0].Label, "input order is preserved")
	assert.Equal(t, "a", first[1].Label)
}

func TestPlanMixedV4Representations(t *testing.T) {
	// A 4-byte and a 16-byte representation of the same v4 address compare
	// equal.
	current := net.ParseIP("203.0.113.9").To4()
	snapshots := []Snapshot{{
		Label: "a", Name: "a.example.com.",
		IP: net.ParseIP("203.0.113.9").To16(), Found: true,
	}}

	assert.Empty(t, Plan(current, snapshots))
}
