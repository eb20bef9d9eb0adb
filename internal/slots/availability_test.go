package slots

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"08:00", "08:00"},
		{"8:00", "08:00"},
		{"8:0", "08:00"},
		{"0:5", "00:05"},
		{"12:30", "12:30"},
		{"8:00:00", "08:00"},
		{"", ""},
		{"garbage", "garbage"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), "Normalize(%q)", tt.in)
	}
}

func TestBlockedSet_RepresentationDrift(t *testing.T) {
	// The same wall-clock time in three spellings collapses to one entry.
	set := NewBlockedSet([]string{"8:0", "8:00", "08:00"})

	assert.Len(t, set, 1)
	assert.True(t, set.Has("08:00"))
	assert.True(t, set.Has("8:00"))
	assert.True(t, set.Has("8:0"))
	assert.False(t, set.Has("08:30"))
}

func TestNewBlockedSet_DropsNonTimes(t *testing.T) {
	set := NewBlockedSet([]string{"09:00", "not-a-time", ""})

	assert.Equal(t, []string{"09:00"}, set.Times())
}

func TestAvailable_FineGrain(t *testing.T) {
	w := Window{StartHour: 8, EndHour: 10}
	candidates := Candidates(w, 30)
	blocked := NewBlockedSet([]string{"09:00"})

	got := Available(candidates, blocked)

	assert.Equal(t, []string{"08:00", "08:30", "09:30"}, got)
}

func TestAvailable_Hourly(t *testing.T) {
	w := Window{StartHour: 8, EndHour: 10}
	candidates := Candidates(w, 60)
	blocked := NewBlockedSet([]string{"09:00"})

	got := Available(candidates, blocked)

	assert.Equal(t, []string{"08:00"}, got)
}

func TestAvailable_BlockedOutsideGridIsIgnored(t *testing.T) {
	w := Window{StartHour: 8, EndHour: 10}
	candidates := Candidates(w, 60)
	blocked := NewBlockedSet([]string{"07:00", "08:30", "19:00"})

	got := Available(candidates, blocked)

	// Blocking can only shrink the offer, never extend it.
	assert.Equal(t, []string{"08:00", "09:00"}, got)
}

func TestAvailable_NothingBlocked(t *testing.T) {
	w := Window{StartHour: 8, EndHour: 10}
	candidates := Candidates(w, 30)

	got := Available(candidates, NewBlockedSet(nil))

	assert.Equal(t, candidates, got)
}

func TestAvailable_EverythingBlocked(t *testing.T) {
	w := Window{StartHour: 8, EndHour: 10}
	candidates := Candidates(w, 60)

	got := Available(candidates, NewBlockedSet(candidates))

	assert.Empty(t, got)
}
