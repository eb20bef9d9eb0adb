package slots

import (
	"sort"
	"strings"
)

// Normalize zero-pads each segment of a clock time independently, so "8:0",
// "8:00" and "08:00" all compare equal. Stored times and times echoed back by
// a client can drift in representation; comparisons go through here first.
func Normalize(t string) string {
	if t == "" {
		return t
	}
	parts := strings.Split(t, ":")
	if len(parts) < 2 {
		return t
	}
	return pad2(parts[0]) + ":" + pad2(parts[1])
}

func pad2(s string) string {
	if len(s) >= 2 {
		return s
	}
	return strings.Repeat("0", 2-len(s)) + s
}

// BlockedSet is the set of times already taken for one
// (profile, service, date) tuple. It is a stale-by-construction cache of a
// point-in-time read, never an authority.
type BlockedSet map[string]struct{}

// NewBlockedSet normalizes the given times and drops entries that do not look
// like clock times at all.
func NewBlockedSet(times []string) BlockedSet {
	set := make(BlockedSet, len(times))
	for _, t := range times {
		n := Normalize(t)
		if n == "" || !strings.Contains(n, ":") {
			continue
		}
		set[n] = struct{}{}
	}
	return set
}

func (b BlockedSet) Has(t string) bool {
	_, ok := b[Normalize(t)]
	return ok
}

func (b BlockedSet) Add(t string) {
	b[Normalize(t)] = struct{}{}
}

// Times returns the blocked times in ascending order.
func (b BlockedSet) Times() []string {
	out := make([]string, 0, len(b))
	for t := range b {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Available is candidates minus blocked, order preserved. Blocked entries
// outside the candidate grid are ignored: blocking can only shrink the offer,
// never extend it.
func Available(candidates []string, blocked BlockedSet) []string {
	out := make([]string, 0, len(candidates))
	for _, t := range candidates {
		if !blocked.Has(t) {
			out = append(out, t)
		}
	}
	return out
}
