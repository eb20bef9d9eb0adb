// Package slots generates candidate booking times and subtracts booked ones.
// Everything here is pure; the appointment table in the store stays the only
// authority on what is actually free.
package slots

import (
	"fmt"
	"iter"
)

// FineGrainMaxMinutes is the duration threshold for the half-hour grid.
// Durations up to and including it get ":00" and ":30" slots; anything longer
// collapses to the hourly grid. The threshold is exact: 30 is fine-grained,
// 31 is not.
const FineGrainMaxMinutes = 30

// Window is a business day, [StartHour, EndHour) in local wall clock.
type Window struct {
	StartHour int
	EndHour   int
}

// Step returns the grid step in minutes for a service duration. Granularity
// is a function of duration only: slots are not packed back to back against
// neighboring bookings, so a 45-minute service is offered on an hourly grid
// that its bookings only partly fill. Known policy choice, kept from the
// original scheduler.
func Step(durationMinutes int) int {
	if durationMinutes <= FineGrainMaxMinutes {
		return 30
	}
	return 60
}

// Grid yields the candidate times for a day in order. The sequence is finite,
// deterministic and restartable; ranging over it twice yields the same times.
func Grid(w Window, durationMinutes int) iter.Seq[string] {
	step := Step(durationMinutes)
	return func(yield func(string) bool) {
		for hour := w.StartHour; hour < w.EndHour; hour++ {
			if !yield(fmt.Sprintf("%02d:00", hour)) {
				return
			}
			if step == 30 {
				if !yield(fmt.Sprintf("%02d:30", hour)) {
					return
				}
			}
		}
	}
}

// Candidates materializes Grid into a slice.
func Candidates(w Window, durationMinutes int) []string {
	step := Step(durationMinutes)
	n := w.EndHour - w.StartHour
	if n <= 0 {
		return []string{}
	}
	if step == 30 {
		n *= 2
	}

	out := make([]string, 0, n)
	for t := range Grid(w, durationMinutes) {
		out = append(out, t)
	}
	return out
}

// Contains reports whether t (normalized) is on the grid for this window and
// duration.
func Contains(w Window, durationMinutes int, t string) bool {
	t = Normalize(t)
	for candidate := range Grid(w, durationMinutes) {
		if candidate == t {
			return true
		}
	}
	return false
}
