package slots

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStep(t *testing.T) {
	tests := []struct {
		duration int
		want     int
	}{
		{15, 30},
		{30, 30},
		{31, 60},
		{45, 60},
		{60, 60},
		{90, 60},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Step(tt.duration), "Step(%d)", tt.duration)
	}
}

func TestCandidates_FineGrain(t *testing.T) {
	w := Window{StartHour: 8, EndHour: 10}

	got := Candidates(w, 30)

	assert.Equal(t, []string{"08:00", "08:30", "09:00", "09:30"}, got)
}

func TestCandidates_Hourly(t *testing.T) {
	w := Window{StartHour: 8, EndHour: 10}

	got := Candidates(w, 60)

	assert.Equal(t, []string{"08:00", "09:00"}, got)
}

func TestCandidates_EndHourExclusive(t *testing.T) {
	w := Window{StartHour: 8, EndHour: 18}

	got := Candidates(w, 60)

	assert.Len(t, got, 10)
	assert.Equal(t, "17:00", got[len(got)-1])
	assert.NotContains(t, got, "18:00")
}

func TestCandidates_EmptyWindow(t *testing.T) {
	assert.Empty(t, Candidates(Window{StartHour: 10, EndHour: 10}, 30))
	assert.Empty(t, Candidates(Window{StartHour: 12, EndHour: 8}, 30))
}

func TestGrid_Restartable(t *testing.T) {
	w := Window{StartHour: 8, EndHour: 12}
	seq := Grid(w, 30)

	var first, second []string
	for s := range seq {
		first = append(first, s)
	}
	for s := range seq {
		second = append(second, s)
	}

	assert.Equal(t, first, second)
}

func TestGrid_StopsWhenYieldReturnsFalse(t *testing.T) {
	w := Window{StartHour: 8, EndHour: 18}

	var got []string
	for s := range Grid(w, 30) {
		got = append(got, s)
		if len(got) == 3 {
			break
		}
	}

	assert.Equal(t, []string{"08:00", "08:30", "09:00"}, got)
}

func TestContains(t *testing.T) {
	w := Window{StartHour: 8, EndHour: 18}

	assert.True(t, Contains(w, 30, "08:30"))
	assert.True(t, Contains(w, 30, "8:30"), "unpadded input is normalized first")
	assert.False(t, Contains(w, 60, "08:30"), "half-hour slot is off the hourly grid")
	assert.False(t, Contains(w, 30, "18:00"), "end of window is exclusive")
	assert.False(t, Contains(w, 30, "07:30"))
}
