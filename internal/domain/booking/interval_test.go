package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func clock(h, m int) time.Time {
	return time.Date(2026, 10, 20, h, m, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name         string
		startA, endA time.Time
		startB, endB time.Time
		want         bool
	}{
		{"touching after", clock(14, 0), clock(15, 0), clock(15, 0), clock(16, 0), false},
		{"touching before", clock(13, 0), clock(14, 0), clock(14, 0), clock(15, 0), false},
		{"one minute", clock(14, 59), clock(15, 59), clock(14, 0), clock(15, 0), true},
		{"contained", clock(14, 15), clock(14, 45), clock(14, 0), clock(15, 0), true},
		{"containing", clock(13, 0), clock(16, 0), clock(14, 0), clock(15, 0), true},
		{"identical", clock(14, 0), clock(15, 0), clock(14, 0), clock(15, 0), true},
		{"disjoint", clock(9, 0), clock(10, 0), clock(14, 0), clock(15, 0), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Overlaps(tc.startA, tc.endA, tc.startB, tc.endB))
			// simétrico
			assert.Equal(t, tc.want, Overlaps(tc.startB, tc.endB, tc.startA, tc.endA))
		})
	}
}

func TestFirstOverlap(t *testing.T) {
	occupied := []Interval{
		{Start: clock(9, 0), End: clock(10, 0)},
		{Start: clock(14, 0), End: clock(15, 0)},
	}

	assert.Equal(t, 1, FirstOverlap(clock(14, 30), clock(15, 30), occupied))
	assert.Equal(t, -1, FirstOverlap(clock(10, 0), clock(14, 0), occupied))
	assert.Equal(t, -1, FirstOverlap(clock(10, 0), clock(11, 0), nil))
	assert.True(t, occupied[0].Overlaps(Interval{Start: clock(9, 30), End: clock(9, 45)}))
}
