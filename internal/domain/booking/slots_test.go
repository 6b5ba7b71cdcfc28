package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSlots(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	day := time.Date(2026, 10, 20, 15, 0, 0, 0, loc)

	slots := GenerateSlots(day, loc, OperatingHours{OpenHour: 8, CloseHour: 18, Granularity: 30 * time.Minute})
	require.Len(t, slots, 20)
	assert.Equal(t, "08:00", slots[0].Format("15:04"))
	assert.Equal(t, "17:30", slots[len(slots)-1].Format("15:04"))
}

func TestGenerateSlotsTruncatesPartialSlot(t *testing.T) {
	day := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)

	// 45 min: 08:00, 08:45; 09:30 terminaria às 10:15
	slots := GenerateSlots(day, time.UTC, OperatingHours{OpenHour: 8, CloseHour: 10, Granularity: 45 * time.Minute})
	require.Len(t, slots, 2)
	assert.Equal(t, "08:45", slots[1].Format("15:04"))
}

func TestGenerateSlotsInvalidHours(t *testing.T) {
	day := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)

	for _, h := range []OperatingHours{
		{OpenHour: 18, CloseHour: 8, Granularity: time.Hour},
		{OpenHour: 8, CloseHour: 8, Granularity: time.Hour},
		{OpenHour: 8, CloseHour: 18},
		{OpenHour: -1, CloseHour: 18, Granularity: time.Hour},
	} {
		assert.Empty(t, GenerateSlots(day, time.UTC, h))
		assert.True(t, IsValidation(h.Validate(), CodeInvalidFormat))
	}
}

func TestDayBoundsUsesSalonZone(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	// 01:30 UTC ainda é o dia anterior em São Paulo
	instant := time.Date(2026, 10, 21, 1, 30, 0, 0, time.UTC)
	start, end := DayBounds(instant, loc)

	assert.Equal(t, "2026-10-20 00:00", start.Format("2006-01-02 15:04"))
	assert.Equal(t, 24*time.Hour, end.Sub(start))
}

func TestFreeSlots(t *testing.T) {
	day := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
	hours := OperatingHours{OpenHour: 8, CloseHour: 18, Granularity: 30 * time.Minute}
	_, closeAt := hours.Bounds(day, time.UTC)
	candidates := GenerateSlots(day, time.UTC, hours)
	occupied := []Interval{{Start: clock(14, 0), End: clock(15, 0)}}
	now := clock(0, 0)

	free := FreeSlots(candidates, time.Hour, closeAt, occupied, now)

	got := make(map[string]bool)
	for _, s := range free {
		got[s.Format("15:04")] = true
	}
	assert.True(t, got["13:00"])
	assert.False(t, got["13:30"])
	assert.False(t, got["14:00"])
	assert.False(t, got["14:30"])
	assert.True(t, got["15:00"])
	assert.True(t, got["17:00"])
	assert.False(t, got["17:30"], "slot would end after closing")

	// somente slots estritamente depois de now
	later := FreeSlots(candidates, time.Hour, closeAt, nil, clock(10, 0))
	assert.Equal(t, "10:30", later[0].Format("15:04"))
}
