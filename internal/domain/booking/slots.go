package booking

import "time"

// ===============================
// Operating hours
// ===============================

type OperatingHours struct {
	OpenHour    int
	CloseHour   int
	Granularity time.Duration
}

func (h OperatingHours) Validate() error {
	if h.OpenHour < 0 || h.OpenHour > 23 ||
		h.CloseHour < 1 || h.CloseHour > 24 ||
		h.CloseHour <= h.OpenHour {
		return Invalid("operating_hours")
	}
	if h.Granularity <= 0 {
		return Invalid("granularity")
	}
	return nil
}

// Bounds devolve abertura e fechamento do dia no fuso do salão.
func (h OperatingHours) Bounds(day time.Time, loc *time.Location) (time.Time, time.Time) {
	y, m, d := day.In(loc).Date()
	open := time.Date(y, m, d, h.OpenHour, 0, 0, 0, loc)
	closeAt := time.Date(y, m, d, h.CloseHour, 0, 0, 0, loc)
	return open, closeAt
}

// ===============================
// Generator
// ===============================

// GenerateSlots lista os inícios candidatos do dia. Um slot cujo fim nominal
// passaria do fechamento é descartado.
func GenerateSlots(day time.Time, loc *time.Location, h OperatingHours) []time.Time {
	slots := []time.Time{}
	if h.Validate() != nil {
		return slots
	}

	open, closeAt := h.Bounds(day, loc)
	for cur := open; !cur.Add(h.Granularity).After(closeAt); cur = cur.Add(h.Granularity) {
		slots = append(slots, cur)
	}
	return slots
}

// DayBounds devolve [00:00, 00:00 do dia seguinte) no fuso informado.
func DayBounds(day time.Time, loc *time.Location) (time.Time, time.Time) {
	y, m, d := day.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc), time.Date(y, m, d+1, 0, 0, 0, 0, loc)
}
