package booking

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// FreeSlots mantém os candidatos que começam depois de now, terminam até o
// fechamento e não colidem com nenhum intervalo ocupado. A ordem de entrada é preservada.
func FreeSlots(
	candidates []time.Time,
	duration time.Duration,
	closeAt time.Time,
	occupied []Interval,
	now time.Time,
) []time.Time {

	free := make([]time.Time, 0, len(candidates))
	for _, start := range candidates {
		end := start.Add(duration)

		if !start.After(now) {
			continue
		}
		if end.After(closeAt) {
			continue
		}
		if FirstOverlap(start, end, occupied) >= 0 {
			continue
		}

		free = append(free, start)
	}
	return free
}

// Intervals converte agendamentos (com Service carregado) em intervalos.
func Intervals(bookings []models.Booking) []Interval {
	out := make([]Interval, 0, len(bookings))
	for i := range bookings {
		out = append(out, Interval{
			Start: bookings[i].StartTime,
			End:   bookings[i].EndTime(),
		})
	}
	return out
}

// FindConflict devolve o primeiro agendamento que colide com [start, end),
// ignorando excludeID (o próprio agendamento numa remarcação).
func FindConflict(
	bookings []models.Booking,
	start time.Time,
	end time.Time,
	excludeID uint,
) *models.Booking {

	for i := range bookings {
		b := &bookings[i]
		if excludeID != 0 && b.ID == excludeID {
			continue
		}
		if Overlaps(start, end, b.StartTime, b.EndTime()) {
			return b
		}
	}
	return nil
}
