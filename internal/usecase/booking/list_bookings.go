package booking

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// ListBookings alimenta a agenda do painel. StaffMemberID zero lista todos.
type ListBookings struct {
	deps Deps
}

func NewListBookings(deps Deps) *ListBookings {
	return &ListBookings{deps: deps}
}

func (uc *ListBookings) ByDate(
	ctx context.Context,
	salonID uint,
	staffID uint,
	date time.Time,
) ([]dto.BookingListDTO, error) {

	salon, err := uc.deps.salon(ctx, salonID)
	if err != nil {
		return nil, err
	}

	start, end := domain.DayBounds(date, timezone.Location(salon.Timezone))
	return uc.list(ctx, salon, staffID, start, end)
}

func (uc *ListBookings) ByMonth(
	ctx context.Context,
	salonID uint,
	staffID uint,
	year int,
	month int,
) ([]dto.BookingListDTO, error) {

	if month < 1 || month > 12 || year < 2000 {
		return nil, domain.Invalid("month")
	}

	salon, err := uc.deps.salon(ctx, salonID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(salon.Timezone)
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

	return uc.list(ctx, salon, staffID, start, end)
}

func (uc *ListBookings) list(
	ctx context.Context,
	salon *models.Salon,
	staffID uint,
	start time.Time,
	end time.Time,
) ([]dto.BookingListDTO, error) {

	bookings, err := uc.deps.Repo.ListBookingsForPeriod(ctx, salon.ID, staffID, start, end)
	if err != nil {
		return nil, domain.Infra("list_bookings", err)
	}

	loc := timezone.Location(salon.Timezone)
	out := make([]dto.BookingListDTO, 0, len(bookings))
	for i := range bookings {
		b := &bookings[i]
		out = append(out, dto.BookingListDTO{
			ID:              b.ID,
			StaffMemberID:   b.StaffMemberID,
			StaffName:       b.StaffMember.Name,
			StartTime:       b.StartTime.In(loc),
			EndTime:         b.EndTime().In(loc),
			Status:          b.Status,
			ClientName:      b.Client.Name,
			ClientPhone:     b.Client.Phone,
			ServiceName:     b.Service.Name,
			ClientConfirmed: b.ClientConfirmed,
			Notes:           b.Notes,
		})
	}
	return out, nil
}
