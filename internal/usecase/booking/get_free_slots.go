package booking

import (
	"context"
	"errors"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

// FreeSlotsInput: com ServiceID a duração vem do serviço; sem ele vale
// DurationMin e, por fim, a duração padrão do salão.
type FreeSlotsInput struct {
	SalonID       uint
	StaffMemberID uint
	ServiceID     uint
	Date          time.Time
	DurationMin   int
}

type FreeSlotsResult struct {
	Date     time.Time
	Duration time.Duration
	Slots    []time.Time
}

// ======================================================
// USE CASE
// ======================================================

type GetFreeSlots struct {
	deps Deps
}

func NewGetFreeSlots(deps Deps) *GetFreeSlots {
	return &GetFreeSlots{deps: deps}
}

func (uc *GetFreeSlots) Execute(ctx context.Context, in FreeSlotsInput) (*FreeSlotsResult, error) {
	if in.StaffMemberID == 0 {
		return nil, domain.Missing("staff_member_id")
	}
	if in.Date.IsZero() {
		return nil, domain.Missing("date")
	}
	if in.DurationMin < 0 {
		return nil, domain.Invalid("duration")
	}

	salon, err := uc.deps.salon(ctx, in.SalonID)
	if err != nil {
		return nil, err
	}
	loc := timezone.Location(salon.Timezone)

	staff, err := uc.deps.Repo.GetStaffMember(ctx, salon.ID, in.StaffMemberID)
	if err != nil {
		return nil, lookup(err, "staff_member", "get_staff_member")
	}

	duration, err := uc.duration(ctx, salon, staff.ID, in)
	if err != nil {
		return nil, err
	}

	day, _ := domain.DayBounds(in.Date, loc)
	result := &FreeSlotsResult{Date: day, Duration: duration, Slots: []time.Time{}}

	hours, open, err := uc.operatingHours(ctx, salon, day)
	if err != nil {
		return nil, err
	}
	if !open {
		return result, nil
	}

	dayStart, dayEnd := domain.DayBounds(day, loc)
	occupying, err := uc.deps.Repo.FindOccupying(ctx, staff.ID, dayStart, dayEnd)
	if err != nil {
		return nil, domain.Infra("find_occupying", err)
	}

	_, closeAt := hours.Bounds(day, loc)
	candidates := domain.GenerateSlots(day, loc, hours)

	result.Slots = domain.FreeSlots(
		candidates,
		duration,
		closeAt,
		domain.Intervals(occupying),
		uc.deps.now(),
	)
	return result, nil
}

func (uc *GetFreeSlots) duration(
	ctx context.Context,
	salon *models.Salon,
	staffID uint,
	in FreeSlotsInput,
) (time.Duration, error) {

	if in.ServiceID != 0 {
		svc, err := uc.deps.Repo.GetService(ctx, salon.ID, in.ServiceID)
		if err != nil {
			return 0, lookup(err, "service", "get_service")
		}
		if !svc.Performs(staffID) {
			return 0, domain.NotFound("service")
		}
		if svc.DurationMin <= 0 {
			return 0, domain.Invalid("service_duration")
		}
		return svc.Duration(), nil
	}

	minutes := in.DurationMin
	if minutes == 0 {
		minutes = salon.DefaultDurationMin
	}
	if minutes <= 0 {
		minutes = salon.SlotMinutes
	}
	if minutes <= 0 {
		return 0, domain.Invalid("duration")
	}
	return time.Duration(minutes) * time.Minute, nil
}

// operatingHours aplica o horário especial do dia da semana, quando existir.
func (uc *GetFreeSlots) operatingHours(
	ctx context.Context,
	salon *models.Salon,
	day time.Time,
) (domain.OperatingHours, bool, error) {

	hours := domain.OperatingHours{
		OpenHour:    salon.OpenHour,
		CloseHour:   salon.CloseHour,
		Granularity: time.Duration(salon.SlotMinutes) * time.Minute,
	}

	wh, err := uc.deps.Repo.GetWorkingHours(ctx, salon.ID, day.Weekday())
	switch {
	case errors.Is(err, domain.ErrNotFound):
		// sem exceção para o dia
	case err != nil:
		return hours, false, domain.Infra("get_working_hours", err)
	case !wh.Active:
		return hours, false, nil
	default:
		hours.OpenHour = wh.OpenHour
		hours.CloseHour = wh.CloseHour
	}

	if err := hours.Validate(); err != nil {
		return hours, false, err
	}
	return hours, true, nil
}
