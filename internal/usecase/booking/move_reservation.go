package booking

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/notify"
)

type MoveInput struct {
	SalonID   uint
	BookingID uint
	NewStart  time.Time
	ActorID   *uint
}

// MoveReservation remarca um agendamento (arrastar e soltar na agenda).
// Em conflito nada muda e o erro identifica o agendamento que ocupa o horário.
type MoveReservation struct {
	deps Deps
}

func NewMoveReservation(deps Deps) *MoveReservation {
	return &MoveReservation{deps: deps}
}

func (uc *MoveReservation) Execute(ctx context.Context, in MoveInput) (*models.Booking, error) {
	ctx, span := uc.deps.tracer().Start(ctx, "booking.move_reservation")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("salon.id", int64(in.SalonID)),
		attribute.Int64("booking.id", int64(in.BookingID)),
	)

	b, err := uc.execute(ctx, in)
	uc.deps.Metrics.ObserveReservation("move", outcome(err))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome(err))
		return nil, err
	}
	return b, nil
}

func (uc *MoveReservation) execute(ctx context.Context, in MoveInput) (*models.Booking, error) {
	if in.BookingID == 0 {
		return nil, domain.Missing("booking_id")
	}
	if in.NewStart.IsZero() {
		return nil, domain.Missing("start")
	}

	salon, err := uc.deps.salon(ctx, in.SalonID)
	if err != nil {
		return nil, err
	}

	current, err := uc.deps.Repo.GetBooking(ctx, salon.ID, in.BookingID)
	if err != nil {
		return nil, lookup(err, "booking", "get_booking")
	}
	if current.Service.DurationMin <= 0 {
		return nil, domain.Invalid("service_duration")
	}
	previousStart := current.StartTime

	var moved *models.Booking
	began := time.Now()
	err = uc.deps.Repo.WithStaffLock(ctx, current.StaffMemberID, func(tx domain.Repository) error {
		// relê sob lock: status e horário podem ter mudado
		b, err := tx.GetBooking(ctx, salon.ID, in.BookingID)
		if err != nil {
			return lookup(err, "booking", "get_booking")
		}

		status := domain.Status(b.Status)
		if status != domain.StatusScheduled && status != domain.StatusConfirmed {
			return &domain.StateError{From: status}
		}

		if !in.NewStart.After(uc.deps.now()) {
			return domain.PastDate()
		}

		end := in.NewStart.Add(b.Service.Duration())
		occupying, err := tx.FindOccupying(ctx, b.StaffMemberID, in.NewStart, end)
		if err != nil {
			return domain.Infra("find_occupying", err)
		}
		if c := domain.FindConflict(occupying, in.NewStart, end, b.ID); c != nil {
			return conflictWith(c)
		}

		b.StartTime = in.NewStart
		b.ReminderSent = false
		if err := tx.UpdateBooking(ctx, b, status); err != nil {
			return stale(err, status, "", "update_booking")
		}

		moved = b
		return nil
	})
	uc.deps.Metrics.ObserveCommitLatency("move", time.Since(began).Seconds())
	if err != nil {
		return nil, lookup(err, "booking", "move")
	}

	uc.deps.record(salon.ID, in.ActorID, "booking_moved", moved, map[string]any{
		"from": previousStart.UTC(),
		"to":   moved.StartTime.UTC(),
	})

	ev := notify.BookingEvent(notify.EventBookingMoved, salon, moved, uc.deps.now())
	uc.deps.notifyTenant(ctx, ev)
	uc.deps.notifyClient(ctx, ev)

	return moved, nil
}
