package booking

import (
	"context"

	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/notify"
)

// ======================================================
// INPUT
// ======================================================

type ChangeStatusInput struct {
	SalonID   uint
	BookingID uint
	ActorID   *uint

	To         domain.Status
	Reason     string
	PaidAmount *decimal.Decimal
}

// ======================================================
// USE CASE
// ======================================================

// ChangeStatus aplica transições feitas pelo painel: confirmar, iniciar,
// concluir, cancelar e marcar falta.
type ChangeStatus struct {
	deps Deps
}

func NewChangeStatus(deps Deps) *ChangeStatus {
	return &ChangeStatus{deps: deps}
}

func (uc *ChangeStatus) Execute(ctx context.Context, in ChangeStatusInput) (*models.Booking, error) {
	b, err := uc.execute(ctx, in)
	uc.deps.Metrics.ObserveTransition(string(in.To), outcome(err))
	return b, err
}

func (uc *ChangeStatus) execute(ctx context.Context, in ChangeStatusInput) (*models.Booking, error) {
	if in.BookingID == 0 {
		return nil, domain.Missing("booking_id")
	}
	if in.PaidAmount != nil && in.PaidAmount.IsNegative() {
		return nil, domain.Invalid("paid_amount")
	}

	salon, err := uc.deps.salon(ctx, in.SalonID)
	if err != nil {
		return nil, err
	}

	b, err := uc.deps.Repo.GetBooking(ctx, salon.ID, in.BookingID)
	if err != nil {
		return nil, lookup(err, "booking", "get_booking")
	}

	from := domain.Status(b.Status)
	now := uc.deps.now()

	switch in.To {
	case domain.StatusConfirmed:
		err = domain.Confirm(b)
	case domain.StatusInProgress:
		err = domain.Start(b)
	case domain.StatusCompleted:
		err = domain.Complete(b, in.PaidAmount, now)
	case domain.StatusCancelled:
		err = domain.Cancel(b, in.Reason, now)
	case domain.StatusNoShow:
		err = domain.MarkNoShow(b)
	default:
		err = domain.Invalid("status")
	}
	if err != nil {
		return nil, err
	}

	if err := uc.deps.Repo.UpdateBooking(ctx, b, from); err != nil {
		return nil, stale(err, from, in.To, "update_booking")
	}

	uc.deps.record(salon.ID, in.ActorID, "booking_"+string(in.To), b, map[string]any{
		"from": from,
		"by":   "staff",
	})

	if in.To == domain.StatusCancelled {
		uc.deps.notifyTenant(ctx, notify.BookingEvent(notify.EventBookingCancelled, salon, b, now))
	}

	return b, nil
}
