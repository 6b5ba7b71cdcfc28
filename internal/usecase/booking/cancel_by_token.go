package booking

import (
	"context"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/notify"
)

// CancelByToken: o cliente cancela pelo link recebido. O motivo vai para as observações.
type CancelByToken struct {
	deps Deps
}

func NewCancelByToken(deps Deps) *CancelByToken {
	return &CancelByToken{deps: deps}
}

func (uc *CancelByToken) Execute(
	ctx context.Context,
	salonID uint,
	token string,
	reason string,
) (*models.Booking, error) {

	b, err := uc.execute(ctx, salonID, token, reason)
	uc.deps.Metrics.ObserveTransition(string(domain.StatusCancelled), outcome(err))
	return b, err
}

func (uc *CancelByToken) execute(
	ctx context.Context,
	salonID uint,
	token string,
	reason string,
) (*models.Booking, error) {

	salon, b, err := uc.deps.bookingByToken(ctx, salonID, token, domain.StatusCancelled)
	if err != nil {
		return nil, err
	}

	from := domain.Status(b.Status)
	now := uc.deps.now()
	if err := domain.Cancel(b, reason, now); err != nil {
		return nil, err
	}

	if err := uc.deps.Repo.UpdateBooking(ctx, b, from); err != nil {
		return nil, stale(err, from, domain.StatusCancelled, "update_booking")
	}

	uc.deps.record(salon.ID, nil, "booking_cancelled", b, map[string]any{
		"by":     "client",
		"reason": reason,
	})
	uc.deps.notifyTenant(ctx, notify.BookingEvent(notify.EventBookingCancelled, salon, b, now))

	return b, nil
}
