package booking

import (
	"context"
	"errors"
	"strings"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/notify"
)

// ConfirmByToken: o cliente confirma pelo link recebido.
type ConfirmByToken struct {
	deps Deps
}

func NewConfirmByToken(deps Deps) *ConfirmByToken {
	return &ConfirmByToken{deps: deps}
}

func (uc *ConfirmByToken) Execute(ctx context.Context, salonID uint, token string) (*models.Booking, error) {
	b, err := uc.execute(ctx, salonID, token)
	uc.deps.Metrics.ObserveTransition(string(domain.StatusConfirmed), outcome(err))
	return b, err
}

func (uc *ConfirmByToken) execute(ctx context.Context, salonID uint, token string) (*models.Booking, error) {
	salon, b, err := uc.deps.bookingByToken(ctx, salonID, token, domain.StatusConfirmed)
	if err != nil {
		return nil, err
	}

	from := domain.Status(b.Status)
	if err := domain.Confirm(b); err != nil {
		return nil, err
	}
	b.ClientConfirmed = true

	if err := uc.deps.Repo.UpdateBooking(ctx, b, from); err != nil {
		return nil, stale(err, from, domain.StatusConfirmed, "update_booking")
	}

	uc.deps.record(salon.ID, nil, "booking_confirmed", b, nil)
	uc.deps.notifyTenant(ctx, notify.BookingEvent(notify.EventBookingConfirmed, salon, b, uc.deps.now()))

	return b, nil
}

// bookingByToken resolve o token; token desconhecido ou expirado é erro de estado.
func (d Deps) bookingByToken(
	ctx context.Context,
	salonID uint,
	token string,
	to domain.Status,
) (*models.Salon, *models.Booking, error) {

	token = strings.TrimSpace(token)
	if token == "" {
		return nil, nil, domain.Missing("token")
	}

	salon, err := d.salon(ctx, salonID)
	if err != nil {
		return nil, nil, err
	}

	b, err := d.Repo.GetBookingByToken(ctx, salon.ID, token)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil, &domain.StateError{To: to}
	}
	if err != nil {
		return nil, nil, domain.Infra("get_booking_by_token", err)
	}

	if !domain.TokenUsable(b, d.now()) {
		return nil, nil, &domain.StateError{From: domain.Status(b.Status), To: to}
	}
	return salon, b, nil
}
