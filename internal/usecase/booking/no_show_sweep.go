package booking

import (
	"context"
	"errors"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/notify"
)

// NoShowSweep marca como falta os agendamentos pendentes que começaram há
// mais de NoShowGrace. Rodar de novo não altera nada (estado terminal).
type NoShowSweep struct {
	deps Deps
}

func NewNoShowSweep(deps Deps) *NoShowSweep {
	return &NoShowSweep{deps: deps}
}

func (uc *NoShowSweep) Execute(ctx context.Context, salonID uint) (int, error) {
	salon, err := uc.deps.salon(ctx, salonID)
	if err != nil {
		return 0, err
	}

	now := uc.deps.now()
	candidates, err := uc.deps.Repo.ListNoShowCandidates(ctx, salon.ID, now.Add(-domain.NoShowGrace))
	if err != nil {
		return 0, domain.Infra("list_no_show_candidates", err)
	}

	marked := 0
	defer func() { uc.deps.Metrics.ObserveSweep("no_show", marked) }()

	for i := range candidates {
		b := &candidates[i]
		from := domain.Status(b.Status)

		if err := domain.MarkNoShow(b); err != nil {
			continue
		}
		if err := uc.deps.Repo.UpdateBooking(ctx, b, from); err != nil {
			if errors.Is(err, domain.ErrStale) {
				// alterado por outra chamada no meio do caminho
				continue
			}
			return marked, domain.Infra("update_booking", err)
		}

		marked++
		uc.deps.record(salon.ID, nil, "booking_no_show", b, map[string]any{"from": from})
		uc.deps.notifyTenant(ctx, notify.BookingEvent(notify.EventBookingNoShow, salon, b, now))
	}

	if marked > 0 {
		uc.deps.log().Info("no-show sweep", "salon_id", salon.ID, "marked", marked)
	}
	return marked, nil
}
