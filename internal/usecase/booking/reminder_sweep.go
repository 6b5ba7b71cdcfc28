package booking

import (
	"context"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/notify"
)

// ReminderSweep envia um lembrete por agendamento que começa nas próximas
// ReminderWindow. A flag é gravada antes do envio: lembrete nunca repete.
type ReminderSweep struct {
	deps Deps
}

func NewReminderSweep(deps Deps) *ReminderSweep {
	return &ReminderSweep{deps: deps}
}

func (uc *ReminderSweep) Execute(ctx context.Context, salonID uint) (int, error) {
	salon, err := uc.deps.salon(ctx, salonID)
	if err != nil {
		return 0, err
	}

	now := uc.deps.now()
	candidates, err := uc.deps.Repo.ListReminderCandidates(ctx, salon.ID, now, now.Add(domain.ReminderWindow))
	if err != nil {
		return 0, domain.Infra("list_reminder_candidates", err)
	}

	sent := 0
	defer func() { uc.deps.Metrics.ObserveSweep("reminder", sent) }()

	for i := range candidates {
		b := &candidates[i]

		claimed, err := uc.deps.Repo.MarkReminderSent(ctx, b.ID)
		if err != nil {
			return sent, domain.Infra("mark_reminder_sent", err)
		}
		if !claimed {
			continue
		}
		b.ReminderSent = true
		sent++

		ev := notify.BookingEvent(notify.EventBookingReminder, salon, b, now)
		uc.deps.notifyClient(ctx, ev)
		uc.deps.notifyTenant(ctx, ev)
	}

	if sent > 0 {
		uc.deps.log().Info("reminder sweep", "salon_id", salon.ID, "sent", sent)
	}
	return sent, nil
}
