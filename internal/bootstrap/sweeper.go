package bootstrap

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/logging"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/booking"
)

type SweepKind string

const (
	SweepReminders SweepKind = "reminders"
	SweepNoShow    SweepKind = "no-show"
)

// Sweeper executa as varreduras salão por salão. Falha em um salão não
// interrompe os demais.
type Sweeper struct {
	deps      booking.Deps
	log       *logging.Logger
	reminders *booking.ReminderSweep
	noShow    *booking.NoShowSweep
}

func NewSweeper(deps booking.Deps, log *logging.Logger) *Sweeper {
	if log == nil {
		log = logging.Default()
	}
	return &Sweeper{
		deps:      deps,
		log:       log,
		reminders: booking.NewReminderSweep(deps),
		noShow:    booking.NewNoShowSweep(deps),
	}
}

// Run devolve o total processado em todos os salões ativos.
func (s *Sweeper) Run(ctx context.Context, kind SweepKind) int {
	salons, err := s.deps.Repo.ListActiveSalons(ctx)
	if err != nil {
		s.log.Error("list active salons failed", "sweep", kind, "error", err)
		return 0
	}

	total := 0
	for _, salon := range salons {
		if ctx.Err() != nil {
			break
		}

		var (
			n   int
			err error
		)
		switch kind {
		case SweepReminders:
			n, err = s.reminders.Execute(ctx, salon.ID)
		case SweepNoShow:
			n, err = s.noShow.Execute(ctx, salon.ID)
		}
		total += n

		if err != nil {
			s.log.Error("sweep failed", "sweep", kind, "salon_id", salon.ID, "error", err)
		}
	}

	s.log.Info("sweep finished", "sweep", kind, "salons", len(salons), "processed", total)
	return total
}
