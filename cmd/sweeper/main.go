// Command sweeper roda as rotinas periódicas da agenda: lembretes de
// agendamentos próximos e marcação de faltas.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/bootstrap"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/salon-scheduler/internal/db"
	"github.com/BruksfildServices01/salon-scheduler/internal/logging"
)

func main() {
	job := flag.String("job", "all", "reminders | no-show | all")
	loop := flag.Bool("loop", false, "keep running on REMINDER_INTERVAL / NO_SHOW_INTERVAL")
	flag.Parse()

	cfg := config.Load()
	cfg.ServiceName += "-sweeper"
	log := logging.New(cfg.LogLevel).With("component", "sweeper")

	runReminders := *job == "all" || *job == "reminders"
	runNoShow := *job == "all" || *job == "no-show"
	if !runReminders && !runNoShow {
		log.Error("unknown job", "job", *job)
		os.Exit(2)
	}

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		log.Error("database unavailable", "error", err)
		os.Exit(1)
	}

	app := bootstrap.New(cfg, db, log)
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s := bootstrap.NewSweeper(app.Deps, log)

	if !*loop {
		if runReminders {
			s.Run(ctx, bootstrap.SweepReminders)
		}
		if runNoShow {
			s.Run(ctx, bootstrap.SweepNoShow)
		}
		return
	}

	var (
		reminderTick <-chan time.Time
		noShowTick   <-chan time.Time
	)
	if runReminders {
		t := time.NewTicker(cfg.ReminderInterval)
		defer t.Stop()
		reminderTick = t.C
		s.Run(ctx, bootstrap.SweepReminders)
	}
	if runNoShow {
		t := time.NewTicker(cfg.NoShowInterval)
		defer t.Stop()
		noShowTick = t.C
		s.Run(ctx, bootstrap.SweepNoShow)
	}

	for {
		select {
		case <-ctx.Done():
			log.Info("sweeper stopped")
			return
		case <-reminderTick:
			s.Run(ctx, bootstrap.SweepReminders)
		case <-noShowTick:
			s.Run(ctx, bootstrap.SweepNoShow)
		}
	}
}
