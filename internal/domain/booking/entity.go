package booking

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Confirm(b *models.Booking) error {
	if err := CanTransition(Status(b.Status), StatusConfirmed); err != nil {
		return err
	}
	b.Status = string(StatusConfirmed)
	return nil
}

func Cancel(b *models.Booking, reason string, now time.Time) error {
	if err := CanTransition(Status(b.Status), StatusCancelled); err != nil {
		return err
	}

	line := "Cancelado."
	if r := strings.TrimSpace(reason); r != "" {
		line = "Cancelado. Motivo: " + r
	}

	b.Status = string(StatusCancelled)
	b.Notes = AppendNote(b.Notes, line)
	b.CancelledAt = &now
	return nil
}

func Start(b *models.Booking) error {
	if err := CanTransition(Status(b.Status), StatusInProgress); err != nil {
		return err
	}
	b.Status = string(StatusInProgress)
	return nil
}

func Complete(b *models.Booking, paid *decimal.Decimal, now time.Time) error {
	if err := CanTransition(Status(b.Status), StatusCompleted); err != nil {
		return err
	}
	b.Status = string(StatusCompleted)
	b.CompletedAt = &now
	if paid != nil {
		b.PaidAmount = decimal.NewNullDecimal(*paid)
	}
	return nil
}

func MarkNoShow(b *models.Booking) error {
	if err := CanTransition(Status(b.Status), StatusNoShow); err != nil {
		return err
	}
	b.Status = string(StatusNoShow)
	return nil
}

// TokenUsable: o token vale até o horário do atendimento.
func TokenUsable(b *models.Booking, now time.Time) bool {
	return b.ConfirmationToken != nil && b.StartTime.After(now)
}

func AppendNote(notes, line string) string {
	if strings.TrimSpace(notes) == "" {
		return line
	}
	return notes + "\n" + line
}
