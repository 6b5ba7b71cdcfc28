package booking

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func TestCanTransition(t *testing.T) {
	allowed := map[[2]Status]bool{
		{StatusScheduled, StatusConfirmed}:  true,
		{StatusScheduled, StatusCancelled}:  true,
		{StatusScheduled, StatusNoShow}:     true,
		{StatusConfirmed, StatusInProgress}: true,
		{StatusConfirmed, StatusCancelled}:  true,
		{StatusConfirmed, StatusNoShow}:     true,
		{StatusInProgress, StatusCompleted}: true,
	}
	all := []Status{StatusScheduled, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled, StatusNoShow}

	for _, from := range all {
		for _, to := range all {
			err := CanTransition(from, to)
			if allowed[[2]Status{from, to}] {
				assert.NoError(t, err, "%s -> %s", from, to)
			} else {
				assert.True(t, IsState(err), "%s -> %s", from, to)
			}
		}
	}
}

func TestTerminalAndOccupying(t *testing.T) {
	for _, s := range []Status{StatusCompleted, StatusCancelled, StatusNoShow} {
		assert.True(t, s.IsTerminal())
		assert.False(t, s.Occupies())
	}
	for _, s := range []Status{StatusScheduled, StatusConfirmed, StatusInProgress} {
		assert.False(t, s.IsTerminal())
		assert.True(t, s.Occupies())
	}
}

func TestCancelAppendsNote(t *testing.T) {
	now := clock(9, 0)
	b := &models.Booking{Status: string(StatusScheduled), Notes: "alergia a esmalte"}

	require.NoError(t, Cancel(b, "  viagem ", now))
	assert.Equal(t, "alergia a esmalte\nCancelado. Motivo: viagem", b.Notes)
	require.NotNil(t, b.CancelledAt)

	b2 := &models.Booking{Status: string(StatusConfirmed)}
	require.NoError(t, Cancel(b2, "", now))
	assert.Equal(t, "Cancelado.", b2.Notes)

	assert.True(t, IsState(Cancel(b, "de novo", now)))
}

func TestCompleteRecordsPayment(t *testing.T) {
	b := &models.Booking{Status: string(StatusInProgress)}
	paid := decimal.RequireFromString("120.00")

	require.NoError(t, Complete(b, &paid, clock(11, 0)))
	assert.Equal(t, string(StatusCompleted), b.Status)
	assert.True(t, b.PaidAmount.Valid)
	assert.True(t, b.PaidAmount.Decimal.Equal(paid))
}

func TestTokenUsable(t *testing.T) {
	token := "abc"
	b := &models.Booking{StartTime: clock(10, 0), ConfirmationToken: &token}

	assert.True(t, TokenUsable(b, clock(9, 59)))
	assert.False(t, TokenUsable(b, clock(10, 0)))
	assert.False(t, TokenUsable(&models.Booking{StartTime: clock(10, 0)}, clock(9, 0)))
}

func TestFindConflictSkipsSelf(t *testing.T) {
	svc := models.Service{DurationMin: 60}
	bookings := []models.Booking{
		{StartTime: clock(14, 0), Service: svc},
		{StartTime: clock(16, 0), Service: svc},
	}
	bookings[0].ID = 1
	bookings[1].ID = 2

	assert.Nil(t, FindConflict(bookings, clock(14, 30), clock(15, 30), 1))
	c := FindConflict(bookings, clock(15, 30), clock(16, 30), 1)
	require.NotNil(t, c)
	assert.Equal(t, uint(2), c.ID)
}

func TestErrorMessages(t *testing.T) {
	ce := &ConflictError{BookingID: 7, Start: clock(17, 0), End: clock(18, 0), ClientName: "Ana"}
	assert.Equal(t, CodeSlotTaken, ce.Code())
	assert.NotContains(t, ce.PublicMessage(), "Ana")
	assert.Equal(t, "Conflito com o agendamento de Ana das 17:00 às 18:00.", ce.StaffMessage(time.UTC))

	assert.Equal(t, "invalid_transition: completed -> cancelled",
		(&StateError{From: StatusCompleted, To: StatusCancelled}).Error())
	assert.Equal(t, "missing_field: client_name", Missing("client_name").Error())

	infra := Infra("create_booking", assert.AnError)
	assert.ErrorIs(t, infra, assert.AnError)
	assert.Same(t, ce, Infra("x", ce).(*ConflictError))
}
