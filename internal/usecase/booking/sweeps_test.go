package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/notify"
)

func TestNoShowSweep(t *testing.T) {
	f := newFixture(t)
	late := f.reserve(t, &f.staff, &f.haircut, at(20, 10, 0), "11987650001")
	recent := f.reserve(t, &f.staff, &f.haircut, at(20, 11, 0), "11987650002")
	confirmed := f.reserve(t, &f.other, &f.haircut, at(20, 10, 0), "11987650003")

	_, err := NewConfirmByToken(f.deps).Execute(context.Background(), f.salon.ID, *confirmed.ConfirmationToken)
	require.NoError(t, err)

	uc := NewNoShowSweep(f.deps)

	// 10:00 + 61 min: o das 11:00 ainda está na tolerância
	f.now = at(20, 11, 1)
	n, err := uc.Execute(context.Background(), f.salon.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	assert.Equal(t, string(domain.StatusNoShow), f.reload(t, late.ID).Status)
	assert.Equal(t, string(domain.StatusNoShow), f.reload(t, confirmed.ID).Status)
	assert.Equal(t, string(domain.StatusScheduled), f.reload(t, recent.ID).Status)
	assert.Contains(t, f.notifier.tenantTypes(), notify.EventBookingNoShow)

	n, err = uc.Execute(context.Background(), f.salon.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestNoShowSweepSkipsInProgress(t *testing.T) {
	f := newFixture(t)
	b := f.reserve(t, &f.staff, &f.haircut, at(20, 10, 0), "11987650001")

	f.now = at(20, 10, 0).Add(time.Minute)
	_, err := NewChangeStatus(f.deps).Execute(context.Background(), ChangeStatusInput{
		SalonID: f.salon.ID, BookingID: b.ID, To: domain.StatusConfirmed,
	})
	require.NoError(t, err)
	_, err = NewChangeStatus(f.deps).Execute(context.Background(), ChangeStatusInput{
		SalonID: f.salon.ID, BookingID: b.ID, To: domain.StatusInProgress,
	})
	require.NoError(t, err)

	f.now = at(20, 12, 0)
	n, err := NewNoShowSweep(f.deps).Execute(context.Background(), f.salon.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, string(domain.StatusInProgress), f.reload(t, b.ID).Status)
}

func TestReminderSweepSendsOnce(t *testing.T) {
	f := newFixture(t)
	soon := f.reserve(t, &f.staff, &f.haircut, at(19, 11, 0), "11987650001")
	later := f.reserve(t, &f.staff, &f.haircut, at(21, 10, 0), "11987650002")

	f.notifier.client = nil
	uc := NewReminderSweep(f.deps)

	n, err := uc.Execute(context.Background(), f.salon.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.Len(t, f.notifier.client, 1)
	assert.Equal(t, notify.EventBookingReminder, f.notifier.client[0].Type)
	assert.Equal(t, soon.ID, f.notifier.client[0].BookingID)

	assert.True(t, f.reload(t, soon.ID).ReminderSent)
	assert.False(t, f.reload(t, later.ID).ReminderSent)

	n, err = uc.Execute(context.Background(), f.salon.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Len(t, f.notifier.client, 1)
}

func TestReminderSweepAfterMove(t *testing.T) {
	f := newFixture(t)
	b := f.reserve(t, &f.staff, &f.haircut, at(19, 11, 0), "11987650001")
	uc := NewReminderSweep(f.deps)

	n, err := uc.Execute(context.Background(), f.salon.ID)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	_, err = NewMoveReservation(f.deps).Execute(context.Background(), MoveInput{
		SalonID: f.salon.ID, BookingID: b.ID, NewStart: at(19, 15, 0),
	})
	require.NoError(t, err)

	n, err = uc.Execute(context.Background(), f.salon.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestReminderSweepIgnoresCancelled(t *testing.T) {
	f := newFixture(t)
	b := f.reserve(t, &f.staff, &f.haircut, at(19, 11, 0), "11987650001")

	_, err := NewCancelByToken(f.deps).Execute(context.Background(), f.salon.ID, *b.ConfirmationToken, "")
	require.NoError(t, err)

	n, err := NewReminderSweep(f.deps).Execute(context.Background(), f.salon.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}
