package bootstrap

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/logging"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/booking"
)

func TestSweeperCoversEverySalon(t *testing.T) {
	db := testDB(t)
	repo := repository.NewBookingGormRepository(db)
	now := time.Date(2026, 10, 20, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 2; i++ {
		salon := models.Salon{
			Name: fmt.Sprintf("Salão %d", i), Slug: fmt.Sprintf("salao-%d", i),
			Timezone: "UTC", OpenHour: 8, CloseHour: 18, SlotMinutes: 30, Active: true,
		}
		require.NoError(t, db.Create(&salon).Error)
		staff := models.StaffMember{SalonID: salon.ID, Name: "Carla", Active: true}
		require.NoError(t, db.Create(&staff).Error)
		svc := models.Service{SalonID: salon.ID, Name: "Corte", DurationMin: 30, Price: decimal.NewFromInt(50), Active: true}
		require.NoError(t, db.Create(&svc).Error)

		for _, start := range []time.Time{now.Add(-3 * time.Hour), now.Add(2 * time.Hour)} {
			require.NoError(t, repo.CreateBooking(context.Background(), &models.Booking{
				SalonID: salon.ID, StaffMemberID: staff.ID, ServiceID: svc.ID,
				StartTime: start, Status: string(domain.StatusScheduled),
			}))
		}
	}

	s := NewSweeper(booking.Deps{
		Repo:   repo,
		Logger: logging.Discard(),
		Clock:  func() time.Time { return now },
	}, logging.Discard())

	assert.Equal(t, 2, s.Run(context.Background(), SweepNoShow))
	assert.Equal(t, 2, s.Run(context.Background(), SweepReminders))

	assert.Zero(t, s.Run(context.Background(), SweepNoShow))
	assert.Zero(t, s.Run(context.Background(), SweepReminders))
}
