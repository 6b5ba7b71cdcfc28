package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	dbpkg "github.com/BruksfildServices01/salon-scheduler/internal/db"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/logging"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/notify"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

var saoPaulo = timezone.Location("America/Sao_Paulo")

// 2026-10-19 09:00 em São Paulo.
var testNow = time.Date(2026, 10, 19, 9, 0, 0, 0, saoPaulo)

func at(day, hour, minute int) time.Time {
	return time.Date(2026, 10, day, hour, minute, 0, 0, saoPaulo)
}

type recorder struct {
	mu     sync.Mutex
	tenant []notify.Event
	client []notify.Event
}

func (r *recorder) NotifyTenant(_ context.Context, ev notify.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tenant = append(r.tenant, ev)
	return nil
}

func (r *recorder) NotifyClient(_ context.Context, ev notify.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.client = append(r.client, ev)
	return nil
}

// brokenNotifier registra as tentativas e falha sempre.
type brokenNotifier struct {
	mu       sync.Mutex
	attempts []notify.EventType
}

var errNotifyDown = errors.New("notify: broker down")

func (n *brokenNotifier) NotifyTenant(_ context.Context, ev notify.Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.attempts = append(n.attempts, ev.Type)
	return errNotifyDown
}

func (n *brokenNotifier) NotifyClient(_ context.Context, ev notify.Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.attempts = append(n.attempts, ev.Type)
	return errNotifyDown
}

func (r *recorder) tenantTypes() []notify.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]notify.EventType, 0, len(r.tenant))
	for _, ev := range r.tenant {
		out = append(out, ev.Type)
	}
	return out
}

type fixture struct {
	db       *gorm.DB
	repo     *repository.BookingGormRepository
	notifier *recorder
	deps     Deps
	now      time.Time

	salon    models.Salon
	staff    models.StaffMember
	other    models.StaffMember
	haircut  models.Service // 60 min
	manicure models.Service // 30 min, só staff
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, dbpkg.Migrate(db))

	f := &fixture{db: db, notifier: &recorder{}, now: testNow}

	f.salon = models.Salon{
		Name: "Studio Bela", Slug: "studio-bela", Timezone: "America/Sao_Paulo",
		OpenHour: 8, CloseHour: 18, SlotMinutes: 30, DefaultDurationMin: 30, Active: true,
	}
	require.NoError(t, db.Create(&f.salon).Error)

	f.staff = models.StaffMember{SalonID: f.salon.ID, Name: "Carla", Active: true}
	f.other = models.StaffMember{SalonID: f.salon.ID, Name: "Bruno", Active: true}
	require.NoError(t, db.Create(&f.staff).Error)
	require.NoError(t, db.Create(&f.other).Error)

	f.haircut = models.Service{
		SalonID: f.salon.ID, Name: "Corte", DurationMin: 60,
		Price: decimal.RequireFromString("80.00"), Active: true,
	}
	require.NoError(t, db.Create(&f.haircut).Error)

	f.manicure = models.Service{
		SalonID: f.salon.ID, Name: "Manicure", DurationMin: 30,
		Price: decimal.RequireFromString("45.50"), Active: true,
		Staff: []models.StaffMember{f.staff},
	}
	require.NoError(t, db.Create(&f.manicure).Error)

	f.repo = repository.NewBookingGormRepository(db)
	f.deps = Deps{
		Repo:     f.repo,
		Notifier: f.notifier,
		Logger:   logging.Discard(),
		Clock:    func() time.Time { return f.now },
	}
	return f
}

func (f *fixture) reserve(t *testing.T, staff *models.StaffMember, svc *models.Service, start time.Time, phone string) *models.Booking {
	t.Helper()
	b, err := NewCreateReservation(f.deps).Execute(context.Background(), ReservationInput{
		SalonID:       f.salon.ID,
		StaffMemberID: staff.ID,
		ServiceID:     svc.ID,
		Client:        domain.ClientInfo{Name: "Cliente " + phone, Phone: phone},
		Start:         start,
	})
	require.NoError(t, err)
	return b
}

func (f *fixture) reload(t *testing.T, id uint) *models.Booking {
	t.Helper()
	b, err := f.repo.GetBooking(context.Background(), f.salon.ID, id)
	require.NoError(t, err)
	return b
}
