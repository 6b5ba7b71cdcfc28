package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/notify"
)

func TestCreateReservationSuccess(t *testing.T) {
	f := newFixture(t)

	b, err := NewCreateReservation(f.deps).Execute(context.Background(), ReservationInput{
		SalonID:       f.salon.ID,
		StaffMemberID: f.staff.ID,
		ServiceID:     f.haircut.ID,
		Client:        domain.ClientInfo{Name: " Ana ", Phone: "(11) 98765-4321", Email: "Ana@Example.com"},
		Start:         at(20, 14, 0),
		Notes:         "primeira vez",
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusScheduled), b.Status)
	require.NotNil(t, b.ConfirmationToken)
	assert.Len(t, *b.ConfirmationToken, 36)
	assert.False(t, b.ReminderSent)

	stored := f.reload(t, b.ID)
	assert.Equal(t, "Ana", stored.Client.Name)
	assert.Equal(t, "11987654321", stored.Client.Phone)
	assert.Equal(t, "ana@example.com", stored.Client.Email)
	assert.True(t, stored.StartTime.Equal(at(20, 14, 0)))
	assert.True(t, stored.EndTime().Equal(at(20, 15, 0)))

	assert.Equal(t, []notify.EventType{notify.EventBookingCreated}, f.notifier.tenantTypes())
	require.Len(t, f.notifier.client, 1)
	assert.Equal(t, *b.ConfirmationToken, f.notifier.client[0].Token)
}

func TestCreateReservationPastDate(t *testing.T) {
	f := newFixture(t)

	_, err := NewCreateReservation(f.deps).Execute(context.Background(), ReservationInput{
		SalonID:       f.salon.ID,
		StaffMemberID: f.staff.ID,
		ServiceID:     f.haircut.ID,
		Client:        domain.ClientInfo{Name: "Ana", Phone: "11987654321"},
		Start:         f.now.AddDate(0, 0, -1),
	})
	assert.True(t, domain.IsValidation(err, domain.CodePastDate))

	// exatamente agora também não é futuro
	_, err = NewCreateReservation(f.deps).Execute(context.Background(), ReservationInput{
		SalonID:       f.salon.ID,
		StaffMemberID: f.staff.ID,
		ServiceID:     f.haircut.ID,
		Client:        domain.ClientInfo{Name: "Ana", Phone: "11987654321"},
		Start:         f.now,
	})
	assert.True(t, domain.IsValidation(err, domain.CodePastDate))
}

func TestCreateReservationValidation(t *testing.T) {
	f := newFixture(t)
	uc := NewCreateReservation(f.deps)
	ctx := context.Background()

	base := ReservationInput{
		SalonID:       f.salon.ID,
		StaffMemberID: f.staff.ID,
		ServiceID:     f.haircut.ID,
		Client:        domain.ClientInfo{Name: "Ana", Phone: "11987654321"},
		Start:         at(20, 14, 0),
	}

	cases := []struct {
		name  string
		edit  func(in *ReservationInput)
		code  string
		field string
	}{
		{"missing name", func(in *ReservationInput) { in.Client.Name = "  " }, domain.CodeMissingField, "client_name"},
		{"missing phone", func(in *ReservationInput) { in.Client.Phone = "" }, domain.CodeMissingField, "client_phone"},
		{"missing service", func(in *ReservationInput) { in.ServiceID = 0 }, domain.CodeMissingField, "service_id"},
		{"missing staff", func(in *ReservationInput) { in.StaffMemberID = 0 }, domain.CodeMissingField, "staff_member_id"},
		{"missing start", func(in *ReservationInput) { in.Start = time.Time{} }, domain.CodeMissingField, "start"},
		{"bad email", func(in *ReservationInput) { in.Client.Email = "ana-at-example" }, domain.CodeInvalidFormat, "client_email"},
		{"bad phone", func(in *ReservationInput) { in.Client.Phone = "12-34" }, domain.CodeInvalidFormat, "client_phone"},
		{"unknown service", func(in *ReservationInput) { in.ServiceID = 999 }, domain.CodeNotFound, "service"},
		{"unqualified staff", func(in *ReservationInput) {
			in.ServiceID = f.manicure.ID
			in.StaffMemberID = f.other.ID
		}, domain.CodeNotFound, "staff_member"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := base
			tc.edit(&in)
			_, err := uc.Execute(ctx, in)

			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.code, ve.Code)
			assert.Equal(t, tc.field, ve.Field)
		})
	}

	var count int64
	require.NoError(t, f.db.Model(&models.Booking{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateReservationInactiveService(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.db.Model(&models.Service{}).Where("id = ?", f.haircut.ID).Update("active", false).Error)

	_, err := NewCreateReservation(f.deps).Execute(context.Background(), ReservationInput{
		SalonID:       f.salon.ID,
		StaffMemberID: f.staff.ID,
		ServiceID:     f.haircut.ID,
		Client:        domain.ClientInfo{Name: "Ana", Phone: "11987654321"},
		Start:         at(20, 14, 0),
	})
	assert.True(t, domain.IsValidation(err, domain.CodeNotFound))
}

func TestCreateReservationBoundaries(t *testing.T) {
	f := newFixture(t)
	first := f.reserve(t, &f.staff, &f.haircut, at(20, 14, 0), "11987650001")

	// encostado: 15:00 começa quando o anterior termina
	f.reserve(t, &f.staff, &f.haircut, at(20, 15, 0), "11987650002")

	// um minuto de sobreposição
	_, err := NewCreateReservation(f.deps).Execute(context.Background(), ReservationInput{
		SalonID:       f.salon.ID,
		StaffMemberID: f.staff.ID,
		ServiceID:     f.haircut.ID,
		Client:        domain.ClientInfo{Name: "Bia", Phone: "11987650003"},
		Start:         at(20, 13, 1),
	})

	ce, ok := domain.AsConflict(err)
	require.True(t, ok)
	assert.Equal(t, first.ID, ce.BookingID)
	assert.Equal(t, "Cliente 11987650001", ce.ClientName)
	assert.True(t, ce.Start.Equal(at(20, 14, 0)))
	assert.True(t, ce.End.Equal(at(20, 15, 0)))
	assert.NotContains(t, ce.PublicMessage(), ce.ClientName)
}

func TestCreateReservationIgnoresCancelledBookings(t *testing.T) {
	f := newFixture(t)
	b := f.reserve(t, &f.staff, &f.haircut, at(20, 14, 0), "11987650001")

	_, err := NewCancelByToken(f.deps).Execute(context.Background(), f.salon.ID, *b.ConfirmationToken, "imprevisto")
	require.NoError(t, err)

	f.reserve(t, &f.staff, &f.haircut, at(20, 14, 0), "11987650002")
}

func TestCreateReservationRoundTrip(t *testing.T) {
	f := newFixture(t)
	f.reserve(t, &f.staff, &f.haircut, at(20, 10, 0), "11987650001")

	res, err := NewGetFreeSlots(f.deps).Execute(context.Background(), FreeSlotsInput{
		SalonID: f.salon.ID, StaffMemberID: f.staff.ID, ServiceID: f.haircut.ID, Date: at(20, 0, 0),
	})
	require.NoError(t, err)

	for _, s := range res.Slots {
		assert.False(t, domain.Overlaps(s, s.Add(res.Duration), at(20, 10, 0), at(20, 11, 0)),
			"slot %s overlaps reserved booking", s.Format("15:04"))
	}
}

func TestCreateReservationConcurrent(t *testing.T) {
	f := newFixture(t)
	uc := NewCreateReservation(f.deps)

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), ReservationInput{
				SalonID:       f.salon.ID,
				StaffMemberID: f.staff.ID,
				ServiceID:     f.haircut.ID,
				Client:        domain.ClientInfo{Name: "Concorrente", Phone: "1198765000" + string(rune('0'+i))},
				Start:         at(20, 14, 0).Add(time.Duration(i) * time.Minute),
			})
		}(i)
	}
	wg.Wait()

	ok, conflicts := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case isConflict(err):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, conflicts)

	var count int64
	require.NoError(t, f.db.Model(&models.Booking{}).Where("staff_member_id = ?", f.staff.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreateReservationParallelStaffDoNotConflict(t *testing.T) {
	f := newFixture(t)
	f.reserve(t, &f.staff, &f.haircut, at(20, 14, 0), "11987650001")
	f.reserve(t, &f.other, &f.haircut, at(20, 14, 0), "11987650002")
}

func TestCreateReservationResolvesExistingClient(t *testing.T) {
	f := newFixture(t)
	uc := NewCreateReservation(f.deps)
	ctx := context.Background()

	first, err := uc.Execute(ctx, ReservationInput{
		SalonID: f.salon.ID, StaffMemberID: f.staff.ID, ServiceID: f.haircut.ID,
		Client: domain.ClientInfo{Name: "Ana", Phone: "11987654321"},
		Start:  at(20, 9, 0),
	})
	require.NoError(t, err)

	// mesmo telefone: atualiza nome e email
	second, err := uc.Execute(ctx, ReservationInput{
		SalonID: f.salon.ID, StaffMemberID: f.staff.ID, ServiceID: f.haircut.ID,
		Client: domain.ClientInfo{Name: "Ana Souza", Phone: "11 98765-4321", Email: "ana@example.com"},
		Start:  at(20, 11, 0),
	})
	require.NoError(t, err)
	assert.Equal(t, first.ClientID, second.ClientID)

	// email tem prioridade sobre telefone
	third, err := uc.Execute(ctx, ReservationInput{
		SalonID: f.salon.ID, StaffMemberID: f.staff.ID, ServiceID: f.haircut.ID,
		Client: domain.ClientInfo{Name: "Ana S.", Phone: "11900000000", Email: "ana@example.com"},
		Start:  at(20, 13, 0),
	})
	require.NoError(t, err)
	assert.Equal(t, first.ClientID, third.ClientID)

	var clients []models.Client
	require.NoError(t, f.db.Find(&clients).Error)
	require.Len(t, clients, 1)
	assert.Equal(t, "Ana S.", clients[0].Name)
	assert.Equal(t, "11987654321", clients[0].Phone)
}

func TestCreateReservationSeesServicesLongerThanHalfADay(t *testing.T) {
	f := newFixture(t)
	bridal := models.Service{SalonID: f.salon.ID, Name: "Dia da noiva", DurationMin: 13 * 60, Active: true}
	require.NoError(t, f.db.Create(&bridal).Error)

	first := f.reserve(t, &f.staff, &bridal, at(20, 6, 0), "11911111111") // 06:00-19:00

	_, err := NewCreateReservation(f.deps).Execute(context.Background(), ReservationInput{
		SalonID:       f.salon.ID,
		StaffMemberID: f.staff.ID,
		ServiceID:     f.haircut.ID,
		Client:        domain.ClientInfo{Name: "Ana", Phone: "11987654321"},
		Start:         at(20, 18, 30),
	})
	c, ok := domain.AsConflict(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, first.ID, c.BookingID)

	res, err := NewGetFreeSlots(f.deps).Execute(context.Background(), FreeSlotsInput{
		SalonID:       f.salon.ID,
		StaffMemberID: f.staff.ID,
		ServiceID:     f.haircut.ID,
		Date:          at(20, 0, 0),
	})
	require.NoError(t, err)
	assert.Empty(t, res.Slots)
}

func TestCreateReservationRejectsZeroDurationService(t *testing.T) {
	f := newFixture(t)
	instant := models.Service{SalonID: f.salon.ID, Name: "Avaliação", Active: true}
	require.NoError(t, f.db.Create(&instant).Error)

	for _, phone := range []string{"11911111111", "11922222222"} {
		_, err := NewCreateReservation(f.deps).Execute(context.Background(), ReservationInput{
			SalonID:       f.salon.ID,
			StaffMemberID: f.staff.ID,
			ServiceID:     instant.ID,
			Client:        domain.ClientInfo{Name: "Cliente", Phone: phone},
			Start:         at(20, 14, 0),
		})
		assert.True(t, domain.IsValidation(err, domain.CodeInvalidFormat), "got %v", err)
	}

	var count int64
	require.NoError(t, f.db.Model(&models.Booking{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.Empty(t, f.notifier.tenantTypes())
}
