package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

var pendingStatuses = domain.StatusValues([]domain.Status{
	domain.StatusScheduled,
	domain.StatusConfirmed,
})

// --------------------------------------------------
// Salon
// --------------------------------------------------

func (r *BookingGormRepository) GetSalon(ctx context.Context, salonID uint) (*models.Salon, error) {
	var salon models.Salon
	if err := r.db.WithContext(ctx).First(&salon, salonID).Error; err != nil {
		return nil, translate(err)
	}
	return &salon, nil
}

func (r *BookingGormRepository) GetSalonBySlug(ctx context.Context, slug string) (*models.Salon, error) {
	var salon models.Salon
	if err := r.db.WithContext(ctx).
		Where("slug = ? AND active = ?", slug, true).
		First(&salon).Error; err != nil {
		return nil, translate(err)
	}
	return &salon, nil
}

func (r *BookingGormRepository) ListActiveSalons(ctx context.Context) ([]models.Salon, error) {
	var salons []models.Salon
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("id ASC").
		Find(&salons).Error; err != nil {
		return nil, err
	}
	return salons, nil
}

func (r *BookingGormRepository) GetWorkingHours(
	ctx context.Context,
	salonID uint,
	weekday time.Weekday,
) (*models.WorkingHours, error) {

	var wh models.WorkingHours
	if err := r.db.WithContext(ctx).
		Where("salon_id = ? AND weekday = ?", salonID, int(weekday)).
		First(&wh).Error; err != nil {
		return nil, translate(err)
	}
	return &wh, nil
}

// --------------------------------------------------
// Catalogue
// --------------------------------------------------

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	salonID uint,
	serviceID uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Preload("Staff").
		Where("id = ? AND salon_id = ? AND active = ?", serviceID, salonID, true).
		First(&svc).Error; err != nil {
		return nil, translate(err)
	}
	return &svc, nil
}

func (r *BookingGormRepository) ListServices(ctx context.Context, salonID uint) ([]models.Service, error) {
	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("salon_id = ? AND active = ?", salonID, true).
		Order("name ASC").
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *BookingGormRepository) GetStaffMember(
	ctx context.Context,
	salonID uint,
	staffID uint,
) (*models.StaffMember, error) {

	var staff models.StaffMember
	if err := r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ? AND active = ?", staffID, salonID, true).
		First(&staff).Error; err != nil {
		return nil, translate(err)
	}
	return &staff, nil
}

func (r *BookingGormRepository) ListStaffForService(
	ctx context.Context,
	salonID uint,
	serviceID uint,
) ([]models.StaffMember, error) {

	svc, err := r.GetService(ctx, salonID, serviceID)
	if err != nil {
		return nil, err
	}

	q := r.db.WithContext(ctx).
		Where("salon_id = ? AND active = ?", salonID, true)

	if len(svc.Staff) > 0 {
		ids := make([]uint, 0, len(svc.Staff))
		for _, st := range svc.Staff {
			ids = append(ids, st.ID)
		}
		q = q.Where("id IN ?", ids)
	}

	var staff []models.StaffMember
	if err := q.Order("name ASC").Find(&staff).Error; err != nil {
		return nil, err
	}
	return staff, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

// ResolveClient procura por email e depois por telefone. Encontrado, atualiza
// nome/email; senão cria.
func (r *BookingGormRepository) ResolveClient(
	ctx context.Context,
	salonID uint,
	in domain.ClientInfo,
) (*models.Client, error) {

	client, err := r.findClient(ctx, salonID, in)
	switch {
	case err == nil:
		return client, r.refreshClient(ctx, client, in)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	client = &models.Client{
		SalonID: salonID,
		Name:    in.Name,
		Phone:   in.Phone,
		Email:   in.Email,
	}

	if err := r.db.WithContext(ctx).Create(client).Error; err != nil {
		if !isUniqueViolation(err) {
			return nil, err
		}
		// outra requisição criou o mesmo telefone primeiro
		existing, findErr := r.findClient(ctx, salonID, domain.ClientInfo{Phone: in.Phone})
		if findErr != nil {
			return nil, err
		}
		return existing, r.refreshClient(ctx, existing, in)
	}

	return client, nil
}

func (r *BookingGormRepository) findClient(
	ctx context.Context,
	salonID uint,
	in domain.ClientInfo,
) (*models.Client, error) {

	if in.Email != "" {
		var c models.Client
		err := r.db.WithContext(ctx).
			Where("salon_id = ? AND email = ?", salonID, in.Email).
			Order("id ASC").
			First(&c).Error
		if err == nil {
			return &c, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	if in.Phone == "" {
		return nil, gorm.ErrRecordNotFound
	}

	var c models.Client
	if err := r.db.WithContext(ctx).
		Where("salon_id = ? AND phone = ?", salonID, in.Phone).
		First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *BookingGormRepository) refreshClient(
	ctx context.Context,
	client *models.Client,
	in domain.ClientInfo,
) error {

	changes := map[string]any{}
	if in.Name != "" && in.Name != client.Name {
		changes["name"] = in.Name
		client.Name = in.Name
	}
	if in.Email != "" && in.Email != client.Email {
		changes["email"] = in.Email
		client.Email = in.Email
	}
	if len(changes) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("id = ?", client.ID).
		Updates(changes).Error
}

// --------------------------------------------------
// Booking (write path)
// --------------------------------------------------

// WithStaffLock serializa escritas na agenda de um funcionário via
// SELECT ... FOR UPDATE na linha do funcionário. Funcionários diferentes não se bloqueiam.
func (r *BookingGormRepository) WithStaffLock(
	ctx context.Context,
	staffID uint,
	fn func(tx domain.Repository) error,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var staff models.StaffMember
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			Where("id = ?", staffID).
			Take(&staff).Error; err != nil {
			return translate(err)
		}

		return fn(&BookingGormRepository{db: tx})
	})
}

func (r *BookingGormRepository) FindOccupying(
	ctx context.Context,
	staffID uint,
	from time.Time,
	to time.Time,
) ([]models.Booking, error) {

	statuses := domain.StatusValues(domain.OccupyingStatuses)

	// a janela de busca recua o serviço mais longo já agendado para o funcionário
	var longest int
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Joins("JOIN services ON services.id = bookings.service_id").
		Where(
			"bookings.staff_member_id = ? AND bookings.status IN ? AND bookings.start_time < ?",
			staffID, statuses, to.UTC(),
		).
		Select("COALESCE(MAX(services.duration_min), 0)").
		Row().Scan(&longest); err != nil {
		return nil, err
	}
	lookback := time.Duration(longest) * time.Minute

	var rows []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Client").
		Where(
			"staff_member_id = ? AND status IN ? AND start_time >= ? AND start_time < ?",
			staffID,
			statuses,
			from.Add(-lookback).UTC(),
			to.UTC(),
		).
		Order("start_time ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := rows[:0]
	for _, b := range rows {
		if domain.Overlaps(b.StartTime, b.EndTime(), from, to) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *BookingGormRepository) CreateBooking(ctx context.Context, b *models.Booking) error {
	b.StartTime = b.StartTime.UTC()
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(b).Error
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
	expected domain.Status,
) error {

	b.StartTime = b.StartTime.UTC()
	b.UpdatedAt = time.Now().UTC()

	res := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND status = ?", b.ID, string(expected)).
		Updates(map[string]any{
			"status":           b.Status,
			"start_time":       b.StartTime,
			"notes":            b.Notes,
			"client_confirmed": b.ClientConfirmed,
			"reminder_sent":    b.ReminderSent,
			"paid_amount":      b.PaidAmount,
			"cancelled_at":     b.CancelledAt,
			"completed_at":     b.CompletedAt,
			"updated_at":       b.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrStale
	}
	return nil
}

func (r *BookingGormRepository) MarkReminderSent(ctx context.Context, bookingID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND reminder_sent = ?", bookingID, false).
		Update("reminder_sent", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// --------------------------------------------------
// Booking (read path)
// --------------------------------------------------

func (r *BookingGormRepository) withDetails() *gorm.DB {
	return r.db.
		Preload("Client").
		Preload("Service").
		Preload("StaffMember")
}

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	salonID uint,
	bookingID uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.withDetails().WithContext(ctx).
		Where("id = ? AND salon_id = ?", bookingID, salonID).
		First(&b).Error; err != nil {
		return nil, translate(err)
	}
	return &b, nil
}

func (r *BookingGormRepository) GetBookingByToken(
	ctx context.Context,
	salonID uint,
	token string,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.withDetails().WithContext(ctx).
		Where("salon_id = ? AND confirmation_token = ?", salonID, token).
		First(&b).Error; err != nil {
		return nil, translate(err)
	}
	return &b, nil
}

func (r *BookingGormRepository) ListBookingsForPeriod(
	ctx context.Context,
	salonID uint,
	staffID uint,
	from time.Time,
	to time.Time,
) ([]models.Booking, error) {

	q := r.withDetails().WithContext(ctx).
		Where("salon_id = ? AND start_time >= ? AND start_time < ?", salonID, from.UTC(), to.UTC())
	if staffID != 0 {
		q = q.Where("staff_member_id = ?", staffID)
	}

	var rows []models.Booking
	if err := q.Order("start_time ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *BookingGormRepository) ListReminderCandidates(
	ctx context.Context,
	salonID uint,
	from time.Time,
	to time.Time,
) ([]models.Booking, error) {

	var rows []models.Booking
	if err := r.withDetails().WithContext(ctx).
		Where(
			"salon_id = ? AND status IN ? AND reminder_sent = ? AND start_time > ? AND start_time <= ?",
			salonID, pendingStatuses, false, from.UTC(), to.UTC(),
		).
		Order("start_time ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *BookingGormRepository) ListNoShowCandidates(
	ctx context.Context,
	salonID uint,
	before time.Time,
) ([]models.Booking, error) {

	var rows []models.Booking
	if err := r.withDetails().WithContext(ctx).
		Where(
			"salon_id = ? AND status IN ? AND start_time < ?",
			salonID, pendingStatuses, before.UTC(),
		).
		Order("start_time ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
