package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type ClientInfo struct {
	Name  string
	Phone string
	Email string
}

// Repository é a fronteira de persistência do motor de agendamento.
// Implementações devolvem ErrNotFound quando o registro não existe.
type Repository interface {
	// -------- Salon --------
	GetSalon(ctx context.Context, salonID uint) (*models.Salon, error)
	GetSalonBySlug(ctx context.Context, slug string) (*models.Salon, error)
	ListActiveSalons(ctx context.Context) ([]models.Salon, error)
	GetWorkingHours(ctx context.Context, salonID uint, weekday time.Weekday) (*models.WorkingHours, error)

	// -------- Catalogue --------
	GetService(ctx context.Context, salonID, serviceID uint) (*models.Service, error)
	ListServices(ctx context.Context, salonID uint) ([]models.Service, error)
	GetStaffMember(ctx context.Context, salonID, staffID uint) (*models.StaffMember, error)
	ListStaffForService(ctx context.Context, salonID, serviceID uint) ([]models.StaffMember, error)

	// -------- Client --------
	ResolveClient(ctx context.Context, salonID uint, in ClientInfo) (*models.Client, error)

	// -------- Booking (write path) --------

	// WithStaffLock executa fn numa transação que detém o lock exclusivo da
	// agenda do funcionário. fn deve usar apenas o tx recebido.
	WithStaffLock(ctx context.Context, staffID uint, fn func(tx Repository) error) error

	// FindOccupying devolve agendamentos ocupantes que colidem com [from, to).
	FindOccupying(ctx context.Context, staffID uint, from, to time.Time) ([]models.Booking, error)

	CreateBooking(ctx context.Context, b *models.Booking) error

	// UpdateBooking grava o estado mutável somente se o status atual ainda for
	// expected. Caso contrário devolve ErrStale.
	UpdateBooking(ctx context.Context, b *models.Booking, expected Status) error

	// MarkReminderSent é idempotente: true somente para quem virou a flag.
	MarkReminderSent(ctx context.Context, bookingID uint) (bool, error)

	// -------- Booking (read path) --------
	GetBooking(ctx context.Context, salonID, bookingID uint) (*models.Booking, error)
	GetBookingByToken(ctx context.Context, salonID uint, token string) (*models.Booking, error)
	ListBookingsForPeriod(ctx context.Context, salonID, staffID uint, from, to time.Time) ([]models.Booking, error)
	ListReminderCandidates(ctx context.Context, salonID uint, from, to time.Time) ([]models.Booking, error)
	ListNoShowCandidates(ctx context.Context, salonID uint, before time.Time) ([]models.Booking, error)
}
