package booking

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/notify"
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type ReservationInput struct {
	SalonID       uint
	StaffMemberID uint
	ServiceID     uint

	Client domain.ClientInfo

	Start time.Time
	Notes string

	// ActorID identifica o usuário do painel; nil no fluxo público.
	ActorID *uint
}

// ======================================================
// USE CASE
// ======================================================

type CreateReservation struct {
	deps Deps
}

func NewCreateReservation(deps Deps) *CreateReservation {
	return &CreateReservation{deps: deps}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateReservation) Execute(ctx context.Context, in ReservationInput) (*models.Booking, error) {
	ctx, span := uc.deps.tracer().Start(ctx, "booking.create_reservation")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("salon.id", int64(in.SalonID)),
		attribute.Int64("staff_member.id", int64(in.StaffMemberID)),
		attribute.Int64("service.id", int64(in.ServiceID)),
	)

	b, err := uc.execute(ctx, in)
	uc.deps.Metrics.ObserveReservation("create", outcome(err))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome(err))
		return nil, err
	}
	span.SetAttributes(attribute.Int64("booking.id", int64(b.ID)))
	return b, nil
}

func (uc *CreateReservation) execute(ctx context.Context, in ReservationInput) (*models.Booking, error) {

	// --------------------------------------------------
	// 1️⃣ Campos obrigatórios
	// --------------------------------------------------
	client, err := normalizeClient(in.Client)
	if err != nil {
		return nil, err
	}
	if in.ServiceID == 0 {
		return nil, domain.Missing("service_id")
	}
	if in.StaffMemberID == 0 {
		return nil, domain.Missing("staff_member_id")
	}
	if in.Start.IsZero() {
		return nil, domain.Missing("start")
	}

	// --------------------------------------------------
	// 2️⃣ Salão, serviço e funcionário
	// --------------------------------------------------
	salon, err := uc.deps.salon(ctx, in.SalonID)
	if err != nil {
		return nil, err
	}

	svc, err := uc.deps.Repo.GetService(ctx, salon.ID, in.ServiceID)
	if err != nil {
		return nil, lookup(err, "service", "get_service")
	}

	staff, err := uc.deps.Repo.GetStaffMember(ctx, salon.ID, in.StaffMemberID)
	if err != nil {
		return nil, lookup(err, "staff_member", "get_staff_member")
	}
	if !svc.Performs(staff.ID) {
		return nil, domain.NotFound("staff_member")
	}
	if svc.DurationMin <= 0 {
		return nil, domain.Invalid("service_duration")
	}

	// --------------------------------------------------
	// 3️⃣ Data no passado (checagem antecipada)
	// --------------------------------------------------
	if !in.Start.After(uc.deps.now()) {
		return nil, domain.PastDate()
	}

	// --------------------------------------------------
	// 4️⃣ Cliente (busca ou cria)
	// --------------------------------------------------
	cl, err := uc.deps.Repo.ResolveClient(ctx, salon.ID, client)
	if err != nil {
		return nil, domain.Infra("resolve_client", err)
	}

	// --------------------------------------------------
	// 5️⃣ Conflito + criação sob lock da agenda do funcionário
	// --------------------------------------------------
	start := in.Start
	end := start.Add(svc.Duration())
	token := uuid.NewString()

	b := &models.Booking{
		SalonID:           salon.ID,
		ClientID:          cl.ID,
		StaffMemberID:     staff.ID,
		ServiceID:         svc.ID,
		StartTime:         start,
		Status:            string(domain.InitialStatus()),
		ConfirmationToken: &token,
		Notes:             strings.TrimSpace(in.Notes),
	}

	began := time.Now()
	err = uc.deps.Repo.WithStaffLock(ctx, staff.ID, func(tx domain.Repository) error {
		// o relógio de escrita é o que vale
		if !start.After(uc.deps.now()) {
			return domain.PastDate()
		}

		occupying, err := tx.FindOccupying(ctx, staff.ID, start, end)
		if err != nil {
			return domain.Infra("find_occupying", err)
		}
		if c := domain.FindConflict(occupying, start, end, 0); c != nil {
			return conflictWith(c)
		}

		if err := tx.CreateBooking(ctx, b); err != nil {
			return domain.Infra("create_booking", err)
		}
		return nil
	})
	uc.deps.Metrics.ObserveCommitLatency("create", time.Since(began).Seconds())
	if err != nil {
		return nil, lookup(err, "staff_member", "reserve")
	}

	b.Client = *cl
	b.Service = *svc
	b.StaffMember = *staff

	// --------------------------------------------------
	// 6️⃣ Pós-commit: auditoria e notificações
	// --------------------------------------------------
	uc.deps.record(salon.ID, in.ActorID, "booking_created", b, map[string]any{
		"staff_member_id": staff.ID,
		"service_id":      svc.ID,
		"start":           start.UTC(),
	})

	ev := notify.BookingEvent(notify.EventBookingCreated, salon, b, uc.deps.now())
	uc.deps.notifyTenant(ctx, ev)
	uc.deps.notifyClient(ctx, ev)

	return b, nil
}

func normalizeClient(in domain.ClientInfo) (domain.ClientInfo, error) {
	out := domain.ClientInfo{
		Name:  strings.TrimSpace(in.Name),
		Phone: validators.NormalizePhone(in.Phone),
		Email: validators.NormalizeEmail(in.Email),
	}

	if out.Name == "" {
		return out, domain.Missing("client_name")
	}
	if strings.TrimSpace(in.Phone) == "" {
		return out, domain.Missing("client_phone")
	}
	if !validators.IsPhone(out.Phone) {
		return out, domain.Invalid("client_phone")
	}
	if out.Email != "" && !validators.IsEmail(out.Email) {
		return out, domain.Invalid("client_email")
	}
	return out, nil
}
