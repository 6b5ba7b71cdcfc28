package booking

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/logging"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/notify"
)

const TracerName = "salon-scheduler/usecase/booking"

// ======================================================
// DEPENDENCIES
// ======================================================

// Deps agrupa os colaboradores comuns aos casos de uso. Audit, Metrics,
// Notifier, Tracer e Logger são opcionais.
type Deps struct {
	Repo     domain.Repository
	Notifier notify.Dispatcher
	Audit    *audit.Dispatcher
	Metrics  *metrics.BookingMetrics
	Logger   *logging.Logger
	Tracer   trace.Tracer
	Clock    func() time.Time
}

func (d Deps) now() time.Time {
	if d.Clock != nil {
		return d.Clock()
	}
	return time.Now()
}

func (d Deps) tracer() trace.Tracer {
	if d.Tracer != nil {
		return d.Tracer
	}
	return otel.Tracer(TracerName)
}

func (d Deps) log() *logging.Logger {
	if d.Logger == nil {
		return logging.Default()
	}
	return d.Logger
}

// ======================================================
// HELPERS
// ======================================================

// lookup traduz ausência de registro em not_found e o resto em falha de infra.
func lookup(err error, field, op string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NotFound(field)
	}
	return domain.Infra(op, err)
}

func (d Deps) salon(ctx context.Context, salonID uint) (*models.Salon, error) {
	if salonID == 0 {
		return nil, domain.Missing("salon_id")
	}
	salon, err := d.Repo.GetSalon(ctx, salonID)
	if err != nil {
		return nil, lookup(err, "salon", "get_salon")
	}
	return salon, nil
}

// notifyTenant/notifyClient nunca devolvem erro: a mudança de estado já foi gravada.
func (d Deps) notifyTenant(ctx context.Context, ev notify.Event) {
	if d.Notifier == nil {
		return
	}
	if err := d.Notifier.NotifyTenant(ctx, ev); err != nil {
		d.log().Warn("tenant notification not dispatched",
			"salon_id", ev.SalonID, "booking_id", ev.BookingID, "type", ev.Type, "error", err)
	}
}

func (d Deps) notifyClient(ctx context.Context, ev notify.Event) {
	if d.Notifier == nil {
		return
	}
	if err := d.Notifier.NotifyClient(ctx, ev); err != nil {
		d.log().Warn("client notification not dispatched",
			"salon_id", ev.SalonID, "booking_id", ev.BookingID, "type", ev.Type, "error", err)
	}
}

func (d Deps) record(salonID uint, actorID *uint, action string, b *models.Booking, meta any) {
	id := b.ID
	d.Audit.Dispatch(audit.Event{
		SalonID:  salonID,
		ActorID:  actorID,
		Action:   action,
		Entity:   "booking",
		EntityID: &id,
		Metadata: meta,
	})
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case isConflict(err):
		return "conflict"
	case domain.IsState(err):
		return "invalid_state"
	default:
		var ie *domain.InfrastructureError
		if errors.As(err, &ie) {
			return "error"
		}
		return "invalid"
	}
}

func isConflict(err error) bool {
	_, ok := domain.AsConflict(err)
	return ok
}

func conflictWith(b *models.Booking) error {
	return &domain.ConflictError{
		BookingID:  b.ID,
		Start:      b.StartTime,
		End:        b.EndTime(),
		ClientName: b.Client.Name,
	}
}

// stale converte ErrStale (CAS perdido) em erro de transição.
func stale(err error, from, to domain.Status, op string) error {
	if errors.Is(err, domain.ErrStale) {
		return &domain.StateError{From: from, To: to}
	}
	return domain.Infra(op, err)
}
