package notify

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/logging"
)

// Dispatcher é o colaborador injetado nos casos de uso. Entregas são
// best-effort: o chamador apenas registra o erro.
type Dispatcher interface {
	NotifyTenant(ctx context.Context, ev Event) error
	NotifyClient(ctx context.Context, ev Event) error
}

// TenantPublisher entrega eventos ao painel do salão.
type TenantPublisher interface {
	Publish(ctx context.Context, ev Event) error
}

// Service roteia eventos: salão via TenantPublisher, cliente via email.
type Service struct {
	tenant TenantPublisher
	email  EmailSender
	links  LinkBuilder
	logger *logging.Logger
}

func NewService(
	tenant TenantPublisher,
	email EmailSender,
	links LinkBuilder,
	logger *logging.Logger,
) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	if tenant == nil {
		tenant = NewLogPublisher(logger)
	}
	if email == nil {
		email = NewStubEmailSender(logger)
	}
	return &Service{
		tenant: tenant,
		email:  email,
		links:  links,
		logger: logger,
	}
}

func (s *Service) NotifyTenant(ctx context.Context, ev Event) error {
	return s.tenant.Publish(ctx, ev)
}

func (s *Service) NotifyClient(ctx context.Context, ev Event) error {
	if ev.ClientEmail == "" {
		s.logger.Debug("client without email, skipping",
			"booking_id", ev.BookingID, "type", ev.Type)
		return nil
	}

	msg, ok := ClientEmail(ev, s.links)
	if !ok {
		return nil
	}
	return s.email.Send(ctx, msg)
}

// LogPublisher só registra o evento. Usado quando Redis não está configurado.
type LogPublisher struct {
	logger *logging.Logger
}

func NewLogPublisher(logger *logging.Logger) *LogPublisher {
	if logger == nil {
		logger = logging.Default()
	}
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(_ context.Context, ev Event) error {
	p.logger.Info("tenant notification",
		"salon_id", ev.SalonID, "type", ev.Type, "booking_id", ev.BookingID, "message", ev.Message)
	return nil
}
