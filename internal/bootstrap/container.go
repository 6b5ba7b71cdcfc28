package bootstrap

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/logging"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/notify"
	"github.com/BruksfildServices01/salon-scheduler/internal/tracing"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/booking"
)

// ======================================================
// CONTAINER
// ======================================================

// Container monta os singletons compartilhados pela API e pelo sweeper.
type Container struct {
	DB       *gorm.DB
	Deps     booking.Deps
	Registry *prometheus.Registry
	Logger   *logging.Logger

	audit  *audit.Dispatcher
	queue  *notify.Queue
	redis  *redis.Client
	traces *sdktrace.TracerProvider
}

func New(cfg *config.Config, db *gorm.DB, log *logging.Logger) *Container {
	if log == nil {
		log = logging.Default()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.NewBookingMetrics(reg)

	c := &Container{
		DB:       db,
		Registry: reg,
		Logger:   log,
	}

	// --------------------------------------------------
	// Notificações: Redis (painel) + SendGrid (cliente)
	// --------------------------------------------------
	var tenant notify.TenantPublisher
	if cfg.RedisAddr != "" {
		c.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := c.redis.Ping(ctx).Err(); err != nil {
			log.Warn("redis unavailable, tenant notifications will only be logged", "addr", cfg.RedisAddr, "error", err)
		}
		tenant = notify.NewRedisPublisher(c.redis)
	}

	var email notify.EmailSender
	if sg := notify.NewSendGridSender(notify.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.SendGridFromEmail,
		FromName:  cfg.SendGridFromName,
	}, log); sg != nil {
		email = sg
	}

	svc := notify.NewService(tenant, email, notify.LinkBuilder{BaseURL: cfg.PublicBaseURL}, log)
	c.queue = notify.NewQueue(svc, cfg.NotifyQueueSize, cfg.NotifyTimeout, log, m)

	// --------------------------------------------------
	// Auditoria
	// --------------------------------------------------
	c.audit = audit.NewDispatcher(audit.New(db), log)

	// --------------------------------------------------
	// Tracing
	// --------------------------------------------------
	tp, err := tracing.Setup(context.Background(), tracing.Config{
		Enabled:      cfg.OTelEnabled,
		ServiceName:  cfg.ServiceName,
		OTLPEndpoint: cfg.OTelEndpoint,
		SampleRatio:  cfg.OTelSampleRatio,
	})
	if err != nil {
		log.Warn("tracing disabled", "endpoint", cfg.OTelEndpoint, "error", err)
	}
	c.traces = tp

	c.Deps = booking.Deps{
		Repo:     repository.NewBookingGormRepository(db),
		Notifier: c.queue,
		Audit:    c.audit,
		Metrics:  m,
		Logger:   log,
	}
	if tp != nil {
		c.Deps.Tracer = tp.Tracer(booking.TracerName)
	}
	return c
}

// Close drena notificações, auditoria e spans pendentes.
func (c *Container) Close() {
	c.queue.Close()
	c.audit.Close()
	if c.redis != nil {
		_ = c.redis.Close()
	}
	if c.traces != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.traces.Shutdown(ctx); err != nil {
			c.Logger.Warn("tracer shutdown failed", "error", err)
		}
	}
}
