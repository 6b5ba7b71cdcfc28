package notify

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/logging"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
)

var (
	ErrQueueFull   = errors.New("notify: queue full")
	ErrQueueClosed = errors.New("notify: queue closed")
)

type channel string

const (
	channelTenant channel = "tenant"
	channelClient channel = "client"
)

type job struct {
	channel channel
	ev      Event
}

// Queue entrega notificações fora do caminho da requisição. Fila cheia
// descarta o evento; nunca bloqueia o chamador.
type Queue struct {
	next    Dispatcher
	jobs    chan job
	timeout time.Duration
	logger  *logging.Logger
	metrics *metrics.BookingMetrics

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func NewQueue(
	next Dispatcher,
	size int,
	timeout time.Duration,
	logger *logging.Logger,
	m *metrics.BookingMetrics,
) *Queue {
	if size <= 0 {
		size = 100
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}

	q := &Queue{
		next:    next,
		jobs:    make(chan job, size),
		timeout: timeout,
		logger:  logger,
		metrics: m,
	}

	q.wg.Add(1)
	go q.worker()
	return q
}

func (q *Queue) NotifyTenant(_ context.Context, ev Event) error {
	return q.enqueue(job{channel: channelTenant, ev: ev})
}

func (q *Queue) NotifyClient(_ context.Context, ev Event) error {
	return q.enqueue(job{channel: channelClient, ev: ev})
}

func (q *Queue) enqueue(j job) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.jobs <- j:
		return nil
	default:
		q.metrics.ObserveNotification(string(j.channel), "dropped")
		q.logger.Warn("notification queue full, dropping event",
			"channel", j.channel, "type", j.ev.Type, "booking_id", j.ev.BookingID)
		return ErrQueueFull
	}
}

func (q *Queue) worker() {
	defer q.wg.Done()

	for j := range q.jobs {
		ctx, cancel := context.WithTimeout(context.Background(), q.timeout)

		var err error
		switch j.channel {
		case channelTenant:
			err = q.next.NotifyTenant(ctx, j.ev)
		case channelClient:
			err = q.next.NotifyClient(ctx, j.ev)
		}
		cancel()

		if err != nil {
			q.metrics.ObserveNotification(string(j.channel), "failed")
			q.logger.Error("notification failed",
				"channel", j.channel, "type", j.ev.Type, "booking_id", j.ev.BookingID, "error", err)
			continue
		}
		q.metrics.ObserveNotification(string(j.channel), "sent")
	}
}

// Close para de aceitar eventos e espera a fila esvaziar.
func (q *Queue) Close() {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.jobs)
	}
	q.mu.Unlock()

	q.wg.Wait()
}
