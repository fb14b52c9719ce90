// Package notify delivers order events to the notification channel without
// holding up the command that produced them.
package notify

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"fulfillment/internal/core/ports"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
)

// ErrDispatcherClosed is returned by Close when called twice.
var ErrDispatcherClosed = errors.New("notification dispatcher already closed")

// Sender pushes one event to a concrete channel.
type Sender interface {
	Send(ctx context.Context, event ports.Event) error
}

// Option configures an AsyncDispatcher.
type Option func(*AsyncDispatcher)

// WithWorkers sets how many goroutines drain the queue. Defaults to 2.
func WithWorkers(n int) Option {
	return func(d *AsyncDispatcher) {
		if n > 0 {
			d.workers = n
		}
	}
}

// WithQueueSize bounds the number of pending events. Defaults to 256.
func WithQueueSize(n int) Option {
	return func(d *AsyncDispatcher) {
		if n > 0 {
			d.queueSize = n
		}
	}
}

// WithSendTimeout caps a single Send call. Defaults to 5s.
func WithSendTimeout(timeout time.Duration) Option {
	return func(d *AsyncDispatcher) {
		if timeout > 0 {
			d.sendTimeout = timeout
		}
	}
}

// WithMeter records sent and dropped counters on m instead of a noop meter.
func WithMeter(m metric.Meter) Option {
	return func(d *AsyncDispatcher) {
		if m != nil {
			d.meter = m
		}
	}
}

// AsyncDispatcher implements ports.Notifier over a bounded queue drained by a
// fixed pool of workers. A full queue or a failed send is logged and the
// event is dropped.
type AsyncDispatcher struct {
	sender      Sender
	logger      *slog.Logger
	workers     int
	queueSize   int
	sendTimeout time.Duration
	meter       metric.Meter

	sent    metric.Int64Counter
	dropped metric.Int64Counter

	mu     sync.RWMutex
	closed bool
	queue  chan ports.Event
	wg     sync.WaitGroup
}

// NewAsyncDispatcher starts the worker pool right away. Call Close on shutdown
// to drain what is queued.
//
// Example:
//
//	d := notify.NewAsyncDispatcher(kafka.NewSender(brokers, topic), logger,
//	    notify.WithWorkers(4), notify.WithMeter(otel.Meter("fulfillment")))
//	defer d.Close(context.Background())
//
//	d.Notify(ctx, ports.Event{Type: ports.EventOrderCreated, OrderID: id})
func NewAsyncDispatcher(sender Sender, logger *slog.Logger, opts ...Option) *AsyncDispatcher {
	d := &AsyncDispatcher{
		sender:      sender,
		logger:      logger.With("component", "notification_dispatcher"),
		workers:     2,
		queueSize:   256,
		sendTimeout: 5 * time.Second,
		meter:       metricnoop.NewMeterProvider().Meter("notify"),
	}
	for _, opt := range opts {
		opt(d)
	}

	var err error
	if d.sent, err = d.meter.Int64Counter("notifications.sent"); err != nil {
		d.logger.Warn("create notifications.sent counter", "error", err)
	}
	if d.dropped, err = d.meter.Int64Counter("notifications.dropped"); err != nil {
		d.logger.Warn("create notifications.dropped counter", "error", err)
	}

	d.queue = make(chan ports.Event, d.queueSize)
	for range d.workers {
		d.wg.Add(1)
		go d.work()
	}
	return d
}

// Notify enqueues event and returns immediately.
func (d *AsyncDispatcher) Notify(ctx context.Context, event ports.Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.drop(ctx, event, "dispatcher closed")
		return
	}

	select {
	case d.queue <- event:
	default:
		d.drop(ctx, event, "queue full")
	}
}

// Close stops accepting events and waits for queued ones to be sent or for
// ctx to end.
func (d *AsyncDispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return ErrDispatcherClosed
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *AsyncDispatcher) work() {
	defer d.wg.Done()

	for event := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), d.sendTimeout)
		err := d.sender.Send(ctx, event)
		cancel()

		if err != nil {
			d.drop(context.Background(), event, err.Error())
			continue
		}
		d.sent.Add(context.Background(), 1, metric.WithAttributes(attribute.String("type", string(event.Type))))
	}
}

func (d *AsyncDispatcher) drop(ctx context.Context, event ports.Event, reason string) {
	d.dropped.Add(ctx, 1, metric.WithAttributes(attribute.String("type", string(event.Type))))
	d.logger.WarnContext(ctx, "notification dropped",
		"type", event.Type,
		"order_id", event.OrderID.String(),
		"reason", reason,
	)
}
