package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Event struct {
	ActorID  *uuid.UUID
	Action   string
	Entity   string
	EntityID *uuid.UUID
	Metadata any

	// Recipient is the e-mail address to notify, if any.
	Recipient     string
	RecipientName string

	OccurredAt time.Time
}

// Sink consumes dispatched events. Sinks run on the dispatcher worker, one
// event at a time.
type Sink interface {
	Handle(ctx context.Context, ev Event) error
}

type SinkFunc func(ctx context.Context, ev Event) error

func (f SinkFunc) Handle(ctx context.Context, ev Event) error {
	return f(ctx, ev)
}

const (
	defaultQueueSize = 100
	sinkTimeout      = 10 * time.Second
)

// Dispatcher fans events out to its sinks asynchronously. A full queue drops
// the event; the API never waits on auditing.
type Dispatcher struct {
	sinks  []Sink
	logger *slog.Logger
	queue  chan Event
	done   chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(logger *slog.Logger, sinks ...Sink) *Dispatcher {
	return newDispatcher(logger, defaultQueueSize, sinks...)
}

func newDispatcher(logger *slog.Logger, size int, sinks ...Sink) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	d := &Dispatcher{
		sinks:  sinks,
		logger: logger.With("component", "audit"),
		queue:  make(chan Event, size),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		for _, s := range d.sinks {
			ctx, cancel := context.WithTimeout(context.Background(), sinkTimeout)
			if err := s.Handle(ctx, ev); err != nil {
				d.logger.Error("audit sink failed",
					slog.String("action", ev.Action),
					slog.Any("err", err),
				)
			}
			cancel()
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return
	}

	select {
	case d.queue <- ev:
	default:
		d.logger.Warn("audit queue full, dropping event", slog.String("action", ev.Action))
	}
}

// Close stops accepting events and waits until the queued ones are handled
// or ctx expires.
func (d *Dispatcher) Close(ctx context.Context) error {
	if d == nil {
		return nil
	}

	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
