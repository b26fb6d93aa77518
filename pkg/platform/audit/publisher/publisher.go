// Package publisher fans audit events out to a store and optional sinks,
// either synchronously or through a buffered channel drained by a
// background goroutine.
package publisher

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	audit "peselgate/pkg/platform/audit"
)

// ErrClosed is returned by Emit after Close; late events are dropped
// rather than panicking on the closed inbox.
var ErrClosed = errors.New("audit publisher is closed")

// Sink receives every event after it is persisted to the store. Sink
// failures are logged, never propagated: audit fan-out must not fail the
// request that produced the event.
type Sink interface {
	Publish(ctx context.Context, event audit.Event) error
	Close()
}

type Publisher struct {
	store  audit.Store
	sinks  []Sink
	logger *slog.Logger

	inbox chan audit.Event
	wg    sync.WaitGroup
	once  sync.Once

	mu     sync.RWMutex
	closed bool
}

type Option func(*Publisher)

// WithAsyncBuffer switches Emit to enqueue into a buffered channel
// processed by a background goroutine. Close drains the buffer.
func WithAsyncBuffer(size int) Option {
	return func(p *Publisher) {
		p.inbox = make(chan audit.Event, size)
	}
}

// WithSink adds a downstream sink, e.g. the Kafka publisher.
func WithSink(sink Sink) Option {
	return func(p *Publisher) {
		if sink != nil {
			p.sinks = append(p.sinks, sink)
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func NewPublisher(store audit.Store, opts ...Option) *Publisher {
	p := &Publisher{
		store:  store,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.inbox != nil {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for event := range p.inbox {
				p.deliver(context.Background(), event)
			}
		}()
	}
	return p
}

// Emit records an event. Missing IDs, timestamps and categories are
// filled in so call sites stay small.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.Category == "" {
		event.Category = audit.CategoryOf(event.Action)
	}

	if p.inbox != nil {
		// The read lock holds off Close until the send lands; the worker
		// keeps draining, so the send cannot block Close indefinitely.
		p.mu.RLock()
		defer p.mu.RUnlock()
		if p.closed {
			return ErrClosed
		}
		p.inbox <- event
		return nil
	}
	p.deliver(ctx, event)
	return nil
}

func (p *Publisher) deliver(ctx context.Context, event audit.Event) {
	if err := p.store.Append(ctx, event); err != nil {
		p.logger.ErrorContext(ctx, "failed to persist audit event",
			"action", event.Action,
			"error", err,
		)
	}
	for _, sink := range p.sinks {
		if err := sink.Publish(ctx, event); err != nil {
			p.logger.WarnContext(ctx, "audit sink publish failed",
				"action", event.Action,
				"error", err,
			)
		}
	}
}

// ListRecent exposes the store's recent events for the admin surface.
func (p *Publisher) ListRecent(ctx context.Context, limit int) ([]audit.Event, error) {
	return p.store.ListRecent(ctx, limit)
}

// Close drains the async buffer, waits for the worker and closes sinks.
// Safe to call more than once.
func (p *Publisher) Close() {
	p.once.Do(func() {
		if p.inbox != nil {
			p.mu.Lock()
			p.closed = true
			p.mu.Unlock()
			close(p.inbox)
			p.wg.Wait()
		}
		for _, sink := range p.sinks {
			sink.Close()
		}
	})
}
