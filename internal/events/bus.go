package events

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/roach88/hotels/internal/value"
)

// ErrClosed is returned when publishing to a closed bus.
var ErrClosed = errors.New("event bus closed")

// Event is a published value on a topic.
type Event struct {
	Seq   int64
	Topic string
	Value value.Value
}

// Handler consumes events for a topic.
type Handler func(ctx context.Context, ev Event) error

// Bus is a topic-keyed publish/subscribe channel.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler

	// publishMu keeps sequence order equal to queue order.
	publishMu sync.Mutex

	queue   *queue
	clock   Sequencer
	logger  *slog.Logger
	onError func(Event, error)
}

// Option configures a Bus.
type Option func(*Bus)

// WithClock overrides the sequence source (for deterministic tests).
func WithClock(clock Sequencer) Option {
	return func(b *Bus) {
		b.clock = clock
	}
}

// WithLogger sets the logger used for dispatch diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bus) {
		b.logger = logger
	}
}

// WithErrorHandler registers fn to observe handler failures after they
// are logged. fn runs on the dispatch goroutine.
func WithErrorHandler(fn func(Event, error)) Option {
	return func(b *Bus) {
		b.onError = fn
	}
}

// NewBus creates an open bus with no subscribers.
func NewBus(opts ...Option) *Bus {
	b := &Bus{
		handlers: make(map[string][]Handler),
		queue:    newQueue(),
		clock:    NewClock(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe registers h for topic. Handlers run in registration order.
func (b *Bus) Subscribe(topic string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[topic] = append(b.handlers[topic], h)
}

// Publish enqueues v on topic and returns the event's sequence number.
// Thread-safe: may be called from any goroutine.
func (b *Bus) Publish(topic string, v value.Value) (int64, error) {
	if v == nil {
		v = value.Missing{}
	}

	b.publishMu.Lock()
	defer b.publishMu.Unlock()

	if b.queue.isClosed() {
		return 0, ErrClosed
	}

	ev := Event{Seq: b.clock.Next(), Topic: topic, Value: v}
	if !b.queue.enqueue(ev) {
		return 0, ErrClosed
	}
	return ev.Seq, nil
}

// Len returns the number of events waiting for dispatch.
func (b *Bus) Len() int {
	return b.queue.len()
}

// Close stops accepting events. Events already queued are still
// delivered by Run or Drain.
func (b *Bus) Close() {
	b.queue.close()
}

// Run dispatches events until ctx is cancelled or the bus is closed and
// empty. It must be called from exactly one goroutine.
func (b *Bus) Run(ctx context.Context) error {
	b.logger.Debug("event dispatch starting")

	for {
		if ev, ok := b.queue.tryDequeue(); ok {
			b.dispatch(ctx, ev)
			continue
		}

		select {
		case <-ctx.Done():
			b.logger.Debug("event dispatch stopping: context cancelled")
			b.queue.close()
			return ctx.Err()
		case <-b.queue.wait():
			// The signal channel is closed with the queue, so this fires
			// repeatedly once closed; stop when nothing is left.
			if b.queue.isClosed() && b.queue.len() == 0 {
				b.logger.Debug("event dispatch stopping: bus closed")
				return nil
			}
		}
	}
}

// Drain dispatches every queued event and returns once the queue is
// empty. Use it instead of Run for synchronous, step-by-step processing.
func (b *Bus) Drain(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		ev, ok := b.queue.tryDequeue()
		if !ok {
			return nil
		}
		b.dispatch(ctx, ev)
	}
}

func (b *Bus) dispatch(ctx context.Context, ev Event) {
	b.mu.RLock()
	handlers := b.handlers[ev.Topic]
	b.mu.RUnlock()

	if len(handlers) == 0 {
		b.logger.Debug("event has no subscribers", "topic", ev.Topic, "seq", ev.Seq)
		return
	}

	b.logger.Debug("dispatching event", "topic", ev.Topic, "seq", ev.Seq, "handlers", len(handlers))
	for _, h := range handlers {
		if err := h(ctx, ev); err != nil {
			// Log and continue.
			b.logger.Error("event handler failed",
				"topic", ev.Topic,
				"seq", ev.Seq,
				"error", err,
			)
			if b.onError != nil {
				b.onError(ev, err)
			}
		}
	}
}
