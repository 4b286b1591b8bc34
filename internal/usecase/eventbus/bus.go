// Package eventbus is the in-process publish/subscribe hub for conversation
// events. Exporters (Kafka, metrics, audit log) attach as subscribers.
package eventbus

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"

	"debate-bot/internal/domain"
)

// subscription matches one event type, or every type when all is set.
type subscription struct {
	id      uint64
	kind    domain.EventType
	all     bool
	handler domain.EventHandler
}

func (s subscription) matches(t domain.EventType) bool {
	return s.all || s.kind == t
}

// Stats counts deliveries since the bus was created.
type Stats struct {
	Published uint64
	Delivered uint64
	Panicked  uint64
	Dropped   uint64
}

// Bus is an in-process, goroutine-safe event bus. Every handler runs in its
// own goroutine with a context detached from the publisher's cancellation,
// so slow exporters never hold up a chat turn.
type Bus struct {
	mu     sync.RWMutex
	subs   []subscription
	nextID atomic.Uint64
	logger *slog.Logger
	wg     sync.WaitGroup
	closed atomic.Bool

	published atomic.Uint64
	delivered atomic.Uint64
	panicked  atomic.Uint64
	dropped   atomic.Uint64
}

var _ domain.EventBus = (*Bus)(nil)

// New creates an event bus.
func New(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{logger: logger}
}

// Publish fans an event out to every matching subscriber.
func (b *Bus) Publish(ctx context.Context, event domain.Event) {
	if b.closed.Load() {
		b.dropped.Add(1)
		return
	}
	b.published.Add(1)

	b.mu.RLock()
	targets := make([]subscription, 0, len(b.subs))
	for _, s := range b.subs {
		if s.matches(event.Type) {
			targets = append(targets, s)
		}
	}
	b.mu.RUnlock()

	detached := context.WithoutCancel(ctx)
	for _, sub := range targets {
		b.dispatch(detached, event, sub)
	}
}

func (b *Bus) dispatch(ctx context.Context, event domain.Event, sub subscription) {
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				b.panicked.Add(1)
				b.logger.Error("event handler panicked",
					"event", string(event.Type),
					"conversation_id", event.ConversationID,
					"panic", r,
				)
			}
		}()
		sub.handler(ctx, event)
		b.delivered.Add(1)
	}()
}

// Subscribe registers a handler for one event type and returns its
// unsubscribe function.
func (b *Bus) Subscribe(eventType domain.EventType, handler domain.EventHandler) func() {
	return b.add(subscription{kind: eventType, handler: handler})
}

// SubscribeAll registers a handler that receives every event.
func (b *Bus) SubscribeAll(handler domain.EventHandler) func() {
	return b.add(subscription{all: true, handler: handler})
}

func (b *Bus) add(sub subscription) func() {
	sub.id = b.nextID.Add(1)

	b.mu.Lock()
	b.subs = append(b.subs, sub)
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			b.subs = slices.DeleteFunc(b.subs, func(s subscription) bool { return s.id == sub.id })
		})
	}
}

// Subscribers returns the number of registered handlers.
func (b *Bus) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Stats returns delivery counters.
func (b *Bus) Stats() Stats {
	return Stats{
		Published: b.published.Load(),
		Delivered: b.delivered.Load(),
		Panicked:  b.panicked.Load(),
		Dropped:   b.dropped.Load(),
	}
}

// Close stops accepting events and waits for in-flight handlers. It is
// idempotent.
func (b *Bus) Close() {
	if b.closed.Swap(true) {
		return
	}
	b.wg.Wait()
}
