// Package events carries notification failure events from channels to the
// listeners interested in them.
package events

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/oggyb/whatsapp-notifier/internal/whatsapp"
)

// NotificationFailed is emitted once for every send the transport rejected.
type NotificationFailed struct {
	Notifiable   any
	Notification any
	Channel      string
	Data         whatsapp.Failure
	OccurredAt   time.Time
}

// Dispatcher receives failure events. Dispatch is synchronous.
type Dispatcher interface {
	Dispatch(ctx context.Context, event NotificationFailed)
}

// Listener handles a dispatched event.
type Listener interface {
	Handle(ctx context.Context, event NotificationFailed) error
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(ctx context.Context, event NotificationFailed) error

// Handle implements Listener.
func (f ListenerFunc) Handle(ctx context.Context, event NotificationFailed) error {
	if f == nil {
		return nil
	}
	return f(ctx, event)
}

var _ Dispatcher = (*Bus)(nil)

// Bus is an in-process Dispatcher that fans an event out to its listeners
// in registration order. A failing listener is logged and does not stop the
// others.
type Bus struct {
	mu        sync.RWMutex
	listeners []Listener
	logger    zerolog.Logger
	now       func() time.Time
	timeout   time.Duration
}

// DefaultListenerTimeout bounds each Dispatch call.
const DefaultListenerTimeout = 5 * time.Second

// NewBus creates an empty bus.
func NewBus(logger zerolog.Logger) *Bus {
	return &Bus{logger: logger, now: time.Now, timeout: DefaultListenerTimeout}
}

// SetListenerTimeout changes how long listeners get per Dispatch.
func (b *Bus) SetListenerTimeout(d time.Duration) {
	if d > 0 {
		b.timeout = d
	}
}

// Listen registers listeners.
func (b *Bus) Listen(ls ...Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, l := range ls {
		if l != nil {
			b.listeners = append(b.listeners, l)
		}
	}
}

// Dispatch delivers the event to every listener. Listeners run on a context
// detached from ctx's cancellation, bounded by the bus timeout, so a send that
// failed on its own deadline is still recorded.
func (b *Bus) Dispatch(ctx context.Context, event NotificationFailed) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = b.now()
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), b.timeout)
	defer cancel()

	b.mu.RLock()
	listeners := append([]Listener(nil), b.listeners...)
	b.mu.RUnlock()

	for _, l := range listeners {
		if err := l.Handle(ctx, event); err != nil {
			b.logger.Warn().
				Err(err).
				Str("channel", event.Channel).
				Str("to", event.Data.To).
				Msg("failure listener returned an error")
		}
	}
}
