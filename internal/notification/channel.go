package notification

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/rs/zerolog"

	"github.com/oggyb/whatsapp-notifier/internal/events"
	"github.com/oggyb/whatsapp-notifier/internal/metrics"
	"github.com/oggyb/whatsapp-notifier/internal/whatsapp"
)

const (
	// ChannelName is the logical channel key notifiables route for.
	ChannelName = "whatsapp"
	// ImplementationKey is the fallback routing key, kept for notifiables
	// registered against the channel implementation instead of its name.
	ImplementationKey = "notification.WhatsappChannel"
)

// Option customises the channel.
type Option func(*WhatsappChannel)

// WithLogger sets the channel logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *WhatsappChannel) { c.logger = l }
}

// WithMetrics records outcomes in m.
func WithMetrics(m *metrics.ChannelMetrics) Option {
	return func(c *WhatsappChannel) { c.metrics = m }
}

// WhatsappChannel sends notifications through a whatsapp.Sender. It keeps no
// per-send state and is safe for concurrent use.
type WhatsappChannel struct {
	sender     whatsapp.Sender
	dispatcher events.Dispatcher
	logger     zerolog.Logger
	metrics    *metrics.ChannelMetrics
	now        func() time.Time
}

// NewWhatsappChannel constructs the channel.
func NewWhatsappChannel(sender whatsapp.Sender, dispatcher events.Dispatcher, opts ...Option) (*WhatsappChannel, error) {
	if sender == nil {
		return nil, errors.New("whatsapp channel: sender is required")
	}
	if dispatcher == nil {
		return nil, errors.New("whatsapp channel: event dispatcher is required")
	}

	c := &WhatsappChannel{
		sender:     sender,
		dispatcher: dispatcher,
		logger:     zerolog.Nop(),
		now:        time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// Send delivers the notification and returns the decoded API response. It
// returns nil, nil when the message is not eligible or has no destination.
func (c *WhatsappChannel) Send(ctx context.Context, notifiable Notifiable, n Notification) (Result, error) {
	out, err := c.Deliver(ctx, notifiable, n)
	return out.Result, err
}

// Deliver is Send with the skip reason and resolved destination exposed.
//
// Transport failures are passed to the message's error handler and emitted
// as one NotificationFailed event before being returned unchanged.
func (c *WhatsappChannel) Deliver(ctx context.Context, notifiable Notifiable, n Notification) (Outcome, error) {
	msg := whatsapp.MessageFrom(n.BuildWhatsappMessage(notifiable))

	if msg == nil || !msg.CanSend() {
		return c.skip(n, SkipIneligible), nil
	}

	to := c.resolveAddress(msg, notifiable, n)
	if to == "" {
		return c.skip(n, SkipNoRoute), nil
	}

	start := c.now()
	raw, err := c.sender.Send(ctx, msg.Request(to))
	took := c.now().Sub(start)

	if err != nil {
		c.metrics.ObserveSend(ChannelName, metrics.OutcomeFailed, took)
		c.reportFailure(ctx, notifiable, n, msg, err)
		return Outcome{To: to}, err
	}

	result, err := decode(raw)
	if err != nil {
		c.metrics.ObserveSend(ChannelName, metrics.OutcomeInvalidBody, took)
		c.logger.Warn().
			Err(err).
			Str("to", to).
			Str("notification", typeName(n)).
			Msg("whatsapp response could not be decoded")
		return Outcome{To: to}, err
	}

	c.metrics.ObserveSend(ChannelName, metrics.OutcomeSent, took)
	c.logger.Debug().
		Str("to", to).
		Str("notification", typeName(n)).
		Dur("took", took).
		Msg("whatsapp notification sent")

	return Outcome{Result: result, To: to}, nil
}

// resolveAddress picks the first non-empty of: the payload chat ID, the
// route for ChannelName, the route for ImplementationKey.
func (c *WhatsappChannel) resolveAddress(msg *whatsapp.Message, notifiable Notifiable, n Notification) string {
	if to := msg.ChatID(); to != "" {
		return to
	}
	if notifiable == nil {
		return ""
	}
	if to := notifiable.RouteNotificationFor(ChannelName, n); to != "" {
		return to
	}
	return notifiable.RouteNotificationFor(ImplementationKey, n)
}

func (c *WhatsappChannel) reportFailure(ctx context.Context, notifiable Notifiable, n Notification, msg *whatsapp.Message, err error) {
	failure := whatsapp.Failure{
		To:      msg.ChatID(),
		Request: msg.ToMap(),
		Err:     err,
	}

	if handler := msg.ErrorHandler(); handler != nil {
		handler(failure)
	}

	// The send's deadline may be what failed it; listeners still need to run.
	c.dispatcher.Dispatch(context.WithoutCancel(ctx), events.NotificationFailed{
		Notifiable:   notifiable,
		Notification: n,
		Channel:      ChannelName,
		Data:         failure,
		OccurredAt:   c.now(),
	})
}

func (c *WhatsappChannel) skip(n Notification, reason SkipReason) Outcome {
	c.metrics.ObserveSkip(ChannelName, string(reason))
	c.logger.Debug().
		Str("reason", string(reason)).
		Str("notification", typeName(n)).
		Msg("whatsapp notification skipped")
	return Outcome{Skipped: reason}
}

// decode turns a transport result into a Result. Raw responses are decoded
// strictly; already decoded maps are returned unchanged.
func decode(raw any) (Result, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case *whatsapp.Response:
		if v == nil {
			return nil, nil
		}
		m, err := v.Decode()
		if err != nil {
			return nil, err
		}
		return Result(m), nil
	case map[string]any:
		return Result(v), nil
	case Result:
		return v, nil
	default:
		return nil, fmt.Errorf("%w: unexpected transport result %T", whatsapp.ErrSerialization, raw)
	}
}

func typeName(v any) string {
	if v == nil {
		return ""
	}
	return reflect.TypeOf(v).String()
}
