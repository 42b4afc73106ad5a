// Package notification implements the WhatsApp notification channel: it turns
// a notification into a HyperSender request, sends it, and reports failures
// to the event dispatcher.
package notification

import (
	"strings"

	"github.com/oggyb/whatsapp-notifier/internal/whatsapp"
)

// Notifiable is the target of a notification. It supplies a routing address
// for a channel key, or "" when it has none.
type Notifiable interface {
	RouteNotificationFor(channel string, n Notification) string
}

// Notification builds the WhatsApp content for a notifiable. Returning a
// whatsapp.Text is shorthand for a text-only message.
type Notification interface {
	BuildWhatsappMessage(notifiable Notifiable) whatsapp.Content
}

// Result is the decoded API response of a successful send.
type Result map[string]any

// String returns a top-level string field, or "".
func (r Result) String(key string) string {
	s, _ := r[key].(string)
	return s
}

// SkipReason explains why a notification was not sent.
type SkipReason string

const (
	SkipNone       SkipReason = ""
	SkipIneligible SkipReason = "ineligible"
	SkipNoRoute    SkipReason = "no_route"
)

// Outcome is the detailed result of Deliver.
type Outcome struct {
	// Result is nil when the send was skipped or the API returned null.
	Result  Result
	Skipped SkipReason
	// To is the resolved destination, empty when skipped for lack of one.
	To string
}

// AnonymousNotifiable routes notifications to fixed addresses, for sends that
// have no user model behind them.
type AnonymousNotifiable struct {
	routes map[string]string
}

// Route starts an on-demand notifiable with one channel address.
func Route(channel, address string) *AnonymousNotifiable {
	return (&AnonymousNotifiable{}).Route(channel, address)
}

// Route adds another channel address.
func (a *AnonymousNotifiable) Route(channel, address string) *AnonymousNotifiable {
	if a.routes == nil {
		a.routes = map[string]string{}
	}
	a.routes[channel] = strings.TrimSpace(address)
	return a
}

// RouteNotificationFor implements Notifiable.
func (a *AnonymousNotifiable) RouteNotificationFor(channel string, _ Notification) string {
	return a.routes[channel]
}

// TextNotification is a notification whose WhatsApp content is plain text.
type TextNotification string

// BuildWhatsappMessage implements Notification.
func (t TextNotification) BuildWhatsappMessage(Notifiable) whatsapp.Content {
	return whatsapp.Text(t)
}

// NotificationFunc adapts a function to the Notification interface.
type NotificationFunc func(notifiable Notifiable) whatsapp.Content

// BuildWhatsappMessage implements Notification.
func (f NotificationFunc) BuildWhatsappMessage(n Notifiable) whatsapp.Content {
	return f(n)
}
