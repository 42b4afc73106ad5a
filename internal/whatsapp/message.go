package whatsapp

import (
	"fmt"
	"maps"
	"strings"
)

const (
	// PayloadChatID is the payload key holding the destination chat.
	PayloadChatID = "chatId"
	// PayloadText is the payload key holding the message body.
	PayloadText = "text"
)

// Content is what a notification hands to the channel. It is either a full
// *Message or a plain Text which is sent as a text-only message.
type Content interface {
	message() *Message
}

// Text is the short form of a message: only the text payload is set.
type Text string

func (t Text) message() *Message { return NewMessage(string(t)) }

// Failure describes a send that the transport rejected. It is handed to the
// message's error handler and to the failure event.
type Failure struct {
	// To is the chat ID embedded in the message payload. It is empty when
	// the destination came from the notifiable's routing.
	To string `json:"to"`
	// Request is the outbound payload in its wire form.
	Request map[string]any `json:"request"`
	Err     error          `json:"-"`
}

// Message is the WhatsApp payload built by a notification for one send.
type Message struct {
	payload    map[string]any
	token      string
	conditions []bool
	onError    func(Failure)
}

// NewMessage creates a text message. An empty text leaves the payload empty.
func NewMessage(text string) *Message {
	m := &Message{payload: map[string]any{}}
	if text != "" {
		m.payload[PayloadText] = text
	}
	return m
}

// MessageFrom normalizes Content into a *Message. A nil Content yields nil.
func MessageFrom(c Content) *Message {
	if c == nil {
		return nil
	}
	return c.message()
}

func (m *Message) message() *Message { return m }

// To sets the destination chat ID inside the payload.
func (m *Message) To(chatID string) *Message {
	return m.Set(PayloadChatID, chatID)
}

// Content replaces the text body.
func (m *Message) Content(text string) *Message {
	return m.Set(PayloadText, text)
}

// Set stores an arbitrary payload field.
func (m *Message) Set(key string, value any) *Message {
	if m.payload == nil {
		m.payload = map[string]any{}
	}
	m.payload[key] = value
	return m
}

// WithToken overrides the API token for this message only.
func (m *Message) WithToken(token string) *Message {
	m.token = strings.TrimSpace(token)
	return m
}

// When adds a condition that must hold for the message to be sent.
func (m *Message) When(cond bool) *Message {
	m.conditions = append(m.conditions, cond)
	return m
}

// Unless adds a condition that must not hold for the message to be sent.
func (m *Message) Unless(cond bool) *Message {
	return m.When(!cond)
}

// OnError registers a callback invoked synchronously when the send fails.
func (m *Message) OnError(fn func(Failure)) *Message {
	m.onError = fn
	return m
}

// CanSend reports whether every condition registered via When/Unless holds.
func (m *Message) CanSend() bool {
	for _, ok := range m.conditions {
		if !ok {
			return false
		}
	}
	return true
}

// Token returns the per-message token, if any.
func (m *Message) Token() string { return m.token }

// HasToken reports whether the message carries its own token.
func (m *Message) HasToken() bool { return m.token != "" }

// ErrorHandler returns the registered failure callback or nil.
func (m *Message) ErrorHandler() func(Failure) { return m.onError }

// PayloadValue returns a single payload field.
func (m *Message) PayloadValue(key string) any { return m.payload[key] }

// ChatID returns the chat ID embedded in the payload, or "" when none is
// set. Strings are returned as given and other values are formatted with
// fmt, so any non-empty value takes precedence over routing.
func (m *Message) ChatID() string {
	switch v := m.payload[PayloadChatID].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// ToMap returns a copy of the payload in its wire form.
func (m *Message) ToMap() map[string]any {
	out := make(map[string]any, len(m.payload))
	maps.Copy(out, m.payload)
	return out
}

// Request freezes the message into a per-call request addressed to chatID.
func (m *Message) Request(chatID string) Request {
	return Request{
		ChatID:  chatID,
		Token:   m.token,
		Payload: m.ToMap(),
	}
}
