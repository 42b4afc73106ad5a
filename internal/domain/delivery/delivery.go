// Package delivery holds the outbox model for WhatsApp notifications and the
// failure log written when a send is rejected.
package delivery

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// MaxContentLength is the maximum allowed length for a message body.
	MaxContentLength = 4096
)

type Status string

const (
	StatusPending Status = "PENDING"
	// StatusSending marks a row sent synchronously; the scheduler ignores it.
	StatusSending Status = "SENDING"
	StatusSent    Status = "SENT"
	StatusFailed  Status = "FAILED"
	StatusSkipped Status = "SKIPPED"
)

var (
	// ErrEmptyRecipient is returned when no chat ID is provided.
	ErrEmptyRecipient = errors.New("recipient chat id is required")
	// ErrEmptyContent is returned when the message body is empty.
	ErrEmptyContent = errors.New("message content is required")
	// ErrContentTooLong is returned when the message body exceeds MaxContentLength.
	ErrContentTooLong = errors.New("message content exceeds maximum length")
)

// Delivery is one outgoing WhatsApp notification waiting in, or processed
// from, the outbox.
type Delivery struct {
	ID                uuid.UUID
	ChatID            string
	Content           string
	Token             string
	Status            Status
	SkipReason        string
	ProviderMessageID string
	RawResponse       string
	SentAt            *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewDelivery constructs a pending Delivery and enforces basic domain rules.
func NewDelivery(chatID, content string) (*Delivery, error) {
	chatID = strings.TrimSpace(chatID)
	content = strings.TrimSpace(content)

	if chatID == "" {
		return nil, ErrEmptyRecipient
	}
	if content == "" {
		return nil, ErrEmptyContent
	}
	if len(content) > MaxContentLength {
		return nil, ErrContentTooLong
	}

	return &Delivery{
		ID:        uuid.New(),
		ChatID:    chatID,
		Content:   content,
		Status:    StatusPending,
		CreatedAt: time.Now(),
	}, nil
}

// MarkSent records a successful send and the provider's answer.
func (d *Delivery) MarkSent(providerID, raw string) {
	now := time.Now()
	d.SentAt = &now
	d.Status = StatusSent
	d.ProviderMessageID = providerID
	d.RawResponse = raw
}

// MarkFailed records a rejected send. Failed deliveries are not retried.
func (d *Delivery) MarkFailed(raw string) {
	d.Status = StatusFailed
	d.RawResponse = raw
}

// MarkSkipped records that the channel decided not to send.
func (d *Delivery) MarkSkipped(reason string) {
	d.Status = StatusSkipped
	d.SkipReason = reason
}

// FailureRecord is the persisted form of a failure event.
type FailureRecord struct {
	ID               uuid.UUID
	DeliveryID       *uuid.UUID
	Channel          string
	ChatID           string
	NotificationType string
	Request          string
	Error            string
	OccurredAt       time.Time
}
