package response

import (
	"time"

	"github.com/oggyb/whatsapp-notifier/internal/domain/delivery"
	"github.com/oggyb/whatsapp-notifier/internal/scheduler"
)

type WelcomePayload struct {
	Message string `json:"message"`
}

type HealthPayload struct {
	Status string `json:"status"`
}

type WelcomeResponse struct {
	Success   bool           `json:"success"`
	Data      WelcomePayload `json:"data"`
	Timestamp string         `json:"timestamp"`
}

type HealthResponse struct {
	Success   bool          `json:"success"`
	Data      HealthPayload `json:"data"`
	Timestamp string        `json:"timestamp"`
}

type SchedulerControlPayload struct {
	Message string `json:"message"`
}

type SchedulerControlResponse struct {
	Success   bool                    `json:"success"`
	Data      SchedulerControlPayload `json:"data"`
	Timestamp string                  `json:"timestamp"`
}

type SchedulerStatusResponse struct {
	Success   bool             `json:"success"`
	Data      scheduler.Status `json:"data"`
	Timestamp string           `json:"timestamp"`
}

// DeliveryDTO is the public representation of an outbox row. The per-message
// token is never exposed.
type DeliveryDTO struct {
	ID                string     `json:"id"`
	ChatID            string     `json:"chatId"`
	Content           string     `json:"content"`
	Status            string     `json:"status"`
	SkipReason        string     `json:"skipReason,omitempty"`
	ProviderMessageID string     `json:"providerMessageId,omitempty"`
	SentAt            *time.Time `json:"sentAt,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

type DeliveryResponse struct {
	Success   bool        `json:"success"`
	Data      DeliveryDTO `json:"data"`
	Timestamp string      `json:"timestamp"`
}

type SentDeliveriesPayload struct {
	Items []DeliveryDTO `json:"items"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

type SentDeliveriesResponse struct {
	Success   bool                  `json:"success"`
	Data      SentDeliveriesPayload `json:"data"`
	Timestamp string                `json:"timestamp"`
}

type FailureDTO struct {
	ID               string    `json:"id"`
	DeliveryID       string    `json:"deliveryId,omitempty"`
	Channel          string    `json:"channel"`
	ChatID           string    `json:"chatId,omitempty"`
	NotificationType string    `json:"notificationType"`
	Request          string    `json:"request"`
	Error            string    `json:"error"`
	OccurredAt       time.Time `json:"occurredAt"`
}

type FailuresPayload struct {
	Items []FailureDTO `json:"items"`
	Total int64        `json:"total"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
}

type FailuresResponse struct {
	Success   bool            `json:"success"`
	Data      FailuresPayload `json:"data"`
	Timestamp string          `json:"timestamp"`
}

type SentAtPayload struct {
	ProviderMessageID string `json:"providerMessageId"`
	SentAt            string `json:"sentAt"`
}

type SentAtResponse struct {
	Success   bool          `json:"success"`
	Data      SentAtPayload `json:"data"`
	Timestamp string        `json:"timestamp"`
}

func FromDomainDelivery(d *delivery.Delivery) DeliveryDTO {
	return DeliveryDTO{
		ID:                d.ID.String(),
		ChatID:            d.ChatID,
		Content:           d.Content,
		Status:            string(d.Status),
		SkipReason:        d.SkipReason,
		ProviderMessageID: d.ProviderMessageID,
		SentAt:            d.SentAt,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}

// FromDomainDeliveries converts outbox rows into DTOs.
func FromDomainDeliveries(ds []*delivery.Delivery) []DeliveryDTO {
	out := make([]DeliveryDTO, len(ds))
	for i, d := range ds {
		out[i] = FromDomainDelivery(d)
	}
	return out
}

func FromFailureRecords(fs []*delivery.FailureRecord) []FailureDTO {
	out := make([]FailureDTO, len(fs))
	for i, f := range fs {
		dto := FailureDTO{
			ID:               f.ID.String(),
			Channel:          f.Channel,
			ChatID:           f.ChatID,
			NotificationType: f.NotificationType,
			Request:          f.Request,
			Error:            f.Error,
			OccurredAt:       f.OccurredAt,
		}
		if f.DeliveryID != nil {
			dto.DeliveryID = f.DeliveryID.String()
		}
		out[i] = dto
	}
	return out
}
