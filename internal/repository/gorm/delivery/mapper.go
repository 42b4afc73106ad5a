package deliverygorm

import (
	"github.com/oggyb/whatsapp-notifier/internal/domain/delivery"
)

// toDomain maps a DeliveryModel to a domain-level Delivery.
func toDomain(m *DeliveryModel) *delivery.Delivery {
	return &delivery.Delivery{
		ID:                m.ID,
		ChatID:            m.ChatID,
		Content:           m.Content,
		Token:             m.Token,
		Status:            delivery.Status(m.Status),
		SkipReason:        m.SkipReason,
		ProviderMessageID: m.ProviderMessageID,
		RawResponse:       m.RawResponse,
		SentAt:            m.SentAt,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

func toDomainMany(models []DeliveryModel) []*delivery.Delivery {
	out := make([]*delivery.Delivery, len(models))
	for i := range models {
		out[i] = toDomain(&models[i])
	}
	return out
}

func fromDomain(d *delivery.Delivery) *DeliveryModel {
	return &DeliveryModel{
		ID:                d.ID,
		ChatID:            d.ChatID,
		Content:           d.Content,
		Token:             d.Token,
		Status:            string(d.Status),
		SkipReason:        d.SkipReason,
		ProviderMessageID: d.ProviderMessageID,
		RawResponse:       d.RawResponse,
		SentAt:            d.SentAt,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}

func failureToDomain(m *FailureModel) *delivery.FailureRecord {
	return &delivery.FailureRecord{
		ID:               m.ID,
		DeliveryID:       m.DeliveryID,
		Channel:          m.Channel,
		ChatID:           m.ChatID,
		NotificationType: m.NotificationType,
		Request:          m.Request,
		Error:            m.Error,
		OccurredAt:       m.OccurredAt,
	}
}

func failureFromDomain(f *delivery.FailureRecord) *FailureModel {
	return &FailureModel{
		ID:               f.ID,
		DeliveryID:       f.DeliveryID,
		Channel:          f.Channel,
		ChatID:           f.ChatID,
		NotificationType: f.NotificationType,
		Request:          f.Request,
		Error:            f.Error,
		OccurredAt:       f.OccurredAt,
	}
}
