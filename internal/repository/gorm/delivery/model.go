package deliverygorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DeliveryModel is the GORM persistence model for the outbox.
// It maps directly to the "whatsapp_deliveries" table.
type DeliveryModel struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ChatID            string     `gorm:"size:64;not null"`
	Content           string     `gorm:"type:text;not null"`
	Token             string     `gorm:"size:255"`
	Status            string     `gorm:"size:20;not null;index"`
	SkipReason        string     `gorm:"size:32"`
	ProviderMessageID string     `gorm:"size:100;index"`
	RawResponse       string     `gorm:"type:text"`
	SentAt            *time.Time `gorm:"index"`
	CreatedAt         time.Time  `gorm:"not null;index"`
	UpdatedAt         time.Time
	DeletedAt         gorm.DeletedAt `gorm:"index"`
}

// TableName overrides the default table name used by GORM.
func (DeliveryModel) TableName() string {
	return "whatsapp_deliveries"
}

// BeforeCreate ensures a UUID is set before inserting a new record.
func (m *DeliveryModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// FailureModel stores one failure event.
type FailureModel struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	DeliveryID       *uuid.UUID `gorm:"type:uuid;index"`
	Channel          string     `gorm:"size:32;not null"`
	ChatID           string     `gorm:"size:64"`
	NotificationType string     `gorm:"size:255"`
	Request          string     `gorm:"type:text"`
	Error            string     `gorm:"type:text"`
	OccurredAt       time.Time  `gorm:"not null;index"`
}

func (FailureModel) TableName() string {
	return "notification_failures"
}

func (m *FailureModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
