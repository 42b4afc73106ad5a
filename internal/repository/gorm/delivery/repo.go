package deliverygorm

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/oggyb/whatsapp-notifier/internal/db"
	"github.com/oggyb/whatsapp-notifier/internal/domain/delivery"
)

// Repository is a GORM-backed implementation of delivery.Repository and
// delivery.FailureRepository.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a repository using the given DB adapter.
func NewRepository(d db.DB) *Repository {
	return &Repository{
		db: d.Conn().(*gorm.DB),
	}
}

// Migrate creates or updates the outbox and failure tables.
func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(&DeliveryModel{}, &FailureModel{})
}

// GetPending returns up to limit pending deliveries ordered by creation time,
// using SELECT ... FOR UPDATE SKIP LOCKED to avoid double-processing in concurrent workers.
func (r *Repository) GetPending(ctx context.Context, limit int) ([]*delivery.Delivery, error) {
	var models []DeliveryModel

	err := r.db.WithContext(ctx).
		Where("status = ?", delivery.StatusPending).
		Order("created_at ASC").
		Limit(limit).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Find(&models).Error

	if err != nil {
		return nil, err
	}

	return toDomainMany(models), nil
}

// GetSent returns a paginated list of sent deliveries and the total count.
func (r *Repository) GetSent(ctx context.Context, page, limit int) ([]*delivery.Delivery, int64, error) {
	var models []DeliveryModel
	var total int64

	sent := func() *gorm.DB {
		return r.db.WithContext(ctx).
			Model(&DeliveryModel{}).
			Where("status = ?", delivery.StatusSent)
	}

	if err := sent().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := sent().
		Order("sent_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&models).Error

	if err != nil {
		return nil, 0, err
	}

	return toDomainMany(models), total, nil
}

// UpdateStatus persists the current status and provider metadata of a delivery.
func (r *Repository) UpdateStatus(ctx context.Context, d *delivery.Delivery) error {
	updates := map[string]interface{}{
		"status":              string(d.Status),
		"skip_reason":         d.SkipReason,
		"provider_message_id": d.ProviderMessageID,
		"raw_response":        d.RawResponse,
		"sent_at":             d.SentAt,
	}

	return r.db.WithContext(ctx).
		Model(&DeliveryModel{}).
		Where("id = ?", d.ID).
		Updates(updates).Error
}

// Save inserts a new delivery record.
func (r *Repository) Save(ctx context.Context, d *delivery.Delivery) error {
	return r.db.WithContext(ctx).Create(fromDomain(d)).Error
}

// SaveFailure inserts a failure record.
func (r *Repository) SaveFailure(ctx context.Context, f *delivery.FailureRecord) error {
	return r.db.WithContext(ctx).Create(failureFromDomain(f)).Error
}

// ListFailures returns failures, newest first, and the total count.
func (r *Repository) ListFailures(ctx context.Context, page, limit int) ([]*delivery.FailureRecord, int64, error) {
	var models []FailureModel
	var total int64

	if err := r.db.WithContext(ctx).Model(&FailureModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Order("occurred_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&models).Error
	if err != nil {
		return nil, 0, err
	}

	out := make([]*delivery.FailureRecord, len(models))
	for i := range models {
		out[i] = failureToDomain(&models[i])
	}
	return out, total, nil
}

// compile-time interface checks
var (
	_ delivery.Repository        = (*Repository)(nil)
	_ delivery.FailureRepository = (*Repository)(nil)
)
