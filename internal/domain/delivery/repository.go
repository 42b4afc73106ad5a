package delivery

import "context"

// Repository defines the persistence operations for the outbox.
//
// It is implemented by infrastructure layers (e.g. GORM) while the service
// layer depends only on this interface.
type Repository interface {
	// Save persists a new delivery.
	Save(ctx context.Context, d *Delivery) error

	// GetPending returns up to limit deliveries that are still waiting to be sent.
	GetPending(ctx context.Context, limit int) ([]*Delivery, error)

	// GetSent returns a paginated list of sent deliveries along with the
	// total number of sent records.
	GetSent(ctx context.Context, page, limit int) ([]*Delivery, int64, error)

	// UpdateStatus updates the status and provider metadata of a delivery.
	UpdateStatus(ctx context.Context, d *Delivery) error
}

// FailureRepository stores failure events.
type FailureRepository interface {
	SaveFailure(ctx context.Context, f *FailureRecord) error
	ListFailures(ctx context.Context, page, limit int) ([]*FailureRecord, int64, error)
}
