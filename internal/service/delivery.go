package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/oggyb/whatsapp-notifier/internal/cache"
	"github.com/oggyb/whatsapp-notifier/internal/domain/delivery"
	"github.com/oggyb/whatsapp-notifier/internal/notification"
	"github.com/oggyb/whatsapp-notifier/internal/whatsapp"
)

const (
	// sentCacheTTL is how long a provider message ID stays resolvable via SentAt.
	sentCacheTTL = 24 * time.Hour
	// persistTimeout bounds the writes that record a send's outcome.
	persistTimeout = 5 * time.Second
)

// Deliverer is the part of the WhatsApp channel the service needs.
type Deliverer interface {
	Deliver(ctx context.Context, notifiable notification.Notifiable, n notification.Notification) (notification.Outcome, error)
}

type DeliveryService interface {
	// Enqueue stores a pending delivery for the scheduler to pick up.
	Enqueue(ctx context.Context, chatID, content, token string) (*delivery.Delivery, error)
	// SendNow stores the delivery and sends it immediately.
	SendNow(ctx context.Context, chatID, content, token string) (*delivery.Delivery, error)
	GetSent(ctx context.Context, page, limit int) ([]*delivery.Delivery, int64, error)
	GetFailures(ctx context.Context, page, limit int) ([]*delivery.FailureRecord, int64, error)
	// SentAt returns the cached send time for a provider message ID.
	SentAt(ctx context.Context, providerID string) (string, error)
	ProcessBatch(ctx context.Context) error
}

// Settings holds the batch processing configuration.
type Settings struct {
	BatchSize         int
	MaxWorkers        int
	PerMessageTimeout time.Duration
}

type deliveryService struct {
	repo     delivery.Repository
	failures delivery.FailureRepository
	channel  Deliverer
	cache    cache.Cache
	logger   zerolog.Logger

	batchSize         int
	maxWorkers        int
	perMessageTimeout time.Duration
}

// NewDeliveryService creates a delivery service. The settings are passed
// explicitly from the caller (e.g. main) so this package does not depend on env.
// cache may be nil.
func NewDeliveryService(
	repo delivery.Repository,
	failures delivery.FailureRepository,
	channel Deliverer,
	c cache.Cache,
	logger zerolog.Logger,
	settings Settings,
) DeliveryService {
	if settings.BatchSize <= 0 {
		settings.BatchSize = 100
	}
	if settings.MaxWorkers <= 0 {
		settings.MaxWorkers = 4
	}
	if settings.PerMessageTimeout <= 0 {
		settings.PerMessageTimeout = 5 * time.Second
	}

	return &deliveryService{
		repo:              repo,
		failures:          failures,
		channel:           channel,
		cache:             c,
		logger:            logger,
		batchSize:         settings.BatchSize,
		maxWorkers:        settings.MaxWorkers,
		perMessageTimeout: settings.PerMessageTimeout,
	}
}

func (s *deliveryService) Enqueue(ctx context.Context, chatID, content, token string) (*delivery.Delivery, error) {
	return s.store(ctx, chatID, content, token, delivery.StatusPending)
}

// SendNow stores the row as SENDING so the scheduler never picks it up.
func (s *deliveryService) SendNow(ctx context.Context, chatID, content, token string) (*delivery.Delivery, error) {
	d, err := s.store(ctx, chatID, content, token, delivery.StatusSending)
	if err != nil {
		return nil, err
	}

	if err := s.processDelivery(ctx, d); err != nil {
		return d, err
	}
	return d, nil
}

func (s *deliveryService) store(ctx context.Context, chatID, content, token string, status delivery.Status) (*delivery.Delivery, error) {
	d, err := delivery.NewDelivery(whatsapp.FormatChatID(chatID), content)
	if err != nil {
		return nil, err
	}
	d.Token = token
	d.Status = status

	if err := s.repo.Save(ctx, d); err != nil {
		return nil, fmt.Errorf("save delivery: %w", err)
	}
	return d, nil
}

func (s *deliveryService) GetSent(ctx context.Context, page, limit int) ([]*delivery.Delivery, int64, error) {
	return s.repo.GetSent(ctx, page, limit)
}

func (s *deliveryService) GetFailures(ctx context.Context, page, limit int) ([]*delivery.FailureRecord, int64, error) {
	return s.failures.ListFailures(ctx, page, limit)
}

func (s *deliveryService) SentAt(ctx context.Context, providerID string) (string, error) {
	if s.cache == nil {
		return "", cache.ErrNotFound
	}
	return s.cache.Get(ctx, cache.SentMessages.Key(providerID))
}

// ProcessBatch pulls a batch of pending deliveries and sends them using a
// small worker pool.
func (s *deliveryService) ProcessBatch(ctx context.Context) error {
	deliveries, err := s.repo.GetPending(ctx, s.batchSize)
	if err != nil {
		return fmt.Errorf("failed to fetch pending deliveries: %w", err)
	}

	if len(deliveries) == 0 {
		s.logger.Debug().Msg("no pending deliveries to process")
		return nil
	}

	s.logger.Info().
		Int("count", len(deliveries)).
		Int("batch_size", s.batchSize).
		Int("max_workers", s.maxWorkers).
		Msg("processing deliveries")

	workerCount := min(len(deliveries), s.maxWorkers)
	if workerCount <= 0 {
		workerCount = 1
	}

	var wg sync.WaitGroup

	// Each worker processes a stride of the batch: worker w handles
	// indices w, w+workerCount, w+2*workerCount, ...
	for w := 0; w < workerCount; w++ {
		wg.Add(1)

		go func(workerID, start int) {
			defer wg.Done()
			log := s.logger.With().Int("worker", workerID).Logger()

			for i := start; i < len(deliveries); i += workerCount {
				if ctx.Err() != nil {
					log.Warn().Msg("context cancelled, stopping worker")
					return
				}

				d := deliveries[i]
				if err := s.processDelivery(ctx, d); err != nil {
					log.Error().Err(err).Str("delivery_id", d.ID.String()).Msg("failed to process delivery")
				}
			}
		}(w+1, w)
	}

	wg.Wait()

	s.logger.Debug().Msg("batch worker pool completed")
	return nil
}

// processDelivery sends a single delivery through the channel and records
// the outcome. Only the send is bounded by the per-message timeout; the
// outcome is written on a context that outlives it, so a timed-out send is
// still marked FAILED and never retried.
func (s *deliveryService) processDelivery(ctx context.Context, d *delivery.Delivery) error {
	id := d.ID.String()
	n := outboxNotification{d: d}

	sendCtx, cancelSend := context.WithTimeout(ctx, s.perMessageTimeout)
	out, err := s.channel.Deliver(sendCtx, notification.Route(notification.ChannelName, d.ChatID), n)
	cancelSend()

	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()

	switch {
	case errors.Is(err, whatsapp.ErrSerialization):
		// The API accepted the message with a 2xx; only its body was unusable.
		s.logger.Warn().Err(err).Str("delivery_id", id).Msg("sent, but the response could not be decoded")
		d.MarkSent("", failureBody(err))
		if uErr := s.repo.UpdateStatus(pctx, d); uErr != nil {
			return fmt.Errorf("update status for %s: %w", id, uErr)
		}
		return nil

	case err != nil:
		d.MarkFailed(failureBody(err))
		if uErr := s.repo.UpdateStatus(pctx, d); uErr != nil {
			s.logger.Error().Err(uErr).Str("delivery_id", id).Msg("failed to persist FAILED status")
		}
		return fmt.Errorf("send delivery %s: %w", id, err)

	case out.Skipped != notification.SkipNone:
		d.MarkSkipped(string(out.Skipped))
		if err := s.repo.UpdateStatus(pctx, d); err != nil {
			return fmt.Errorf("update status for %s: %w", id, err)
		}
		return nil
	}

	raw, _ := json.Marshal(out.Result)
	providerID := out.Result.String("id")

	d.MarkSent(providerID, string(raw))
	if err := s.repo.UpdateStatus(pctx, d); err != nil {
		return fmt.Errorf("update status for %s: %w", id, err)
	}

	if s.cache != nil && providerID != "" {
		sentAt := d.SentAt.Format(time.RFC3339)
		if err := s.cache.Set(pctx, cache.SentMessages.Key(providerID), sentAt, sentCacheTTL); err != nil {
			s.logger.Warn().Err(err).Str("provider_id", providerID).Msg("failed to cache sent message")
		}
	}

	return nil
}

// failureBody keeps the provider's answer when there is one.
func failureBody(err error) string {
	var te *whatsapp.TransportError
	if errors.As(err, &te) && te.Body != "" {
		return te.Body
	}
	var se *whatsapp.SerializationError
	if errors.As(err, &se) && se.Body != "" {
		return se.Body
	}
	return err.Error()
}

// outboxNotification adapts a stored delivery to the channel.
type outboxNotification struct {
	d *delivery.Delivery
}

func (n outboxNotification) BuildWhatsappMessage(notification.Notifiable) whatsapp.Content {
	return whatsapp.NewMessage(n.d.Content).To(n.d.ChatID).WithToken(n.d.Token)
}

// DeliveryID links failure events back to the outbox row.
func (n outboxNotification) DeliveryID() uuid.UUID {
	return n.d.ID
}
