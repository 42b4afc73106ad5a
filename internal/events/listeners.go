package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/oggyb/whatsapp-notifier/internal/domain/delivery"
)

// LogListener writes every failure to the logger.
func LogListener(logger zerolog.Logger) Listener {
	return ListenerFunc(func(_ context.Context, e NotificationFailed) error {
		logger.Error().
			Err(e.Data.Err).
			Str("channel", e.Channel).
			Str("to", e.Data.To).
			Str("notification", notificationType(e.Notification)).
			Msg("notification failed")
		return nil
	})
}

// deliveryIdentifier is implemented by notifications that originate from
// the outbox, so failures can be linked back to their row.
type deliveryIdentifier interface {
	DeliveryID() uuid.UUID
}

// StoreListener persists every failure through the repository.
func StoreListener(repo delivery.FailureRepository) Listener {
	return ListenerFunc(func(ctx context.Context, e NotificationFailed) error {
		rec, err := toFailureRecord(e)
		if err != nil {
			return err
		}
		if err := repo.SaveFailure(ctx, rec); err != nil {
			return fmt.Errorf("store failure: %w", err)
		}
		return nil
	})
}

// StreamAppender appends an entry to a named stream (e.g. a Redis stream).
type StreamAppender interface {
	Append(ctx context.Context, stream string, fields map[string]any) error
}

// StreamListener publishes every failure to a stream so other processes can
// react to it.
func StreamListener(appender StreamAppender, stream string) Listener {
	return ListenerFunc(func(ctx context.Context, e NotificationFailed) error {
		request, err := json.Marshal(e.Data.Request)
		if err != nil {
			return fmt.Errorf("encode failure request: %w", err)
		}
		fields := map[string]any{
			"channel":      e.Channel,
			"to":           e.Data.To,
			"notification": notificationType(e.Notification),
			"request":      string(request),
			"error":        errString(e.Data.Err),
			"occurred_at":  e.OccurredAt.UTC().Format(time.RFC3339Nano),
		}
		if err := appender.Append(ctx, stream, fields); err != nil {
			return fmt.Errorf("publish failure to %s: %w", stream, err)
		}
		return nil
	})
}

func toFailureRecord(e NotificationFailed) (*delivery.FailureRecord, error) {
	request, err := json.Marshal(e.Data.Request)
	if err != nil {
		return nil, fmt.Errorf("encode failure request: %w", err)
	}

	rec := &delivery.FailureRecord{
		ID:               uuid.New(),
		Channel:          e.Channel,
		ChatID:           e.Data.To,
		NotificationType: notificationType(e.Notification),
		Request:          string(request),
		Error:            errString(e.Data.Err),
		OccurredAt:       e.OccurredAt,
	}
	if id, ok := e.Notification.(deliveryIdentifier); ok {
		did := id.DeliveryID()
		rec.DeliveryID = &did
	}
	return rec, nil
}

func notificationType(n any) string {
	if n == nil {
		return ""
	}
	return fmt.Sprintf("%T", n)
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
