package deliverygorm

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"

	"github.com/oggyb/whatsapp-notifier/internal/db/gormdb"
	"github.com/oggyb/whatsapp-notifier/internal/domain/delivery"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	conn, err := gormdb.Open(sqlite.Open(filepath.Join(t.TempDir(), "deliveries.db")))
	require.NoError(t, err)

	repo := NewRepository(conn)
	require.NoError(t, repo.Migrate())
	return repo
}

func seed(t *testing.T, repo *Repository, chatID string, createdAt time.Time) *delivery.Delivery {
	t.Helper()

	d, err := delivery.NewDelivery(chatID, "hello "+chatID)
	require.NoError(t, err)
	d.CreatedAt = createdAt.UTC()
	require.NoError(t, repo.Save(context.Background(), d))
	return d
}

func TestRepository_GetPendingOldestFirst(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	third := seed(t, repo, "3@c.us", base.Add(2*time.Minute))
	first := seed(t, repo, "1@c.us", base)
	second := seed(t, repo, "2@c.us", base.Add(time.Minute))

	pending, err := repo.GetPending(ctx, 2)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, first.ID, pending[0].ID)
	assert.Equal(t, second.ID, pending[1].ID)
	assert.Equal(t, delivery.StatusPending, pending[0].Status)

	third.MarkSkipped("no_route")
	require.NoError(t, repo.UpdateStatus(ctx, third))

	pending, err = repo.GetPending(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, pending, 2)
}

func TestRepository_UpdateStatusAndGetSent(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	sent := seed(t, repo, "1@c.us", base)
	failed := seed(t, repo, "2@c.us", base.Add(time.Minute))
	seed(t, repo, "3@c.us", base.Add(2*time.Minute))

	sent.MarkSent("wamid-1", `{"id":"wamid-1"}`)
	require.NoError(t, repo.UpdateStatus(ctx, sent))

	failed.MarkFailed("boom")
	require.NoError(t, repo.UpdateStatus(ctx, failed))

	items, total, err := repo.GetSent(ctx, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)

	got := items[0]
	assert.Equal(t, sent.ID, got.ID)
	assert.Equal(t, delivery.StatusSent, got.Status)
	assert.Equal(t, "wamid-1", got.ProviderMessageID)
	assert.Equal(t, `{"id":"wamid-1"}`, got.RawResponse)
	require.NotNil(t, got.SentAt)

	items, total, err = repo.GetSent(ctx, 2, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Empty(t, items)
}

func TestRepository_Failures(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	deliveryID := uuid.New()
	older := &delivery.FailureRecord{
		Channel:    "whatsapp",
		ChatID:     "1@c.us",
		Request:    `{"text":"a"}`,
		Error:      "first",
		OccurredAt: base,
	}
	newer := &delivery.FailureRecord{
		DeliveryID:       &deliveryID,
		Channel:          "whatsapp",
		NotificationType: "notification.TextNotification",
		Request:          `{"text":"b"}`,
		Error:            "second",
		OccurredAt:       base.Add(time.Minute),
	}
	require.NoError(t, repo.SaveFailure(ctx, older))
	require.NoError(t, repo.SaveFailure(ctx, newer))

	items, total, err := repo.ListFailures(ctx, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, items, 2)

	assert.Equal(t, "second", items[0].Error)
	require.NotNil(t, items[0].DeliveryID)
	assert.Equal(t, deliveryID, *items[0].DeliveryID)
	assert.NotEqual(t, uuid.Nil, items[0].ID)

	assert.Equal(t, "first", items[1].Error)
	assert.Nil(t, items[1].DeliveryID)
}

func TestRepository_GetPendingSkipsSendingRows(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	d, err := delivery.NewDelivery("1@c.us", "hello")
	require.NoError(t, err)
	d.Status = delivery.StatusSending
	require.NoError(t, repo.Save(ctx, d))

	pending, err := repo.GetPending(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)

	d.MarkSent("wamid-1", `{"id":"wamid-1"}`)
	require.NoError(t, repo.UpdateStatus(ctx, d))

	sent, total, err := repo.GetSent(ctx, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, sent, 1)
	assert.Equal(t, d.ID, sent[0].ID)
}
