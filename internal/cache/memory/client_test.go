package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/whatsapp-notifier/internal/cache"
)

func TestClient_SetGet(t *testing.T) {
	c := New(time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Ping(ctx))
	require.NoError(t, c.Set(ctx, cache.SentMessages.Key("abc"), "2026-10-17T10:00:00Z", time.Hour))

	v, err := c.Get(ctx, "sent_messages:abc")
	require.NoError(t, err)
	assert.Equal(t, "2026-10-17T10:00:00Z", v)
}

func TestClient_MissingAndExpired(t *testing.T) {
	c := New(time.Minute)
	ctx := context.Background()

	_, err := c.Get(ctx, "nope")
	assert.ErrorIs(t, err, cache.ErrNotFound)

	require.NoError(t, c.Set(ctx, "short", "v", time.Millisecond))
	time.Sleep(5 * time.Millisecond)
	_, err = c.Get(ctx, "short")
	assert.ErrorIs(t, err, cache.ErrNotFound)
}
