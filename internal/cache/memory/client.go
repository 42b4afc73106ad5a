// Package memory is an in-process cache used when Redis is disabled.
package memory

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/oggyb/whatsapp-notifier/internal/cache"
)

// Client wraps go-cache behind the cache interface.
type Client struct {
	c *gocache.Cache
}

// New creates a cache whose expired items are purged every cleanup interval.
func New(cleanup time.Duration) *Client {
	return &Client{c: gocache.New(gocache.NoExpiration, cleanup)}
}

// Ping always succeeds.
func (c *Client) Ping(context.Context) error { return nil }

// Set stores a value with the given TTL. A zero TTL never expires.
func (c *Client) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	c.c.Set(key, value, ttl)
	return nil
}

// Get retrieves a value by key.
func (c *Client) Get(_ context.Context, key string) (string, error) {
	v, ok := c.c.Get(key)
	if !ok {
		return "", cache.ErrNotFound
	}
	s, _ := v.(string)
	return s, nil
}

var _ cache.Cache = (*Client)(nil)
