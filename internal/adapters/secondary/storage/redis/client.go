package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/admin/astro-insights/internal/ports/cache"
	"github.com/redis/go-redis/v9"
)

// Client обёртка над redis.Client для общих счётчиков между репликами
type Client struct {
	client *redis.Client
}

var _ cache.Counter = (*Client)(nil)

// NewClient создаёт новый Redis-клиент
func NewClient(client *redis.Client) *Client {
	return &Client{
		client: client,
	}
}

// IncrWithTTL INCR и EXPIRE NX одним пайплайном: TTL ставится только при создании ключа
func (c *Client) IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	pipe := c.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("redis incr failed: %w", err)
	}
	return incr.Val(), nil
}

// Ping используется в /ready
func (c *Client) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close закрывает подключение к кэшу
func (c *Client) Close() error {
	return c.client.Close()
}
