package cache

import (
	"context"
	"time"
)

// Counter атомарный счётчик с TTL во внешнем кэше, общий для всех реплик
type Counter interface {
	// IncrWithTTL увеличивает счётчик и выставляет TTL при первом инкременте
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
	Close() error
}
