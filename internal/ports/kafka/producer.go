package kafka

import (
	"context"

	"github.com/admin/astro-insights/internal/domain"
)

// IInvalidationPublisher рассылает события инвалидации кэша остальным репликам
type IInvalidationPublisher interface {
	PublishInvalidation(ctx context.Context, event domain.CacheInvalidationEvent) error
	Close() error
}
