package horoscope

import (
	"context"
	"fmt"
	"time"

	"github.com/admin/astro-insights/internal/domain"
	"github.com/google/uuid"
)

// UserInvalidation сколько записей пользователя удалено локально
type UserInvalidation struct {
	UserTransits int  `json:"user_transits"`
	LunarReturn  bool `json:"lunar_return"`
}

// InvalidateDailySky сбрасывает небо локально и рассылает событие остальным репликам
func (s *Service) InvalidateDailySky(ctx context.Context) int {
	removed := s.Cache.InvalidateDailySky()
	s.publish(ctx, domain.InvalidateDailySkyScope, nil)
	return removed
}

// InvalidateUser сбрасывает транзиты и лунар пользователя, например после смены данных рождения
func (s *Service) InvalidateUser(ctx context.Context, userID uuid.UUID) UserInvalidation {
	result := UserInvalidation{
		UserTransits: s.Cache.InvalidateUserTransits(userID),
		LunarReturn:  s.Cache.InvalidateLunarReturn(userID),
	}
	s.publish(ctx, domain.InvalidateUserTransitsScope, &userID)
	s.publish(ctx, domain.InvalidateLunarReturnScope, &userID)
	return result
}

// ResetDailySky полночный сброс неба и прогрев на наступивший день.
// Только локально: каждая реплика запускает свой сброс, рассылка стёрла бы прогрев соседей.
func (s *Service) ResetDailySky(ctx context.Context, now time.Time) error {
	s.Cache.InvalidateDailySky()

	if _, err := s.Cache.GetCachedDailySky(ctx, now); err != nil {
		return fmt.Errorf("prewarm daily sky: %w", err)
	}
	return nil
}

// publish ошибка рассылки не отменяет локальную инвалидацию
func (s *Service) publish(ctx context.Context, scope domain.InvalidationScope, userID *uuid.UUID) {
	if s.Publisher == nil {
		return
	}

	event := domain.CacheInvalidationEvent{
		EventID:  uuid.New(),
		Origin:   s.InstanceID,
		Scope:    scope,
		UserID:   userID,
		IssuedAt: s.now().UTC(),
	}
	if err := s.Publisher.PublishInvalidation(ctx, event); err != nil {
		s.Log.Warn("failed to publish cache invalidation",
			"scope", scope,
			"event_id", event.EventID,
			"error", err,
		)
	}
}
