package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/admin/astro-insights/internal/domain"
	kafkaPorts "github.com/admin/astro-insights/internal/ports/kafka"
	"github.com/admin/astro-insights/internal/ports/service"
	"github.com/google/uuid"
)

// CacheInvalidationHandler применяет к локальному кэшу инвалидации других реплик
type CacheInvalidationHandler struct {
	Cache      service.ISkyCache
	InstanceID uuid.UUID
	Log        *slog.Logger
}

func NewCacheInvalidationHandler(cache service.ISkyCache, instanceID uuid.UUID, log *slog.Logger) kafkaPorts.MessageHandler {
	return &CacheInvalidationHandler{
		Cache:      cache,
		InstanceID: instanceID,
		Log:        log,
	}
}

// HandleMessage свои события пропускаются: реплика уже применила их локально
func (h *CacheInvalidationHandler) HandleMessage(ctx context.Context, key string, value []byte) error {
	var event domain.CacheInvalidationEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return fmt.Errorf("failed to unmarshal invalidation event: %w", err)
	}

	if event.Origin == h.InstanceID {
		h.Log.Debug("skipping own invalidation event", "event_id", event.EventID)
		return nil
	}

	if !event.Scope.IsValid() {
		return fmt.Errorf("unknown invalidation scope %q", event.Scope)
	}

	if event.Scope != domain.InvalidateDailySkyScope && event.UserID == nil {
		return fmt.Errorf("invalidation scope %s requires user_id", event.Scope)
	}

	var removed int
	switch event.Scope {
	case domain.InvalidateDailySkyScope:
		removed = h.Cache.InvalidateDailySky()
	case domain.InvalidateUserTransitsScope:
		removed = h.Cache.InvalidateUserTransits(*event.UserID)
	case domain.InvalidateLunarReturnScope:
		if h.Cache.InvalidateLunarReturn(*event.UserID) {
			removed = 1
		}
	}

	h.Log.Info("applied remote cache invalidation",
		"event_id", event.EventID,
		"origin", event.Origin,
		"scope", event.Scope,
		"removed", removed,
	)
	return nil
}
