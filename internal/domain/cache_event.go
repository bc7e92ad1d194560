package domain

import (
	"time"

	"github.com/google/uuid"
)

type InvalidationScope string

const (
	InvalidateDailySkyScope     InvalidationScope = "daily_sky"
	InvalidateUserTransitsScope InvalidationScope = "user_transits"
	InvalidateLunarReturnScope  InvalidationScope = "lunar_return"
)

func (s InvalidationScope) IsValid() bool {
	switch s {
	case InvalidateDailySkyScope, InvalidateUserTransitsScope, InvalidateLunarReturnScope:
		return true
	default:
		return false
	}
}

// CacheInvalidationEvent событие инвалидации локального кэша, рассылается между репликами.
// Origin идентификатор реплики-отправителя: свои события реплика пропускает.
type CacheInvalidationEvent struct {
	EventID  uuid.UUID         `json:"event_id"`
	Origin   uuid.UUID         `json:"origin"`
	Scope    InvalidationScope `json:"scope"`
	UserID   *uuid.UUID        `json:"user_id,omitempty"`
	IssuedAt time.Time         `json:"issued_at"`
}
