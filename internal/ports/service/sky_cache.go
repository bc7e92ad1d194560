package service

import (
	"context"
	"time"

	"github.com/admin/astro-insights/internal/domain"
	"github.com/google/uuid"
)

// ISkyCache фасад многоуровневого TTL-кэша перед IAstroProvider
type ISkyCache interface {
	GetCachedDailySky(ctx context.Context, date time.Time) (domain.DailySkyData, error)
	GetCachedUserTransits(ctx context.Context, birth domain.BirthData, date time.Time) (domain.UserTransitData, error)
	GetCachedLunarReturn(ctx context.Context, birth domain.BirthData, date time.Time) (domain.NatalChart, error)
	GetCachedSolarReturn(ctx context.Context, birth domain.BirthData, year int) (domain.NatalChart, error)

	// LastKnown* отдают последнее сохранённое значение, даже просроченное
	LastKnownDailySky(date time.Time) (domain.DailySkyData, bool)
	LastKnownUserTransits(userID uuid.UUID, date time.Time) (domain.UserTransitData, bool)

	InvalidateDailySky() int
	InvalidateUserTransits(userID uuid.UUID) int
	InvalidateLunarReturn(userID uuid.UUID) bool
}
