package service

import (
	"context"
	"time"

	"github.com/admin/astro-insights/internal/domain"
)

// IAstroProvider внешний платный эфемеридный API.
// Любая ошибка оборачивается в *domain.UpstreamError.
type IAstroProvider interface {
	GetDailySky(ctx context.Context, date time.Time) (domain.DailySkyData, error)
	GetUserTransits(ctx context.Context, birth domain.BirthData, date time.Time) (domain.UserTransitData, error)
	GetLunarReturn(ctx context.Context, birth domain.BirthData, date time.Time) (domain.NatalChart, error)
	GetSolarReturn(ctx context.Context, birth domain.BirthData, year int) (domain.NatalChart, error)
}
