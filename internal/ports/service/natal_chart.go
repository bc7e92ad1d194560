package service

import (
	"context"

	"github.com/admin/astro-insights/internal/domain"
)

// INatalChartProvider расчёт натальной карты при регистрации пользователя, результат не кэшируется
type INatalChartProvider interface {
	GetNatalChart(ctx context.Context, birth domain.BirthData) (domain.NatalChart, error)
}
