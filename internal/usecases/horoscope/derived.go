package horoscope

import (
	"context"
	"fmt"
	"time"

	"github.com/admin/astro-insights/internal/domain"
	"github.com/admin/astro-insights/internal/usecases/chart"
	"github.com/google/uuid"
)

// DerivedChart вычисляемые точки и циклы натальной карты
type DerivedChart struct {
	UserID        uuid.UUID            `json:"user_id"`
	SaturnReturn  *domain.SaturnReturn `json:"saturn_return,omitempty"` // нет без времени рождения
	MoonPhase     domain.MoonPhaseInfo `json:"natal_moon_phase"`
	PartOfFortune domain.PartOfFortune `json:"part_of_fortune"`
	Lilith        domain.DerivedPoint  `json:"lilith"`
	ChartRuler    *domain.Planet       `json:"chart_ruler,omitempty"`
}

// GetDerivedChart считается целиком локально, провайдер не нужен
func (s *Service) GetDerivedChart(ctx context.Context, userID uuid.UUID) (DerivedChart, error) {
	user, natal, err := s.loadUser(ctx, userID)
	if err != nil {
		return DerivedChart{}, err
	}

	result := DerivedChart{UserID: userID}

	if result.MoonPhase, err = chart.CalculateMoonPhase(natal); err != nil {
		return DerivedChart{}, err
	}
	if result.PartOfFortune, err = chart.CalculatePartOfFortune(natal); err != nil {
		return DerivedChart{}, err
	}
	if result.Lilith, err = chart.CalculateLilith(natal); err != nil {
		return DerivedChart{}, err
	}

	if user.BirthDateTime != nil {
		saturn, err := chart.CalculateSaturnReturn(natal, *user.BirthDateTime, s.Now())
		if err != nil {
			return DerivedChart{}, err
		}
		result.SaturnReturn = &saturn
	}

	if ruler, _, ok := chart.ChartRuler(natal); ok {
		result.ChartRuler = &ruler
	}

	return result, nil
}

// CompatibilityReport совместимость двух пользователей
type CompatibilityReport struct {
	UserID    uuid.UUID `json:"user_id"`
	PartnerID uuid.UUID `json:"partner_id"`
	domain.Compatibility
}

func (s *Service) GetCompatibility(ctx context.Context, userID, partnerID uuid.UUID) (CompatibilityReport, error) {
	users, err := s.UserRepo.GetByIDs(ctx, []uuid.UUID{userID, partnerID})
	if err != nil {
		return CompatibilityReport{}, fmt.Errorf("load users: %w", err)
	}

	byID := make(map[uuid.UUID]*domain.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	charts := make([]domain.NatalChart, 0, 2)
	for _, id := range []uuid.UUID{userID, partnerID} {
		u, ok := byID[id]
		if !ok {
			return CompatibilityReport{}, fmt.Errorf("user %s: %w", id, domain.ErrUserNotFound)
		}
		if u.NatalChart == nil {
			return CompatibilityReport{}, fmt.Errorf("user %s: %w", id, domain.ErrNatalChartNotSet)
		}
		charts = append(charts, *u.NatalChart)
	}

	compatibility, err := chart.CalculateCompatibility(charts[0], charts[1])
	if err != nil {
		return CompatibilityReport{}, err
	}

	return CompatibilityReport{
		UserID:        userID,
		PartnerID:     partnerID,
		Compatibility: compatibility,
	}, nil
}

// SkyReport небо на день; Stale - провайдер недоступен и отдано последнее известное значение
type SkyReport struct {
	domain.DailySkyData
	Stale bool `json:"stale"`
}

// GetDailySky без последнего известного значения ошибка провайдера возвращается
func (s *Service) GetDailySky(ctx context.Context, date time.Time) (SkyReport, error) {
	sky, err := s.Cache.GetCachedDailySky(ctx, date)
	if err == nil {
		return SkyReport{DailySkyData: sky}, nil
	}
	if !isUpstream(err) {
		return SkyReport{}, fmt.Errorf("get daily sky: %w", err)
	}

	if stale, ok := s.Cache.LastKnownDailySky(date); ok {
		s.Log.Warn("serving stale daily sky", "date", date.In(s.Location).Format("2006-01-02"), "error", err)
		return SkyReport{DailySkyData: stale, Stale: true}, nil
	}
	return SkyReport{}, err
}

func (s *Service) GetLunarReturn(ctx context.Context, userID uuid.UUID, date time.Time) (domain.NatalChart, error) {
	user, err := s.UserRepo.GetByID(ctx, userID)
	if err != nil {
		return domain.NatalChart{}, fmt.Errorf("load user: %w", err)
	}
	birth, err := birthData(user)
	if err != nil {
		return domain.NatalChart{}, err
	}
	return s.Cache.GetCachedLunarReturn(ctx, birth, date)
}

func (s *Service) GetSolarReturn(ctx context.Context, userID uuid.UUID, year int) (domain.NatalChart, error) {
	user, err := s.UserRepo.GetByID(ctx, userID)
	if err != nil {
		return domain.NatalChart{}, fmt.Errorf("load user: %w", err)
	}
	birth, err := birthData(user)
	if err != nil {
		return domain.NatalChart{}, err
	}
	return s.Cache.GetCachedSolarReturn(ctx, birth, year)
}
