package horoscope

import (
	"context"
	"fmt"
	"time"

	"github.com/admin/astro-insights/internal/domain"
	"github.com/google/uuid"
)

// DailyReading ответ на запрос ежедневного прогноза.
// Degraded: хотя бы один источник недоступен, данные устаревшие или только натальные.
type DailyReading struct {
	UserID          uuid.UUID                 `json:"user_id"`
	Date            string                    `json:"date"`
	Guidance        domain.DailyGuidance      `json:"guidance"`
	PrimaryTheme    domain.SynthesisedTheme   `json:"primary_theme"`
	SecondaryThemes []domain.SynthesisedTheme `json:"secondary_themes"`
	Degraded        bool                      `json:"degraded"`
	StaleSources    []string                  `json:"stale_sources,omitempty"`
	NatalOnly       bool                      `json:"natal_only"`
}

const (
	sourceDailySky     = "daily_sky"
	sourceUserTransits = "user_transits"
)

// GetDailyReading прогноз на date. Ошибка провайдера до клиента не доходит,
// ошибки данных карты и отсутствие пользователя возвращаются.
func (s *Service) GetDailyReading(ctx context.Context, userID uuid.UUID, date time.Time) (DailyReading, error) {
	user, natal, err := s.loadUser(ctx, userID)
	if err != nil {
		return DailyReading{}, err
	}

	reading := DailyReading{
		UserID: userID,
		Date:   date.In(s.Location).Format("2006-01-02"),
	}

	sky, err := s.dailySkyWithFallback(ctx, date, &reading)
	if err != nil {
		return DailyReading{}, err
	}

	transits, err := s.transitsWithFallback(ctx, user, date, &reading)
	if err != nil {
		return DailyReading{}, err
	}

	now := s.Now()
	guidance, err := s.Synthesizer.GenerateDailyGuidance(natal, sky, transits, now)
	if err != nil {
		return DailyReading{}, fmt.Errorf("generate daily guidance: %w", err)
	}
	secondary, err := s.Synthesizer.GenerateSecondaryThemes(natal, sky, transits, now)
	if err != nil {
		return DailyReading{}, fmt.Errorf("generate secondary themes: %w", err)
	}

	reading.Guidance = guidance
	reading.PrimaryTheme = guidance.PrimaryTheme
	reading.SecondaryThemes = secondary
	reading.NatalOnly = guidance.PrimaryTheme.NatalOnly

	if reading.Degraded {
		s.Log.Warn("daily reading served in degraded mode",
			"user_id", userID,
			"date", reading.Date,
			"stale_sources", reading.StaleSources,
			"natal_only", reading.NatalOnly,
		)
	}
	return reading, nil
}

// dailySkyWithFallback nil без ошибки означает, что неба нет ни свежего, ни устаревшего
func (s *Service) dailySkyWithFallback(ctx context.Context, date time.Time, reading *DailyReading) (*domain.DailySkyData, error) {
	sky, err := s.Cache.GetCachedDailySky(ctx, date)
	if err == nil {
		return &sky, nil
	}
	if !isUpstream(err) {
		return nil, fmt.Errorf("get daily sky: %w", err)
	}

	reading.Degraded = true
	s.Log.Warn("daily sky unavailable, trying last known value", "date", reading.Date, "error", err)

	if stale, ok := s.Cache.LastKnownDailySky(date); ok {
		reading.StaleSources = append(reading.StaleSources, sourceDailySky)
		return &stale, nil
	}
	return nil, nil
}

func (s *Service) transitsWithFallback(ctx context.Context, user *domain.User, date time.Time, reading *DailyReading) ([]domain.TransitAspect, error) {
	birth, ok := user.BirthData()
	if !ok {
		// без времени рождения транзиты не считаются, остаётся натальная карта
		s.Log.Debug("user has no birth datetime, skipping transits", "user_id", user.ID)
		return nil, nil
	}

	data, err := s.Cache.GetCachedUserTransits(ctx, birth, date)
	if err == nil {
		return data.Transits, nil
	}
	if !isUpstream(err) {
		return nil, fmt.Errorf("get user transits: %w", err)
	}

	reading.Degraded = true
	s.Log.Warn("user transits unavailable, trying last known value", "user_id", user.ID, "error", err)

	if stale, ok := s.Cache.LastKnownUserTransits(user.ID, date); ok {
		reading.StaleSources = append(reading.StaleSources, sourceUserTransits)
		return stale.Transits, nil
	}
	return nil, nil
}
