package skycache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/admin/astro-insights/internal/domain"
	"github.com/admin/astro-insights/internal/ports/service"
	"github.com/google/uuid"
)

const (
	storeDailySky     = "daily_sky"
	storeUserTransits = "user_transits"
	storeLunarReturn  = "lunar_return"
	storeSolarReturn  = "solar_return"
)

type Config struct {
	DailySkyTTL     time.Duration `envconfig:"DAILY_SKY_TTL" default:"24h"`
	UserTransitsTTL time.Duration `envconfig:"USER_TRANSITS_TTL" default:"24h"`
	LunarReturnTTL  time.Duration `envconfig:"LUNAR_RETURN_TTL" default:"720h"`
	SolarReturnTTL  time.Duration `envconfig:"SOLAR_RETURN_TTL" default:"8760h"`
	SweepInterval   time.Duration `envconfig:"SWEEP_INTERVAL" default:"1h"`
	FetchTimeout    time.Duration `envconfig:"FETCH_TIMEOUT" default:"0"`
	DedupInFlight   bool          `envconfig:"DEDUP_IN_FLIGHT" default:"false"`
	Timezone        string        `envconfig:"TIMEZONE" default:"UTC"`
}

// Location зона, в которой считаются календарные даты ключей
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Stats число записей в каждом уровне, включая просроченные
type Stats struct {
	DailySky     int `json:"daily_sky"`
	UserTransits int `json:"user_transits"`
	LunarReturn  int `json:"lunar_return"`
	SolarReturn  int `json:"solar_return"`
}

type Option func(*Service)

// WithClock подменяет часы, используется в тестах
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLocation зона для ключей-дат, по умолчанию UTC
func WithLocation(loc *time.Location) Option {
	return func(s *Service) { s.loc = loc }
}

// Service кэш перед платным провайдером: общее небо на день,
// транзиты пользователя на день, лунар и соляр.
type Service struct {
	Provider service.IAstroProvider
	Log      *slog.Logger

	cfg Config
	loc *time.Location
	now func() time.Time

	dailySky     *store[domain.DailySkyData]
	userTransits *store[domain.UserTransitData]
	lunarReturn  *store[domain.NatalChart]
	solarReturn  *store[domain.NatalChart]
}

var _ service.ISkyCache = (*Service)(nil)

func New(provider service.IAstroProvider, cfg Config, log *slog.Logger, opts ...Option) *Service {
	s := &Service{
		Provider: provider,
		Log:      log,
		cfg:      cfg,
		loc:      time.UTC,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	// store читает часы через сервис, чтобы WithClock действовал на все уровни
	clock := func() time.Time { return s.now() }
	s.dailySky = newStore(storeDailySky, cfg.DailySkyTTL, clock, cloneSky, cfg.DedupInFlight)
	s.userTransits = newStore(storeUserTransits, cfg.UserTransitsTTL, clock, cloneTransits, cfg.DedupInFlight)
	s.lunarReturn = newStore(storeLunarReturn, cfg.LunarReturnTTL, clock, cloneChart, cfg.DedupInFlight)
	s.solarReturn = newStore(storeSolarReturn, cfg.SolarReturnTTL, clock, cloneChart, cfg.DedupInFlight)
	return s
}

func (s *Service) GetCachedDailySky(ctx context.Context, date time.Time) (domain.DailySkyData, error) {
	key := DateKey(date, s.loc)
	return s.dailySky.getOrFetch(ctx, key, func(ctx context.Context) (domain.DailySkyData, error) {
		ctx, cancel := s.fetchContext(ctx)
		defer cancel()

		s.Log.Debug("daily sky cache miss", "date", key)
		return s.Provider.GetDailySky(ctx, date)
	})
}

func (s *Service) GetCachedUserTransits(ctx context.Context, birth domain.BirthData, date time.Time) (domain.UserTransitData, error) {
	key := userTransitsKey(birth.UserID, DateKey(date, s.loc))
	return s.userTransits.getOrFetch(ctx, key, func(ctx context.Context) (domain.UserTransitData, error) {
		ctx, cancel := s.fetchContext(ctx)
		defer cancel()

		s.Log.Debug("user transits cache miss", "key", key)
		return s.Provider.GetUserTransits(ctx, birth, date)
	})
}

func (s *Service) GetCachedLunarReturn(ctx context.Context, birth domain.BirthData, date time.Time) (domain.NatalChart, error) {
	key := lunarReturnKey(birth.UserID)
	return s.lunarReturn.getOrFetch(ctx, key, func(ctx context.Context) (domain.NatalChart, error) {
		ctx, cancel := s.fetchContext(ctx)
		defer cancel()

		s.Log.Debug("lunar return cache miss", "user_id", birth.UserID)
		return s.Provider.GetLunarReturn(ctx, birth, date)
	})
}

func (s *Service) GetCachedSolarReturn(ctx context.Context, birth domain.BirthData, year int) (domain.NatalChart, error) {
	key := solarReturnKey(birth.UserID, year)
	return s.solarReturn.getOrFetch(ctx, key, func(ctx context.Context) (domain.NatalChart, error) {
		ctx, cancel := s.fetchContext(ctx)
		defer cancel()

		s.Log.Debug("solar return cache miss", "key", key)
		return s.Provider.GetSolarReturn(ctx, birth, year)
	})
}

func (s *Service) LastKnownDailySky(date time.Time) (domain.DailySkyData, bool) {
	return s.dailySky.peek(DateKey(date, s.loc))
}

func (s *Service) LastKnownUserTransits(userID uuid.UUID, date time.Time) (domain.UserTransitData, bool) {
	return s.userTransits.peek(userTransitsKey(userID, DateKey(date, s.loc)))
}

// InvalidateDailySky сбрасывает всё небо, например в полночь
func (s *Service) InvalidateDailySky() int {
	n := s.dailySky.clear()
	s.Log.Info("daily sky cache invalidated", "removed", n)
	return n
}

// InvalidateUserTransits удаляет транзиты пользователя за все даты
func (s *Service) InvalidateUserTransits(userID uuid.UUID) int {
	n := s.userTransits.deletePrefix(userPrefix(userID))
	s.Log.Info("user transits cache invalidated", "user_id", userID, "removed", n)
	return n
}

func (s *Service) InvalidateLunarReturn(userID uuid.UUID) bool {
	removed := s.lunarReturn.delete(lunarReturnKey(userID))
	s.Log.Info("lunar return cache invalidated", "user_id", userID, "removed", removed)
	return removed
}

// Sweep удаляет просроченные записи всех уровней
func (s *Service) Sweep() int {
	removed := s.dailySky.sweep() +
		s.userTransits.sweep() +
		s.lunarReturn.sweep() +
		s.solarReturn.sweep()
	s.Log.Debug("cache sweep finished", "removed", removed)
	return removed
}

func (s *Service) Stats() Stats {
	return Stats{
		DailySky:     s.dailySky.len(),
		UserTransits: s.userTransits.len(),
		LunarReturn:  s.lunarReturn.len(),
		SolarReturn:  s.solarReturn.len(),
	}
}

func (s *Service) SweepInterval() time.Duration {
	return s.cfg.SweepInterval
}

func (s *Service) fetchContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.FetchTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.cfg.FetchTimeout)
}

func cloneSky(d domain.DailySkyData) domain.DailySkyData {
	d.RetrogradePlanets = append([]domain.Planet(nil), d.RetrogradePlanets...)
	if d.VoidOfCourse.Until != nil {
		until := *d.VoidOfCourse.Until
		d.VoidOfCourse.Until = &until
	}
	return d
}

func cloneTransits(d domain.UserTransitData) domain.UserTransitData {
	d.Transits = append([]domain.TransitAspect(nil), d.Transits...)
	return d
}

func cloneChart(c domain.NatalChart) domain.NatalChart {
	c.Placements = append([]domain.NatalPlacement(nil), c.Placements...)
	return c
}
