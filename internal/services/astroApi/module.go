package astroApi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	astroApiAdapter "github.com/admin/astro-insights/internal/adapters/secondary/astroApi"
	"github.com/admin/astro-insights/internal/domain"
	"github.com/admin/astro-insights/internal/ports/cache"
	"github.com/admin/astro-insights/internal/ports/service"
)

const (
	quotaKeyPrefix = "astro:quota:"
	quotaKeyTTL    = 48 * time.Hour
)

var errQuotaExceeded = errors.New("daily request quota exceeded")

var activePoints = []string{"Sun", "Moon", "Mercury", "Venus", "Mars", "Jupiter", "Saturn", "Uranus", "Neptune", "Pluto", "Chiron", "True_Node"}

// Service реализует IAstroProvider поверх HTTP-клиента астро-API
type Service struct {
	client *astroApiAdapter.Client
	quota  cache.Counter // nil - квота не проверяется
	limit  int64
	now    func() time.Time
	Log    *slog.Logger
}

// New создаёт сервис провайдера. quota может быть nil.
func New(client *astroApiAdapter.Client, quota cache.Counter, dailyLimit int64, log *slog.Logger) *Service {
	return &Service{
		client: client,
		quota:  quota,
		limit:  dailyLimit,
		now:    time.Now,
		Log:    log,
	}
}

var (
	_ service.IAstroProvider      = (*Service)(nil)
	_ service.INatalChartProvider = (*Service)(nil)
)

func (s *Service) GetDailySky(ctx context.Context, date time.Time) (domain.DailySkyData, error) {
	const op = "daily sky"
	if err := s.reserve(ctx, op); err != nil {
		return domain.DailySkyData{}, err
	}

	req := astroApiAdapter.DailySkyRequest{
		Date:    toDateTime(date),
		Options: defaultOptions(),
	}
	data, err := s.client.GetDailySky(ctx, req)
	if err != nil {
		return domain.DailySkyData{}, upstreamError(op, err)
	}

	return s.mapDailySky(date, data), nil
}

func (s *Service) GetUserTransits(ctx context.Context, birth domain.BirthData, date time.Time) (domain.UserTransitData, error) {
	const op = "user transits"
	if err := s.reserve(ctx, op); err != nil {
		return domain.UserTransitData{}, err
	}

	req := astroApiAdapter.TransitsRequest{
		Subject:     s.toPerson(birth),
		TransitDate: toDateTime(date),
		Options:     defaultOptions(),
	}
	data, err := s.client.GetTransits(ctx, req)
	if err != nil {
		return domain.UserTransitData{}, upstreamError(op, err)
	}

	return domain.UserTransitData{
		Date:     date,
		Transits: s.mapTransits(data.Aspects),
	}, nil
}

// GetNatalChart натальная карта для регистрации пользователя
func (s *Service) GetNatalChart(ctx context.Context, birth domain.BirthData) (domain.NatalChart, error) {
	const op = "natal chart"
	if err := s.reserve(ctx, op); err != nil {
		return domain.NatalChart{}, err
	}

	req := astroApiAdapter.NatalChartRequest{
		Subject: s.toPerson(birth),
		Options: defaultOptions(),
	}
	data, err := s.client.GetNatalChart(ctx, req)
	if err != nil {
		return domain.NatalChart{}, upstreamError(op, err)
	}

	result, err := s.mapChart(data)
	if err != nil {
		return domain.NatalChart{}, domain.NewUpstreamError(op, 0, err)
	}
	return result, nil
}

func (s *Service) GetLunarReturn(ctx context.Context, birth domain.BirthData, date time.Time) (domain.NatalChart, error) {
	const op = "lunar return"
	if err := s.reserve(ctx, op); err != nil {
		return domain.NatalChart{}, err
	}

	returnDate := toDateTime(date)
	req := astroApiAdapter.ReturnRequest{
		Subject:    s.toPerson(birth),
		ReturnDate: &returnDate,
		Options:    defaultOptions(),
	}
	data, err := s.client.GetLunarReturn(ctx, req)
	if err != nil {
		return domain.NatalChart{}, upstreamError(op, err)
	}

	result, err := s.mapChart(data)
	if err != nil {
		return domain.NatalChart{}, domain.NewUpstreamError(op, 0, err)
	}
	return result, nil
}

func (s *Service) GetSolarReturn(ctx context.Context, birth domain.BirthData, year int) (domain.NatalChart, error) {
	const op = "solar return"
	if err := s.reserve(ctx, op); err != nil {
		return domain.NatalChart{}, err
	}

	req := astroApiAdapter.ReturnRequest{
		Subject:    s.toPerson(birth),
		ReturnYear: year,
		Options:    defaultOptions(),
	}
	data, err := s.client.GetSolarReturn(ctx, req)
	if err != nil {
		return domain.NatalChart{}, upstreamError(op, err)
	}

	result, err := s.mapChart(data)
	if err != nil {
		return domain.NatalChart{}, domain.NewUpstreamError(op, 0, err)
	}
	return result, nil
}

// reserve списывает один запрос из дневной квоты.
// Недоступный Redis квоту не блокирует.
func (s *Service) reserve(ctx context.Context, op string) error {
	if s.quota == nil || s.limit <= 0 {
		return nil
	}

	key := quotaKeyPrefix + s.now().UTC().Format("2006-01-02")
	used, err := s.quota.IncrWithTTL(ctx, key, quotaKeyTTL)
	if err != nil {
		s.Log.Warn("failed to check astro API quota", "error", err)
		return nil
	}

	if used > s.limit {
		s.Log.Warn("astro API daily quota exceeded", "op", op, "used", used, "limit", s.limit)
		return domain.NewUpstreamError(op, 429, errQuotaExceeded)
	}
	return nil
}

func upstreamError(op string, err error) error {
	var apiErr *astroApiAdapter.APIError
	if errors.As(err, &apiErr) {
		return domain.NewUpstreamError(op, apiErr.StatusCode, err)
	}
	return domain.NewUpstreamError(op, 0, fmt.Errorf("request failed: %w", err))
}

func defaultOptions() astroApiAdapter.ChartOptions {
	return astroApiAdapter.ChartOptions{
		HouseSystem:  "P", // Плацидус
		ZodiacType:   "Tropic",
		ActivePoints: activePoints,
		Precision:    2,
	}
}

func toDateTime(t time.Time) astroApiAdapter.DateTime {
	return astroApiAdapter.DateTime{
		Year:   t.Year(),
		Month:  int(t.Month()),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Second: t.Second(),
	}
}

func (s *Service) toPerson(birth domain.BirthData) astroApiAdapter.Person {
	city, countryCode := parseBirthPlace(birth.BirthPlace, s.client.DefaultCountry())
	return astroApiAdapter.Person{
		Name: birth.UserID.String(),
		BirthData: astroApiAdapter.BirthData{
			DateTime:    toDateTime(birth.BirthTime),
			City:        city,
			CountryCode: countryCode,
		},
	}
}

// parseBirthPlace делит "City, CC" по последней запятой.
// Без кода страны подставляется defaultCountry.
func parseBirthPlace(birthPlace, defaultCountry string) (city, countryCode string) {
	birthPlace = strings.TrimSpace(birthPlace)
	if birthPlace == "" {
		return "Unknown", defaultCountry
	}

	i := strings.LastIndex(birthPlace, ",")
	if i < 0 {
		return birthPlace, defaultCountry
	}

	city = strings.TrimSpace(birthPlace[:i])
	countryCode = strings.ToUpper(strings.TrimSpace(birthPlace[i+1:]))
	if countryCode == "" {
		countryCode = defaultCountry
	}
	return city, countryCode
}
