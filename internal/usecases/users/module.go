package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/admin/astro-insights/internal/domain"
	"github.com/admin/astro-insights/internal/ports/repository"
	"github.com/admin/astro-insights/internal/ports/service"
	"github.com/google/uuid"
)

// ErrInvalidBirthData дата рождения в будущем или не задано место
var ErrInvalidBirthData = errors.New("invalid birth data")

// Service регистрация пользователей: данные рождения → натальная карта провайдера → БД
type Service struct {
	UserRepo repository.IUserRepo
	Charts   service.INatalChartProvider
	Log      *slog.Logger

	now func() time.Time
}

func New(userRepo repository.IUserRepo, charts service.INatalChartProvider, log *slog.Logger) *Service {
	return &Service{
		UserRepo: userRepo,
		Charts:   charts,
		Log:      log,
		now:      time.Now,
	}
}

// Register создаёт пользователя. Карта запрашивается до сохранения:
// без неё пользователь не сможет получить ни одного прогноза.
func (s *Service) Register(ctx context.Context, birthTime time.Time, birthPlace string) (*domain.User, error) {
	birthPlace = strings.TrimSpace(birthPlace)
	now := s.now()

	if birthPlace == "" {
		return nil, fmt.Errorf("%w: birth place is required", ErrInvalidBirthData)
	}
	if birthTime.After(now) {
		return nil, fmt.Errorf("%w: birth datetime is in the future", ErrInvalidBirthData)
	}

	user := &domain.User{
		ID:            uuid.New(),
		BirthDateTime: &birthTime,
		BirthPlace:    &birthPlace,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	birth, _ := user.BirthData()
	chart, err := s.Charts.GetNatalChart(ctx, birth)
	if err != nil {
		return nil, fmt.Errorf("fetch natal chart: %w", err)
	}
	if err := chart.Validate(); err != nil {
		return nil, fmt.Errorf("natal chart from provider: %w", err)
	}
	user.NatalChart = &chart

	if err := s.UserRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.Log.Info("user registered",
		"user_id", user.ID,
		"birth_date", birthTime.Format("2006-01-02"),
		"birth_place", birthPlace,
		"placements", len(chart.Placements),
	)
	return user, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.UserRepo.GetByID(ctx, id)
}
