package horoscope

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/admin/astro-insights/internal/domain"
	"github.com/admin/astro-insights/internal/ports/kafka"
	"github.com/admin/astro-insights/internal/ports/repository"
	"github.com/admin/astro-insights/internal/ports/service"
	"github.com/admin/astro-insights/internal/usecases/themes"
	"github.com/google/uuid"
)

// Service собирает ответы для пользователя: пользователь → кэш провайдера → синтез тем.
// При недоступном провайдере отдаёт последнее известное значение, затем только натальную карту.
type Service struct {
	UserRepo    repository.IUserRepo
	Cache       service.ISkyCache
	Synthesizer *themes.Synthesizer
	Publisher   kafka.IInvalidationPublisher // nil - инвалидации не рассылаются
	InstanceID  uuid.UUID
	Location    *time.Location
	Log         *slog.Logger

	now func() time.Time
}

func New(
	userRepo repository.IUserRepo,
	cache service.ISkyCache,
	synthesizer *themes.Synthesizer,
	publisher kafka.IInvalidationPublisher,
	instanceID uuid.UUID,
	location *time.Location,
	log *slog.Logger,
) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		UserRepo:    userRepo,
		Cache:       cache,
		Synthesizer: synthesizer,
		Publisher:   publisher,
		InstanceID:  instanceID,
		Location:    location,
		Log:         log,
		now:         time.Now,
	}
}

// Now текущее время в зоне сервиса
func (s *Service) Now() time.Time {
	return s.now().In(s.Location)
}

// loadUser пользователь с обязательной натальной картой
func (s *Service) loadUser(ctx context.Context, userID uuid.UUID) (*domain.User, domain.NatalChart, error) {
	user, err := s.UserRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, domain.NatalChart{}, fmt.Errorf("load user: %w", err)
	}
	if user.NatalChart == nil {
		return nil, domain.NatalChart{}, fmt.Errorf("user %s: %w", userID, domain.ErrNatalChartNotSet)
	}
	return user, *user.NatalChart, nil
}

// birthData данные рождения, без них провайдер не посчитает транзиты и возвраты
func birthData(user *domain.User) (domain.BirthData, error) {
	birth, ok := user.BirthData()
	if !ok {
		return domain.BirthData{}, fmt.Errorf("user %s has no birth datetime: %w", user.ID, domain.ErrNatalChartNotSet)
	}
	return birth, nil
}

func isUpstream(err error) bool {
	return errors.Is(err, domain.ErrUpstreamUnavailable)
}
