package repository

import (
	"context"

	"github.com/admin/astro-insights/internal/domain"
	"github.com/google/uuid"
)

// IUserRepo интерфейс для работы с пользователями и их натальными картами
type IUserRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
}
