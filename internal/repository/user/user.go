package userRepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/admin/astro-insights/internal/domain"
	"github.com/admin/astro-insights/internal/ports/persistence"
	ports "github.com/admin/astro-insights/internal/ports/repository"
	"github.com/google/uuid"
)

type userColumns struct {
	TableName     string
	ID            string
	BirthDateTime string
	BirthPlace    string
	NatalChart    string
	CreatedAt     string
	UpdatedAt     string
}

// userRow строка таблицы: natal_chart хранится как JSONB
type userRow struct {
	ID            uuid.UUID  `db:"id"`
	BirthDateTime *time.Time `db:"birth_datetime"`
	BirthPlace    *string    `db:"birth_place"`
	NatalChart    []byte     `db:"natal_chart"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

type Repository struct {
	db      persistence.Persistence
	Log     *slog.Logger
	columns userColumns
}

// New создаёт новый репозиторий для работы с пользователями
func New(db persistence.Persistence, log *slog.Logger) ports.IUserRepo {
	cols := userColumns{
		TableName:     "users",
		ID:            "id",
		BirthDateTime: "birth_datetime",
		BirthPlace:    "birth_place",
		NatalChart:    "natal_chart",
		CreatedAt:     "created_at",
		UpdatedAt:     "updated_at",
	}
	return &Repository{
		db:      db,
		Log:     log,
		columns: cols,
	}
}

func (r *Repository) allColumns() string {
	return strings.Join([]string{
		r.columns.ID,
		r.columns.BirthDateTime,
		r.columns.BirthPlace,
		r.columns.NatalChart,
		r.columns.CreatedAt,
		r.columns.UpdatedAt,
	}, ", ")
}

// Create создаёт нового пользователя вместе с натальной картой
func (r *Repository) Create(ctx context.Context, user *domain.User) error {
	var chart []byte
	if user.NatalChart != nil {
		raw, err := json.Marshal(user.NatalChart)
		if err != nil {
			return fmt.Errorf("failed to marshal natal chart: %w", err)
		}
		chart = raw
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6)`,
		r.columns.TableName,
		r.allColumns())
	err := r.db.Exec(ctx, query,
		user.ID,
		user.BirthDateTime,
		user.BirthPlace,
		chart,
		user.CreatedAt,
		user.UpdatedAt)
	if err != nil {
		r.Log.Error("failed to create user", "error", err, "user_id", user.ID)
		return fmt.Errorf("failed to create user: %w", err)
	}
	r.Log.Debug("user created successfully", "user_id", user.ID)
	return nil
}

// GetByID получает пользователя с натальной картой
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var row userRow
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		r.allColumns(),
		r.columns.TableName,
		r.columns.ID)
	err := r.db.Get(ctx, &row, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.Log.Warn("user not found", "user_id", id)
			return nil, fmt.Errorf("get user %s: %w", id, domain.ErrUserNotFound)
		}
		r.Log.Error("failed to get user by id", "error", err, "user_id", id)
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	user, err := row.toDomain()
	if err != nil {
		r.Log.Error("failed to decode natal chart", "error", err, "user_id", id)
		return nil, err
	}
	r.Log.Debug("user retrieved successfully", "user_id", id)
	return user, nil
}

// GetByIDs получает пользователей пачкой, отсутствующие id молча пропускаются
func (r *Repository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.User, error) {
	if len(ids) == 0 {
		return []*domain.User{}, nil
	}

	args := make([]string, len(ids))
	for i, id := range ids {
		args[i] = id.String()
	}

	var rows []userRow
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ANY($1::uuid[])`,
		r.allColumns(),
		r.columns.TableName,
		r.columns.ID)
	if err := r.db.Select(ctx, &rows, query, "{"+strings.Join(args, ",")+"}"); err != nil {
		r.Log.Error("failed to get users by ids", "error", err, "count", len(ids))
		return nil, fmt.Errorf("failed to get users by ids: %w", err)
	}

	users := make([]*domain.User, 0, len(rows))
	for _, row := range rows {
		user, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func (row userRow) toDomain() (*domain.User, error) {
	user := &domain.User{
		ID:            row.ID,
		BirthDateTime: row.BirthDateTime,
		BirthPlace:    row.BirthPlace,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
	if len(row.NatalChart) == 0 || string(row.NatalChart) == "null" {
		return user, nil
	}

	var chart domain.NatalChart
	if err := json.Unmarshal(row.NatalChart, &chart); err != nil {
		return nil, fmt.Errorf("%w: user %s: %v", domain.ErrInvalidChartData, row.ID, err)
	}
	if err := chart.Validate(); err != nil {
		return nil, fmt.Errorf("user %s: %w", row.ID, err)
	}
	user.NatalChart = &chart
	return user, nil
}
