package userRepo

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/admin/astro-insights/internal/domain"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// fakeDB отдаёт заранее заданные строки и запоминает запросы
type fakeDB struct {
	row      *userRow
	rows     []userRow
	err      error
	queries  []string
	execArgs []interface{}
}

func (f *fakeDB) Get(_ context.Context, dest interface{}, query string, _ ...interface{}) error {
	f.queries = append(f.queries, query)
	if f.err != nil {
		return f.err
	}
	if f.row == nil {
		return sql.ErrNoRows
	}
	*dest.(*userRow) = *f.row
	return nil
}

func (f *fakeDB) Select(_ context.Context, dest interface{}, query string, _ ...interface{}) error {
	f.queries = append(f.queries, query)
	if f.err != nil {
		return f.err
	}
	*dest.(*[]userRow) = f.rows
	return nil
}

func (f *fakeDB) Exec(_ context.Context, query string, args ...interface{}) error {
	f.queries = append(f.queries, query)
	f.execArgs = args
	return f.err
}

func (f *fakeDB) QueryRow(context.Context, string, ...interface{}) *sqlx.Row { return nil }

func (f *fakeDB) Ping(context.Context) error { return nil }

func newRepo(db *fakeDB) *Repository {
	return New(db, slog.New(slog.NewTextHandler(io.Discard, nil))).(*Repository)
}

const chartJSON = `{"placements":[{"planet":"Sun","sign":"Leo","degree":15,"house":5,"is_retrograde":false}],"ascendant":{"sign":"Aries","degree":1},"midheaven":{"sign":"Capricorn","degree":2}}`

func TestGetByIDDecodesNatalChart(t *testing.T) {
	id := uuid.New()
	birth := time.Date(1990, 6, 1, 12, 0, 0, 0, time.UTC)
	db := &fakeDB{row: &userRow{ID: id, BirthDateTime: &birth, NatalChart: []byte(chartJSON)}}

	user, err := newRepo(db).GetByID(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	if user.NatalChart == nil || len(user.NatalChart.Placements) != 1 {
		t.Fatalf("natal chart = %+v", user.NatalChart)
	}
	if user.NatalChart.Placements[0].Sign != domain.Leo || user.NatalChart.Ascendant.Sign != domain.Aries {
		t.Errorf("unexpected chart: %+v", user.NatalChart)
	}
	if !strings.Contains(db.queries[0], "FROM users WHERE id = $1") {
		t.Errorf("query = %s", db.queries[0])
	}
}

func TestGetByIDWithoutChart(t *testing.T) {
	db := &fakeDB{row: &userRow{ID: uuid.New()}}

	user, err := newRepo(db).GetByID(context.Background(), db.row.ID)
	if err != nil {
		t.Fatal(err)
	}
	if user.NatalChart != nil {
		t.Errorf("expected nil chart, got %+v", user.NatalChart)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	_, err := newRepo(&fakeDB{}).GetByID(context.Background(), uuid.New())
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestGetByIDInvalidChart(t *testing.T) {
	bad := `{"placements":[{"planet":"Sun","sign":"Leo","degree":15,"house":13}]}`
	db := &fakeDB{row: &userRow{ID: uuid.New(), NatalChart: []byte(bad)}}

	_, err := newRepo(db).GetByID(context.Background(), db.row.ID)
	if !errors.Is(err, domain.ErrInvalidChartData) {
		t.Fatalf("expected ErrInvalidChartData, got %v", err)
	}
}

func TestGetByIDsEmpty(t *testing.T) {
	db := &fakeDB{}
	users, err := newRepo(db).GetByIDs(context.Background(), nil)
	if err != nil || len(users) != 0 {
		t.Fatalf("users = %v, err = %v", users, err)
	}
	if len(db.queries) != 0 {
		t.Error("no query expected for empty ids")
	}
}

func TestGetByIDs(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	db := &fakeDB{rows: []userRow{{ID: a, NatalChart: []byte(chartJSON)}, {ID: b}}}

	users, err := newRepo(db).GetByIDs(context.Background(), []uuid.UUID{a, b})
	if err != nil {
		t.Fatal(err)
	}
	if len(users) != 2 || users[0].NatalChart == nil || users[1].NatalChart != nil {
		t.Fatalf("unexpected users: %+v", users)
	}
}

func TestCreateMarshalsChart(t *testing.T) {
	db := &fakeDB{}
	chart := domain.NatalChart{Placements: []domain.NatalPlacement{{Planet: domain.Moon, Sign: domain.Cancer, Degree: 3, House: 4}}}
	user := &domain.User{ID: uuid.New(), NatalChart: &chart}

	if err := newRepo(db).Create(context.Background(), user); err != nil {
		t.Fatal(err)
	}
	raw, ok := db.execArgs[3].([]byte)
	if !ok || !strings.Contains(string(raw), `"planet":"Moon"`) {
		t.Errorf("natal chart arg = %v", db.execArgs[3])
	}
}
