package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/admin/astro-insights/internal/domain"
	usersUsecase "github.com/admin/astro-insights/internal/usecases/users"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type fakeService struct {
	err  error
	user *domain.User
}

func (s *fakeService) Register(_ context.Context, birthTime time.Time, birthPlace string) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.user = &domain.User{ID: uuid.New(), BirthDateTime: &birthTime, BirthPlace: &birthPlace}
	return s.user, nil
}

func (s *fakeService) Get(_ context.Context, id uuid.UUID) (*domain.User, error) {
	if s.user == nil || s.user.ID != id {
		return nil, fmt.Errorf("get user %s: %w", id, domain.ErrUserNotFound)
	}
	return s.user, nil
}

func newRouter(svc Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	New(svc, slog.New(slog.NewTextHandler(io.Discard, nil))).RegisterRoutes(router)
	return router
}

func do(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRegisterAndGet(t *testing.T) {
	svc := &fakeService{}
	router := newRouter(svc)

	w := do(router, http.MethodPost, "/api/v1/users", `{"birth_datetime":"1996-08-04T14:30:00Z","birth_place":"Berlin, DE"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}

	var created domain.User
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}
	if created.ID != svc.user.ID || *created.BirthPlace != "Berlin, DE" {
		t.Errorf("created = %+v", created)
	}

	if w := do(router, http.MethodGet, "/api/v1/users/"+created.ID.String(), ""); w.Code != http.StatusOK {
		t.Errorf("get: status = %d", w.Code)
	}
	if w := do(router, http.MethodGet, "/api/v1/users/"+uuid.NewString(), ""); w.Code != http.StatusNotFound {
		t.Errorf("unknown user: status = %d", w.Code)
	}
}

func TestRegisterErrors(t *testing.T) {
	valid := `{"birth_datetime":"1996-08-04T14:30:00Z","birth_place":"Berlin"}`

	tests := []struct {
		name string
		body string
		err  error
		want int
	}{
		{"missing place", `{"birth_datetime":"1996-08-04T14:30:00Z"}`, nil, http.StatusBadRequest},
		{"bad datetime", `{"birth_datetime":"04.08.1996","birth_place":"Berlin"}`, nil, http.StatusBadRequest},
		{"future birth", valid, fmt.Errorf("%w: future", usersUsecase.ErrInvalidBirthData), http.StatusBadRequest},
		{"provider down", valid, domain.NewUpstreamError("natal chart", 503, errors.New("down")), http.StatusServiceUnavailable},
		{"bad chart", valid, &domain.ChartDataError{Op: "natal", Missing: []domain.Planet{domain.Sun}}, http.StatusBadGateway},
		{"db failure", valid, errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(newRouter(&fakeService{err: tt.err}), http.MethodPost, "/api/v1/users", tt.body)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d (%s)", w.Code, tt.want, w.Body.String())
			}
		})
	}
}
