package admin

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/admin/astro-insights/internal/services/skycache"
	horoscopeUsecase "github.com/admin/astro-insights/internal/usecases/horoscope"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type fakeInvalidator struct {
	dailySky int
	users    []uuid.UUID
}

func (f *fakeInvalidator) InvalidateDailySky(context.Context) int {
	f.dailySky++
	return 2
}

func (f *fakeInvalidator) InvalidateUser(_ context.Context, id uuid.UUID) horoscopeUsecase.UserInvalidation {
	f.users = append(f.users, id)
	return horoscopeUsecase.UserInvalidation{UserTransits: 3, LunarReturn: true}
}

type fakeStats skycache.Stats

func (f fakeStats) Stats() skycache.Stats { return skycache.Stats(f) }

func newRouter(inv CacheInvalidator, token string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	stats := fakeStats{DailySky: 1, UserTransits: 10}
	New(inv, stats, token, slog.New(slog.NewTextHandler(io.Discard, nil))).RegisterRoutes(router)
	return router
}

func do(router *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set(tokenHeader, token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestStats(t *testing.T) {
	w := do(newRouter(&fakeInvalidator{}, ""), http.MethodGet, "/api/v1/admin/cache/stats", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var stats skycache.Stats
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatal(err)
	}
	if stats.DailySky != 1 || stats.UserTransits != 10 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestInvalidate(t *testing.T) {
	inv := &fakeInvalidator{}
	router := newRouter(inv, "")

	if w := do(router, http.MethodDelete, "/api/v1/admin/cache/daily-sky", ""); w.Code != http.StatusOK {
		t.Errorf("daily sky: status = %d", w.Code)
	}
	if inv.dailySky != 1 {
		t.Error("daily sky not invalidated")
	}

	userID := uuid.New()
	w := do(router, http.MethodDelete, "/api/v1/admin/cache/users/"+userID.String(), "")
	if w.Code != http.StatusOK {
		t.Fatalf("user: status = %d", w.Code)
	}
	var result horoscopeUsecase.UserInvalidation
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatal(err)
	}
	if result.UserTransits != 3 || !result.LunarReturn || inv.users[0] != userID {
		t.Errorf("result = %+v, users = %v", result, inv.users)
	}

	if w := do(router, http.MethodDelete, "/api/v1/admin/cache/users/42", ""); w.Code != http.StatusBadRequest {
		t.Errorf("bad id: status = %d", w.Code)
	}
}

func TestToken(t *testing.T) {
	inv := &fakeInvalidator{}
	router := newRouter(inv, "secret")

	if w := do(router, http.MethodDelete, "/api/v1/admin/cache/daily-sky", ""); w.Code != http.StatusUnauthorized {
		t.Errorf("missing token: status = %d", w.Code)
	}
	if w := do(router, http.MethodDelete, "/api/v1/admin/cache/daily-sky", "wrong"); w.Code != http.StatusUnauthorized {
		t.Errorf("wrong token: status = %d", w.Code)
	}
	if inv.dailySky != 0 {
		t.Fatal("unauthorized request reached the cache")
	}
	if w := do(router, http.MethodDelete, "/api/v1/admin/cache/daily-sky", "secret"); w.Code != http.StatusOK {
		t.Errorf("valid token: status = %d", w.Code)
	}
}
