package horoscope

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/admin/astro-insights/internal/domain"
	horoscopeUsecase "github.com/admin/astro-insights/internal/usecases/horoscope"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	dateLayout = "2006-01-02"
	minYear    = 1900
	maxYear    = 2100
)

// Service операции прогноза, которые отдаёт HTTP
type Service interface {
	Now() time.Time
	GetDailyReading(ctx context.Context, userID uuid.UUID, date time.Time) (horoscopeUsecase.DailyReading, error)
	GetDerivedChart(ctx context.Context, userID uuid.UUID) (horoscopeUsecase.DerivedChart, error)
	GetCompatibility(ctx context.Context, userID, partnerID uuid.UUID) (horoscopeUsecase.CompatibilityReport, error)
	GetDailySky(ctx context.Context, date time.Time) (horoscopeUsecase.SkyReport, error)
	GetLunarReturn(ctx context.Context, userID uuid.UUID, date time.Time) (domain.NatalChart, error)
	GetSolarReturn(ctx context.Context, userID uuid.UUID, year int) (domain.NatalChart, error)
}

type Controller struct {
	Service Service
	Log     *slog.Logger
}

func New(svc Service, log *slog.Logger) *Controller {
	return &Controller{
		Service: svc,
		Log:     log,
	}
}

func (c *Controller) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")
	{
		api.GET("/sky/:date", c.getDailySky)

		users := api.Group("/users/:id")
		users.GET("/guidance", c.getGuidance)
		users.GET("/chart/derived", c.getDerivedChart)
		users.GET("/lunar-return", c.getLunarReturn)
		users.GET("/solar-return/:year", c.getSolarReturn)
		users.GET("/compatibility/:partnerId", c.getCompatibility)
	}
}

func (c *Controller) getDailySky(ctx *gin.Context) {
	date, err := c.parseDate(ctx.Param("date"))
	if err != nil {
		badRequest(ctx, err)
		return
	}

	report, err := c.Service.GetDailySky(ctx.Request.Context(), date)
	if err != nil {
		c.writeError(ctx, "get daily sky", err)
		return
	}
	ctx.JSON(http.StatusOK, report)
}

func (c *Controller) getGuidance(ctx *gin.Context) {
	userID, ok := userIDParam(ctx, "id")
	if !ok {
		return
	}
	date, err := c.parseDate(ctx.Query("date"))
	if err != nil {
		badRequest(ctx, err)
		return
	}

	reading, err := c.Service.GetDailyReading(ctx.Request.Context(), userID, date)
	if err != nil {
		c.writeError(ctx, "get daily reading", err)
		return
	}
	ctx.JSON(http.StatusOK, reading)
}

func (c *Controller) getDerivedChart(ctx *gin.Context) {
	userID, ok := userIDParam(ctx, "id")
	if !ok {
		return
	}

	derived, err := c.Service.GetDerivedChart(ctx.Request.Context(), userID)
	if err != nil {
		c.writeError(ctx, "get derived chart", err)
		return
	}
	ctx.JSON(http.StatusOK, derived)
}

func (c *Controller) getLunarReturn(ctx *gin.Context) {
	userID, ok := userIDParam(ctx, "id")
	if !ok {
		return
	}
	date, err := c.parseDate(ctx.Query("date"))
	if err != nil {
		badRequest(ctx, err)
		return
	}

	result, err := c.Service.GetLunarReturn(ctx.Request.Context(), userID, date)
	if err != nil {
		c.writeError(ctx, "get lunar return", err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

func (c *Controller) getSolarReturn(ctx *gin.Context) {
	userID, ok := userIDParam(ctx, "id")
	if !ok {
		return
	}
	year, err := strconv.Atoi(ctx.Param("year"))
	if err != nil || year < minYear || year > maxYear {
		badRequest(ctx, fmt.Errorf("year must be between %d and %d", minYear, maxYear))
		return
	}

	result, err := c.Service.GetSolarReturn(ctx.Request.Context(), userID, year)
	if err != nil {
		c.writeError(ctx, "get solar return", err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

func (c *Controller) getCompatibility(ctx *gin.Context) {
	userID, ok := userIDParam(ctx, "id")
	if !ok {
		return
	}
	partnerID, ok := userIDParam(ctx, "partnerId")
	if !ok {
		return
	}

	report, err := c.Service.GetCompatibility(ctx.Request.Context(), userID, partnerID)
	if err != nil {
		c.writeError(ctx, "get compatibility", err)
		return
	}
	ctx.JSON(http.StatusOK, report)
}

// parseDate пустая строка и "today" означают текущий день в зоне сервиса
func (c *Controller) parseDate(raw string) (time.Time, error) {
	now := c.Service.Now()
	if raw == "" || raw == "today" {
		return now, nil
	}
	date, err := time.ParseInLocation(dateLayout, raw, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", raw)
	}
	return date, nil
}

func userIDParam(ctx *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		badRequest(ctx, fmt.Errorf("invalid %s: %w", name, err))
		return uuid.Nil, false
	}
	return id, true
}

func badRequest(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// writeError переводит доменные ошибки в HTTP-статусы
func (c *Controller) writeError(ctx *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		// проверяется раньше ErrInvalidChartData: битая карта от провайдера - ошибка провайдера
		c.Log.Warn("upstream unavailable", "op", op, "error", err)
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "astro provider unavailable, try again later"})
	case errors.Is(err, domain.ErrInvalidChartData), errors.Is(err, domain.ErrNatalChartNotSet):
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.Log.Error("request failed", "op", op, "error", err)
		_ = ctx.Error(err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
