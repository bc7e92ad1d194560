package users

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/admin/astro-insights/internal/domain"
	usersUsecase "github.com/admin/astro-insights/internal/usecases/users"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Service interface {
	Register(ctx context.Context, birthTime time.Time, birthPlace string) (*domain.User, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.User, error)
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
	users := router.Group("/api/v1/users")
	{
		users.POST("", c.register)
		users.GET("/:id", c.get)
	}
}

// RegisterRequest дата и время рождения в RFC3339, место в формате "Город, CC"
type RegisterRequest struct {
	BirthDateTime time.Time `json:"birth_datetime" binding:"required"`
	BirthPlace    string    `json:"birth_place" binding:"required"`
}

func (c *Controller) register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.Log.Warn("failed to bind register request", "error", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	user, err := c.Service.Register(ctx.Request.Context(), req.BirthDateTime, req.BirthPlace)
	if err != nil {
		c.writeError(ctx, "register user", err)
		return
	}
	ctx.JSON(http.StatusCreated, user)
}

func (c *Controller) get(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	user, err := c.Service.Get(ctx.Request.Context(), id)
	if err != nil {
		c.writeError(ctx, "get user", err)
		return
	}
	ctx.JSON(http.StatusOK, user)
}

func (c *Controller) writeError(ctx *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, usersUsecase.ErrInvalidBirthData):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrUserNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		c.Log.Warn("upstream unavailable", "op", op, "error", err)
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "astro provider unavailable, try again later"})
	case errors.Is(err, domain.ErrInvalidChartData):
		c.Log.Error("provider returned invalid natal chart", "op", op, "error", err)
		ctx.JSON(http.StatusBadGateway, gin.H{"error": "invalid natal chart from provider"})
	default:
		c.Log.Error("request failed", "op", op, "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
