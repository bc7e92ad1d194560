package admin

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/admin/astro-insights/internal/services/skycache"
	horoscopeUsecase "github.com/admin/astro-insights/internal/usecases/horoscope"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const tokenHeader = "X-Admin-Token"

// CacheInvalidator сбрасывает кэш локально и рассылает событие остальным репликам
type CacheInvalidator interface {
	InvalidateDailySky(ctx context.Context) int
	InvalidateUser(ctx context.Context, userID uuid.UUID) horoscopeUsecase.UserInvalidation
}

type StatsProvider interface {
	Stats() skycache.Stats
}

type Controller struct {
	Invalidator CacheInvalidator
	Stats       StatsProvider
	Log         *slog.Logger

	token string
}

// New token пустой - ручки открыты, иначе требуется заголовок X-Admin-Token
func New(
	invalidator CacheInvalidator,
	stats StatsProvider,
	token string,
	log *slog.Logger,
) *Controller {
	return &Controller{
		Invalidator: invalidator,
		Stats:       stats,
		Log:         log,
		token:       token,
	}
}

func (c *Controller) RegisterRoutes(router *gin.Engine) {
	cache := router.Group("/api/v1/admin/cache", c.authorize)
	{
		cache.GET("/stats", c.stats)
		cache.DELETE("/daily-sky", c.invalidateDailySky)
		cache.DELETE("/users/:id", c.invalidateUser)
	}
}

func (c *Controller) authorize(ctx *gin.Context) {
	if c.token == "" {
		ctx.Next()
		return
	}
	if subtle.ConstantTimeCompare([]byte(ctx.GetHeader(tokenHeader)), []byte(c.token)) != 1 {
		c.Log.Warn("admin request rejected", "path", ctx.Request.URL.Path, "client_ip", ctx.ClientIP())
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	ctx.Next()
}

func (c *Controller) stats(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.Stats.Stats())
}

func (c *Controller) invalidateDailySky(ctx *gin.Context) {
	removed := c.Invalidator.InvalidateDailySky(ctx.Request.Context())

	c.Log.Info("daily sky cache invalidated", "removed", removed)
	ctx.JSON(http.StatusOK, gin.H{"removed": removed})
}

func (c *Controller) invalidateUser(ctx *gin.Context) {
	userID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	result := c.Invalidator.InvalidateUser(ctx.Request.Context(), userID)

	c.Log.Info("user cache invalidated",
		"user_id", userID,
		"user_transits", result.UserTransits,
		"lunar_return", result.LunarReturn,
	)
	ctx.JSON(http.StatusOK, result)
}
