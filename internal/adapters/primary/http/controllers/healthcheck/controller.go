package healthcheckController

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const readyTimeout = 2 * time.Second

// Pinger зависимость, доступность которой проверяет /ready
type Pinger interface {
	Ping(ctx context.Context) error
}

// Check именованная проверка готовности
type Check struct {
	Name   string
	Pinger Pinger
}

type HealthCheckController struct {
	appName string
	checks  []Check
	log     *slog.Logger
}

func New(appName string, log *slog.Logger, checks ...Check) *HealthCheckController {
	return &HealthCheckController{
		appName: appName,
		checks:  checks,
		log:     log,
	}
}

func (c *HealthCheckController) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", c.health)
	r.GET("/ready", c.ready)
}

// health базовая проверка (всегда возвращает 200)
func (c *HealthCheckController) health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": c.appName,
	})
}

// ready проверяет все зависимости; первая недоступная даёт 503
func (c *HealthCheckController) ready(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), readyTimeout)
	defer cancel()

	for _, check := range c.checks {
		if err := check.Pinger.Ping(pingCtx); err != nil {
			c.log.Error("dependency not ready", "dependency", check.Name, "error", err)
			ctx.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not ready",
				"error":  check.Name + " unavailable",
			})
			return
		}
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}
