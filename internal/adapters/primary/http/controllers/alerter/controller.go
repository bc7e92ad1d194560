package alerter

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/admin/astro-insights/internal/ports/service"
	"github.com/gin-gonic/gin"
)

type Controller struct {
	AlerterService service.IAlerterService
	Log            *slog.Logger
}

func New(alerterService service.IAlerterService, log *slog.Logger) *Controller {
	return &Controller{
		AlerterService: alerterService,
		Log:            log,
	}
}

func (c *Controller) RegisterRoutes(router *gin.Engine) {
	router.POST("/webhooks/alert", c.handleAlert)
}

// handleAlert пересылает внешний алерт в канал алертов.
// Ошибка доставки отдаётся как 200, чтобы отправитель не повторял запрос.
func (c *Controller) handleAlert(ctx *gin.Context) {
	var payload AlertPayload
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		c.Log.Warn("failed to bind alert request", "error", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if err := c.AlerterService.SendAlert(ctx.Request.Context(), formatMessage(payload)); err != nil {
		c.Log.Warn("failed to send alert",
			"error", err,
			"source", payload.Source,
		)
		ctx.JSON(http.StatusOK, gin.H{"ok": false, "error": "failed to send alert"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}

func formatMessage(p AlertPayload) string {
	var b strings.Builder
	if p.Severity != "" {
		b.WriteString("[")
		b.WriteString(strings.ToUpper(p.Severity))
		b.WriteString("] ")
	}
	if p.Source != "" {
		b.WriteString("Источник: ")
		b.WriteString(p.Source)
		b.WriteString("\n\n")
	}
	b.WriteString(p.Message)
	return b.String()
}
