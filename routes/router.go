package routes

import (
	"context"
	"net/http"
	"time"

	"smsbridge/internal/config"
	"smsbridge/internal/handlers/webhook"
	"smsbridge/internal/middleware"
	"smsbridge/internal/utils"
	"smsbridge/pkg/logger"

	"github.com/gin-gonic/gin"
)

// HealthChecker is a dependency /health probes. *cache.RedisCache satisfies it.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// NewRouter builds the HTTP surface of the bridge. health may be nil.
func NewRouter(cfg *config.Config, telegramHandler *webhook.TelegramHandler, health HealthChecker, log *logger.Logger) *gin.Engine {
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware(log))
	router.Use(middleware.AcknowledgingRecovery(log))

	v1 := router.Group("/api/v1")
	{
		SetupWebhookRoutes(v1, telegramHandler, cfg.Telegram.WebhookSecret, log)
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		redisStatus := "disabled"
		if health != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := health.Ping(ctx); err != nil {
				log.WithContext(c.Request.Context()).WithError(err).Warn("Redis health check failed")
				utils.ErrorResponse(c, http.StatusServiceUnavailable, "REDIS_UNAVAILABLE", "redis unavailable")
				return
			}
			redisStatus = "ok"
		}

		utils.SuccessResponse(c, "healthy", gin.H{
			"version": cfg.App.Version,
			"redis":   redisStatus,
		})
	})

	return router
}
