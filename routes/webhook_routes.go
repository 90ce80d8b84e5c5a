package routes

import (
	"net/http"

	"smsbridge/internal/handlers/webhook"
	"smsbridge/internal/middleware"
	"smsbridge/pkg/logger"

	"github.com/gin-gonic/gin"
)

var aliveMethods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodOptions,
}

// SetupWebhookRoutes sets up the Telegram webhook endpoint
func SetupWebhookRoutes(r *gin.RouterGroup, telegramHandler *webhook.TelegramHandler, secret string, log *logger.Logger) {
	// Any non-POST is a liveness probe for humans and uptime checks, no secret needed
	for _, method := range aliveMethods {
		r.Handle(method, "/webhooks/telegram", telegramHandler.Alive)
	}

	webhooks := r.Group("/webhooks/telegram")
	webhooks.Use(middleware.TelegramSecretRequired(secret, log))
	{
		webhooks.POST("", telegramHandler.HandleUpdate)
	}
}
