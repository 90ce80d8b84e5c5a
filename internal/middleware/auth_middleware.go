package middleware

import (
	"crypto/subtle"
	"net/http"

	"smsbridge/internal/utils"
	"smsbridge/pkg/logger"

	"github.com/gin-gonic/gin"
)

// TelegramSecretRequired checks the secret token Telegram echoes on every
// webhook call when one was registered with setWebhook. An empty secret
// disables the check.
func TelegramSecretRequired(secret string, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}

		got := c.GetHeader(utils.HeaderTelegramSecret)
		if subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
			log.LogSecurityEvent("webhook_secret_mismatch", "high", map[string]interface{}{
				"client_ip":  c.ClientIP(),
				"has_header": got != "",
			})
			c.String(http.StatusUnauthorized, "unauthorized")
			c.Abort()
			return
		}

		c.Next()
	}
}
