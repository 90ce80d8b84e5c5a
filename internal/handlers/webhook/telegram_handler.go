package webhook

import (
	"context"

	"smsbridge/internal/models"
	"smsbridge/internal/services"
	"smsbridge/internal/utils"
	"smsbridge/pkg/logger"

	"github.com/gin-gonic/gin"
)

const aliveText = "✅ Alive and waiting for Telegram POST."

type TelegramHandler struct {
	bridge services.BridgeService
	logger *logger.Logger
}

func NewTelegramHandler(bridge services.BridgeService, log *logger.Logger) *TelegramHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &TelegramHandler{
		bridge: bridge,
		logger: log,
	}
}

// Alive answers non-POST probes of the webhook URL.
func (h *TelegramHandler) Alive(c *gin.Context) {
	utils.Acknowledge(c, aliveText)
}

// HandleUpdate processes one Telegram update. Every path answers 200:
// a non-2xx makes Telegram redeliver, and a redelivery could send the SMS
// twice.
func (h *TelegramHandler) HandleUpdate(c *gin.Context) {
	log := h.logger.WithContext(c.Request.Context())

	var update models.TelegramUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		log.WithError(err).Warn("Unreadable webhook body")
		utils.Acknowledge(c, "bad request")
		return
	}

	msg, err := update.ToInboundMessage()
	if err != nil {
		log.WithUpdateID(update.UpdateID).Debug("Update without chat ignored")
		utils.Acknowledge(c, "no chat")
		return
	}

	// Delivery must finish even if Telegram drops the connection.
	ctx := context.WithoutCancel(c.Request.Context())
	result := h.bridge.Handle(ctx, msg)

	log.WithUpdateID(msg.UpdateID).WithField("result", result.Kind).Info("Update handled")
	utils.Acknowledge(c, result.Acknowledgement())
}
