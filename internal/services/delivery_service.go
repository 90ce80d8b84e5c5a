package services

import (
	"context"
	"errors"
	"time"

	"smsbridge/internal/config"
	"smsbridge/internal/models"
	"smsbridge/internal/utils"
	"smsbridge/pkg/logger"
	"smsbridge/pkg/sms"
)

type DeliveryService interface {
	// Send delivers cmd.Body to the normalized number to. It makes at most two
	// provider calls and reports each transition through reporter.
	Send(ctx context.Context, cmd *models.ParsedCommand, to string, reporter StatusReporter) *models.DeliveryOutcome
}

type deliveryService struct {
	provider     sms.SMSProvider
	fallbackFrom string
	sendTimeout  time.Duration
	logger       *logger.Logger
}

func NewDeliveryService(cfg *config.SMSConfig, provider sms.SMSProvider, log *logger.Logger) DeliveryService {
	timeout := cfg.SendTimeout
	if timeout <= 0 {
		timeout = utils.DefaultSendTimeout
	}
	if log == nil {
		log = logger.Nop()
	}

	return &deliveryService{
		provider:     provider,
		fallbackFrom: cfg.FallbackFrom,
		sendTimeout:  timeout,
		logger:       log,
	}
}

func (s *deliveryService) Send(ctx context.Context, cmd *models.ParsedCommand, to string, reporter StatusReporter) *models.DeliveryOutcome {
	log := s.logger.WithContext(ctx).WithFields(map[string]interface{}{
		"provider": s.provider.Name(),
		"to":       utils.MaskPhone(to),
	})

	from := cmd.SenderName
	reporter.Report(ctx, msgSending(cmd, to))
	resp, err := s.attempt(ctx, from, to, cmd.Body)
	attempts := 1

	if err != nil && s.fallbackFrom != "" {
		if errors.Is(err, context.DeadlineExceeded) {
			// The provider may still accept the timed-out request.
			log.WithField("from", from).Warn("Primary attempt timed out, fallback may duplicate a late delivery")
		}
		log.WithError(err).WithField("from", from).Warn("Primary sender rejected, retrying with fallback")

		reporter.Report(ctx, msgRetrying(from, s.fallbackFrom))
		from = s.fallbackFrom
		resp, err = s.attempt(ctx, from, to, cmd.Body)
		attempts++
	}

	outcome := &models.DeliveryOutcome{
		From:         from,
		To:           to,
		FallbackUsed: attempts > 1,
		Attempts:     attempts,
	}

	if err != nil {
		outcome.Status = models.DeliveryStatusRejected
		outcome.ErrorCode, outcome.ErrorMessage = classifyError(err)

		log.WithFields(map[string]interface{}{
			"from":       from,
			"attempts":   attempts,
			"error_code": outcome.ErrorCode,
		}).Error("SMS delivery rejected")

		reporter.Report(ctx, msgProviderError(s.provider.Name(), outcome))
		return outcome
	}

	outcome.Status = models.DeliveryStatusSent
	outcome.ConfirmationID = resp.MessageID
	outcome.ProviderStatus = resp.Status

	log.LogDeliveryEvent("sms_sent", map[string]interface{}{
		"from":          from,
		"attempts":      attempts,
		"fallback_used": outcome.FallbackUsed,
		"message_id":    resp.MessageID,
		"status":        resp.Status,
	})

	reporter.Report(ctx, msgSent(outcome, cmd.Body))
	return outcome
}

func (s *deliveryService) attempt(ctx context.Context, from, to, body string) (*sms.SMSResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, s.sendTimeout)
	defer cancel()

	resp, err := s.provider.SendSMS(ctx, &sms.SMSRequest{
		To:      to,
		From:    from,
		Message: body,
	})
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, errors.New("provider returned no response")
	}
	return resp, nil
}

// classifyError maps any send failure to a code and message for the chat.
func classifyError(err error) (string, string) {
	var perr *sms.ProviderError
	if errors.As(err, &perr) {
		return perr.Code, perr.Message
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return sms.ErrorCodeTransport, "provider request timed out"
	}
	return sms.ErrorCodeTransport, err.Error()
}
