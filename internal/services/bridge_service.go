package services

import (
	"context"
	"fmt"

	"smsbridge/internal/config"
	"smsbridge/internal/models"
	"smsbridge/internal/utils"
	"smsbridge/internal/validators"
	"smsbridge/pkg/cache"
	"smsbridge/pkg/logger"
	"smsbridge/pkg/push"
)

type BridgeService interface {
	// Handle runs one inbound message to completion. It never fails: every
	// outcome, including a recovered panic, comes back as a Result.
	Handle(ctx context.Context, msg *models.InboundMessage) *models.Result
}

type bridgeService struct {
	parser               CommandParser
	delivery             DeliveryService
	notifier             push.PushProvider
	tracker              cache.UpdateTracker
	allowedIdentity      string
	countryCode          string
	rejectInvalidNumbers bool
	logger               *logger.Logger
}

func NewBridgeService(
	cfg *config.Config,
	parser CommandParser,
	delivery DeliveryService,
	notifier push.PushProvider,
	tracker cache.UpdateTracker,
	log *logger.Logger,
) BridgeService {
	if log == nil {
		log = logger.Nop()
	}

	return &bridgeService{
		parser:               parser,
		delivery:             delivery,
		notifier:             notifier,
		tracker:              tracker,
		allowedIdentity:      cfg.Telegram.AllowedUserID,
		countryCode:          cfg.SMS.CountryCode,
		rejectInvalidNumbers: cfg.SMS.RejectInvalidNumbers,
		logger:               log,
	}
}

func (s *bridgeService) Handle(ctx context.Context, msg *models.InboundMessage) (result *models.Result) {
	if msg == nil || msg.ChatID == 0 {
		return &models.Result{Kind: models.ResultMalformed, Err: models.ErrMalformedUpdate}
	}

	log := s.logger.WithContext(ctx).WithUpdateID(msg.UpdateID).WithChatID(msg.ChatID)
	reporter := newChatReporter(s.notifier, msg.Recipient(), log)

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("panic: %v", r)
			log.WithError(err).Error("Message handling crashed")
			reporter.Report(ctx, msgInternalError(err))
			result = &models.Result{Kind: models.ResultInternalError, Err: err}
		}
	}()

	if s.tracker != nil && msg.UpdateID != 0 {
		claimed, err := s.tracker.Claim(ctx, msg.UpdateID)
		switch {
		case err != nil:
			log.WithError(err).Warn("Update tracker unavailable, processing without dedup")
		case !claimed:
			log.Info("Duplicate update dropped")
			return &models.Result{Kind: models.ResultDuplicate}
		}
	}

	if !IsAuthorized(msg.SenderIdentity, s.allowedIdentity) {
		log.LogSecurityEvent("unauthorized_sender", "medium", map[string]interface{}{
			"sender_identity": msg.SenderIdentity,
		})
		reporter.Report(ctx, msgUnauthorized(msg.SenderIdentity))
		return &models.Result{Kind: models.ResultUnauthorized}
	}

	cmd, ok := s.parser.Parse(msg.RawText)
	if !ok {
		log.Info("Command text did not parse")
		reporter.Report(ctx, msgUsage())
		return &models.Result{Kind: models.ResultUnparseable}
	}

	to := utils.NormalizeNumber(cmd.Destination, s.countryCode)
	if err := validators.ValidatePhoneNumber(to); err != nil {
		if s.rejectInvalidNumbers {
			log.WithField("to", utils.MaskPhone(to)).Info("Destination rejected")
			reporter.Report(ctx, msgInvalidNumber(to))
			return &models.Result{Kind: models.ResultUnparseable, Err: err}
		}
		log.WithField("to", utils.MaskPhone(to)).Warn("Destination is not E.164, passing to provider as is")
	}

	outcome := s.delivery.Send(ctx, cmd, to, reporter)
	if outcome.Sent() {
		return &models.Result{Kind: models.ResultDelivered, Outcome: outcome}
	}
	return &models.Result{Kind: models.ResultRejected, Outcome: outcome}
}
