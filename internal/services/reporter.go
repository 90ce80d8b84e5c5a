package services

import (
	"context"

	"smsbridge/pkg/logger"
	"smsbridge/pkg/push"
)

// StatusReporter sends progress texts to whoever issued the command.
// Report never fails; delivery problems are logged and dropped.
type StatusReporter interface {
	Report(ctx context.Context, text string)
}

type chatReporter struct {
	provider  push.PushProvider
	recipient string
	logger    *logger.Logger
}

func newChatReporter(provider push.PushProvider, recipient string, log *logger.Logger) StatusReporter {
	return &chatReporter{provider: provider, recipient: recipient, logger: log}
}

func (r *chatReporter) Report(ctx context.Context, text string) {
	if r.provider == nil || r.recipient == "" {
		return
	}
	_, err := r.provider.SendNotification(ctx, &push.NotificationRequest{
		Recipient:             r.recipient,
		Body:                  text,
		DisableWebPagePreview: true,
	})
	if err != nil {
		r.logger.WithError(err).Warn("Status notification not delivered")
	}
}
