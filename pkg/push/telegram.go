package push

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-telegram/bot"
	tgmodels "github.com/go-telegram/bot/models"
)

// maxMessageRunes is the Bot API limit for one sendMessage text.
const maxMessageRunes = 4096

// messageSender is the part of the bot client the provider uses.
type messageSender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*tgmodels.Message, error)
}

// TelegramProvider sends status texts with the Bot API. It never polls for
// updates; those arrive through the webhook.
type TelegramProvider struct {
	bot   messageSender
	token string
}

func NewTelegramProvider(baseURL, token string, timeout time.Duration) (*TelegramProvider, error) {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	b, err := bot.New(token,
		bot.WithSkipGetMe(),
		bot.WithServerURL(strings.TrimRight(baseURL, "/")),
		bot.WithHTTPClient(timeout, &http.Client{Timeout: timeout}),
	)
	if err != nil {
		return nil, fmt.Errorf("telegram: create bot: %s", redact(err.Error(), token))
	}

	return &TelegramProvider{
		bot:   b,
		token: token,
	}, nil
}

func (t *TelegramProvider) SendNotification(ctx context.Context, request *NotificationRequest) (*NotificationResponse, error) {
	if request == nil || request.Recipient == "" {
		return nil, fmt.Errorf("telegram: recipient is required")
	}

	params := &bot.SendMessageParams{
		ChatID: request.Recipient,
		Text:   truncateRunes(request.Body, maxMessageRunes),
	}
	if request.DisableWebPagePreview {
		disabled := true
		params.LinkPreviewOptions = &tgmodels.LinkPreviewOptions{IsDisabled: &disabled}
	}

	msg, err := t.bot.SendMessage(ctx, params)
	if err != nil {
		// Transport errors embed the request URL, and with it the bot token.
		text := redact(err.Error(), t.token)
		return &NotificationResponse{
			Success: false,
			Error:   text,
		}, fmt.Errorf("telegram: send message: %s", text)
	}

	resp := &NotificationResponse{Success: true}
	if msg != nil {
		resp.MessageID = strconv.Itoa(msg.ID)
	}
	return resp, nil
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-1]) + "…"
}

func redact(s, secret string) string {
	if secret == "" {
		return s
	}
	return strings.ReplaceAll(s, secret, "***")
}
