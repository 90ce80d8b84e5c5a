package push

import "context"

// PushProvider delivers a status text to a chat. Callers treat delivery as
// best effort.
type PushProvider interface {
	SendNotification(ctx context.Context, request *NotificationRequest) (*NotificationResponse, error)
}

type NotificationRequest struct {
	Recipient             string `json:"recipient"`
	Body                  string `json:"body"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview,omitempty"`
}

type NotificationResponse struct {
	MessageID string `json:"message_id"`
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
}
