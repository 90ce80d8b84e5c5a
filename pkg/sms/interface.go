package sms

import (
	"context"
	"fmt"
)

// SMSProvider sends one message. A nil error means the provider accepted it;
// any rejection, including an error code inside a 2xx body, is an error.
type SMSProvider interface {
	SendSMS(ctx context.Context, request *SMSRequest) (*SMSResponse, error)
	Name() string
}

type SMSRequest struct {
	To      string `json:"to"`
	From    string `json:"from"`
	Message string `json:"message"`
}

type SMSResponse struct {
	MessageID string `json:"message_id"`
	Status    string `json:"status"`
}

// ErrorCodeTransport marks failures where the provider gave no code of its
// own: network errors, timeouts, unreadable responses.
const ErrorCodeTransport = "transport"

// ProviderError is a provider-level rejection carrying the provider's code.
type ProviderError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"http_status,omitempty"`
}

func (e *ProviderError) Error() string {
	if e.HTTPStatus != 0 {
		return fmt.Sprintf("provider error %s (http %d): %s", e.Code, e.HTTPStatus, e.Message)
	}
	return fmt.Sprintf("provider error %s: %s", e.Code, e.Message)
}
