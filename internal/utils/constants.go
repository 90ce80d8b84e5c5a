package utils

import "time"

// Application Constants
const (
	AppName    = "smsbridge"
	AppVersion = "1.0.0"

	// Default values
	DefaultCountryCode = "995"
	DefaultSendTimeout = 15 * time.Second

	// Request context keys
	ContextKeyRequestID = "request_id"
	HeaderRequestID     = "X-Request-ID"

	// Telegram
	HeaderTelegramSecret = "X-Telegram-Bot-Api-Secret-Token"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)
