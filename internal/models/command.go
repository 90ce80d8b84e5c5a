package models

// ParsedCommand is a complete send request extracted from chat text.
type ParsedCommand struct {
	SenderName  string `json:"sender_name" validate:"required,not_blank"`
	Destination string `json:"destination" validate:"required,not_blank"`
	Body        string `json:"body" validate:"required,not_blank"`
}
