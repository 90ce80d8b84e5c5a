package models

import (
	"errors"
	"strconv"
)

// ErrMalformedUpdate is returned when an update carries no usable message.
var ErrMalformedUpdate = errors.New("malformed telegram update")

// TelegramUpdate is the subset of the Bot API Update object the bridge reads.
type TelegramUpdate struct {
	UpdateID int64            `json:"update_id"`
	Message  *TelegramMessage `json:"message,omitempty"`
}

type TelegramMessage struct {
	MessageID int64         `json:"message_id"`
	Chat      *TelegramChat `json:"chat,omitempty"`
	From      *TelegramUser `json:"from,omitempty"`
	Text      string        `json:"text,omitempty"`
}

type TelegramChat struct {
	ID   int64  `json:"id"`
	Type string `json:"type,omitempty"`
}

type TelegramUser struct {
	ID       int64  `json:"id"`
	IsBot    bool   `json:"is_bot,omitempty"`
	Username string `json:"username,omitempty"`
}

// InboundMessage is one command candidate received from the chat platform.
type InboundMessage struct {
	UpdateID       int64  `json:"update_id"`
	ChatID         int64  `json:"chat_id"`
	SenderIdentity string `json:"sender_identity"`
	RawText        string `json:"raw_text"`
}

// Recipient returns the chat id in the form the notifier expects.
func (m *InboundMessage) Recipient() string {
	if m == nil || m.ChatID == 0 {
		return ""
	}
	return strconv.FormatInt(m.ChatID, 10)
}

// ToInboundMessage validates the update shape. A missing message or chat is
// ErrMalformedUpdate; a missing text is an empty command, not a malformed
// update. The chat id is the sender identity, as in private bot chats the
// two coincide.
func (u *TelegramUpdate) ToInboundMessage() (*InboundMessage, error) {
	if u == nil || u.Message == nil || u.Message.Chat == nil || u.Message.Chat.ID == 0 {
		return nil, ErrMalformedUpdate
	}

	return &InboundMessage{
		UpdateID:       u.UpdateID,
		ChatID:         u.Message.Chat.ID,
		SenderIdentity: strconv.FormatInt(u.Message.Chat.ID, 10),
		RawText:        u.Message.Text,
	}, nil
}
