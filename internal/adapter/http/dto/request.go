package dto

import (
	"errors"
	"strings"

	"github.com/iho/mitiledger/internal/usecase"
)

// MessageRequest is an inbound chat event delivered by the messaging bridge.
type MessageRequest struct {
	MessageID      string `json:"message_id"`
	SenderID       string `json:"sender_id"`
	ConversationID string `json:"conversation_id"`
	Text           string `json:"text"`
	IsGroup        bool   `json:"is_group"`
}

// Validate checks the fields every event must carry.
func (r *MessageRequest) Validate() error {
	if strings.TrimSpace(r.SenderID) == "" {
		return errors.New("sender_id is required")
	}
	if strings.TrimSpace(r.ConversationID) == "" {
		return errors.New("conversation_id is required")
	}
	return nil
}

// ToMessage converts to use case input.
func (r *MessageRequest) ToMessage() usecase.Message {
	return usecase.Message{
		ID:             r.MessageID,
		SenderID:       strings.TrimSpace(r.SenderID),
		ConversationID: r.ConversationID,
		Text:           r.Text,
		IsGroup:        r.IsGroup,
	}
}
