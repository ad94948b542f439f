package dto

import (
	"github.com/google/uuid"
)

type SendMessageRequest struct {
	ConversationId uuid.UUID `json:"conversation_id" validate:"required"`
	Content        string    `json:"content" validate:"required,min=1,max=4000"`
}

// TurnResponse carries the full outcome of one chat turn: the stored user
// message followed by both persona replies in speaking order.
type TurnResponse struct {
	UserMessage MessageResponse   `json:"user_message"`
	Replies     []MessageResponse `json:"replies"`
}

type PersonaDTO struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	Tagline string `json:"tagline"`
}

// AnonymousTurnRequest runs a turn without an account. The client carries the
// transcript itself and sends the trailing slice back with each submission.
type AnonymousTurnRequest struct {
	Content string           `json:"content" validate:"required,min=1,max=4000"`
	History []AnonymousEntry `json:"history" validate:"omitempty,max=20,dive"`
}

type AnonymousEntry struct {
	Sender  string `json:"sender" validate:"required,oneof=user ram laxman"`
	Content string `json:"content" validate:"required,max=4000"`
}

type AnonymousTurnResponse struct {
	Replies []AnonymousReply `json:"replies"`
}

type AnonymousReply struct {
	Sender  string `json:"sender"`
	Content string `json:"content"`
}

type ChatHistoryQuery struct {
	ChatType string `query:"chat_type"`
	Limit    int    `query:"limit"`
}
