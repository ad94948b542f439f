package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateConversationRequest struct {
	Title       string   `json:"title" validate:"required,min=1,max=200"`
	Description string   `json:"description" validate:"omitempty,max=1000"`
	ChatType    string   `json:"chat_type" validate:"omitempty,oneof=triple study"`
	Tags        []string `json:"tags" validate:"omitempty,max=10"`
}

type UpdateConversationRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	IsFavorite  *bool   `json:"is_favorite"`
	// Archiving and unarchiving go through here; deletion has its own
	// endpoint and is not a valid transition target.
	Status *string  `json:"status" validate:"omitempty,oneof=active archived"`
	Tags   []string `json:"tags" validate:"omitempty,max=10"`
}

type ConversationResponse struct {
	Id            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	ChatType      string    `json:"chat_type"`
	Status        string    `json:"status"`
	IsFavorite    bool      `json:"is_favorite"`
	Tags          []string  `json:"tags,omitempty"`
	MessageCount  int       `json:"message_count"`
	LastMessageAt time.Time `json:"last_message_at"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type ListConversationsQuery struct {
	ChatType  string `query:"chat_type"`
	Status    string `query:"status"`
	Favorites bool   `query:"favorites"`
	Search    string `query:"search"`
	Limit     int    `query:"limit"`
	Offset    int    `query:"offset"`
}

type MessageResponse struct {
	Id             uuid.UUID `json:"id"`
	ConversationId uuid.UUID `json:"conversation_id"`
	Sender         string    `json:"sender"`
	Content        string    `json:"content"`
	MessageType    string    `json:"message_type"`
	ReactionCount  int       `json:"reaction_count"`
	WordCount      int       `json:"word_count"`
	CreatedAt      time.Time `json:"created_at"`
}

type ListMessagesQuery struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

type AddReactionRequest struct {
	Kind      string `json:"kind" validate:"required,oneof=like love laugh insightful confused"`
	Intensity int    `json:"intensity" validate:"omitempty,min=1,max=5"`
	Feedback  string `json:"feedback" validate:"omitempty,max=500"`
}

type AddReactionResponse struct {
	Inserted      bool `json:"inserted"`
	ReactionCount int  `json:"reaction_count"`
}
