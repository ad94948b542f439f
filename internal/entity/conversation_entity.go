package entity

import (
	"time"

	"github.com/google/uuid"
)

type Conversation struct {
	Id            uuid.UUID
	UserId        uuid.UUID
	Title         string
	Description   *string
	ChatType      string
	Status        string
	IsFavorite    bool
	Tags          []string
	Metadata      map[string]interface{}
	MessageCount  int
	LastMessageAt time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type ConversationAnalytics struct {
	Id             uuid.UUID
	ConversationId uuid.UUID
	MessageCount   int
	LastActivity   time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
