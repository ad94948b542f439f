package entity

import (
	"time"

	"github.com/google/uuid"
)

type Message struct {
	Id              uuid.UUID
	ConversationId  uuid.UUID
	UserId          *uuid.UUID
	ParentMessageId *uuid.UUID
	Sender          string
	Content         string
	MessageType     string
	Metadata        map[string]interface{}
	IsEdited        bool
	EditedAt        *time.Time
	IsDeleted       bool
	DeletedAt       *time.Time
	ReactionCount   int
	WordCount       int
	Sentiment       *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Reaction struct {
	Id        uuid.UUID
	MessageId uuid.UUID
	UserId    uuid.UUID
	Kind      string
	Intensity int
	Feedback  *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
