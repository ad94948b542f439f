package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Message struct {
	Id              uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ConversationId  uuid.UUID      `gorm:"type:uuid;not null;index"`
	UserId          *uuid.UUID     `gorm:"type:uuid;index"`
	ParentMessageId *uuid.UUID     `gorm:"type:uuid"`
	Sender          string         `gorm:"type:varchar(32);not null"`
	Content         string         `gorm:"type:text;not null"`
	MessageType     string         `gorm:"type:varchar(32);not null;default:'text'"`
	Metadata        datatypes.JSON `gorm:"type:jsonb"`
	IsEdited        bool           `gorm:"default:false"`
	EditedAt        *time.Time
	IsDeleted       bool `gorm:"default:false"`
	DeletedAt       *time.Time
	ReactionCount   int       `gorm:"default:0"`
	WordCount       int       `gorm:"default:0"`
	Sentiment       *string   `gorm:"type:varchar(32)"`
	CreatedAt       time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

func (Message) TableName() string {
	return "messages"
}

type Reaction struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MessageId uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reaction_message_user_kind"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reaction_message_user_kind"`
	Kind      string    `gorm:"type:varchar(32);not null;uniqueIndex:idx_reaction_message_user_kind"`
	Intensity int       `gorm:"default:1"`
	Feedback  *string   `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Reaction) TableName() string {
	return "reactions"
}
