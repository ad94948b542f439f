package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Conversation struct {
	Id            uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId        uuid.UUID      `gorm:"type:uuid;not null;index"`
	Title         string         `gorm:"type:varchar(255);not null"`
	Description   *string        `gorm:"type:text"`
	ChatType      string         `gorm:"type:varchar(32);not null;index"`
	Status        string         `gorm:"type:varchar(32);not null;default:'active';index"`
	IsFavorite    bool           `gorm:"default:false"`
	Tags          datatypes.JSON `gorm:"type:jsonb"`
	Metadata      datatypes.JSON `gorm:"type:jsonb"`
	MessageCount  int            `gorm:"default:0"`
	LastMessageAt time.Time      `gorm:"not null"`
	CreatedAt     time.Time      `gorm:"autoCreateTime"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime;index"`
}

func (Conversation) TableName() string {
	return "conversations"
}

// ConversationAnalytics holds the per-conversation aggregate row provisioned
// together with its conversation.
type ConversationAnalytics struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ConversationId uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	MessageCount   int       `gorm:"default:0"`
	LastActivity   time.Time `gorm:"not null"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func (ConversationAnalytics) TableName() string {
	return "conversation_analytics"
}
