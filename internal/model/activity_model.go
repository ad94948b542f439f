package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ActivityLog rows are append-only. No update or delete path exists.
type ActivityLog struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId       uuid.UUID      `gorm:"type:uuid;not null;index"`
	Action       string         `gorm:"type:varchar(64);not null;index"`
	ResourceType string         `gorm:"type:varchar(64);not null"`
	ResourceId   *uuid.UUID     `gorm:"type:uuid"`
	Details      datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt    time.Time      `gorm:"autoCreateTime;index"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}
