package entity

import (
	"time"

	"github.com/google/uuid"
)

type ActivityLog struct {
	Id           uuid.UUID
	UserId       uuid.UUID
	Action       string
	ResourceType string
	ResourceId   *uuid.UUID
	Details      map[string]interface{}
	CreatedAt    time.Time
}
