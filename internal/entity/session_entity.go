package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserSession struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// IsValid reports whether the session is usable at the given instant.
// Validation must not rely on the periodic cleanup having run.
func (s *UserSession) IsValid(now time.Time) bool {
	return now.Before(s.ExpiresAt)
}
