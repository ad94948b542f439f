package specification

import (
	"time"

	"gorm.io/gorm"
)

type ByToken struct {
	Token string
}

func (s ByToken) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("token = ?", s.Token)
}

// ExpiresBefore matches sessions whose expiry is at or before the instant.
type ExpiresBefore struct {
	At time.Time
}

func (s ExpiresBefore) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("expires_at <= ?", s.At)
}
