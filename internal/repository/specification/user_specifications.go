package specification

import (
	"time"

	"gorm.io/gorm"
)

// ByEmail matches the email column exactly (case-sensitive).
type ByEmail struct {
	Email string
}

func (s ByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("email = ?", s.Email)
}

// ActiveSince filters users who logged in within the trailing window.
type ActiveSince struct {
	Since time.Time
}

func (s ActiveSince) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("last_login_at >= ?", s.Since)
}

// PremiumOnly filters users with the premium flag set.
type PremiumOnly struct{}

func (s PremiumOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_premium = ?", true)
}
