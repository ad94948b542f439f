package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id            uuid.UUID
	Email         string
	PasswordHash  *string
	DisplayName   *string
	AvatarURL     *string
	Bio           *string
	Location      *string
	Timezone      string
	Language      string
	EmailVerified bool
	IsPremium     bool
	LoginCount    int
	LastLoginAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type UserPreferences struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Theme     string
	Settings  map[string]interface{}
	CreatedAt time.Time
	UpdatedAt time.Time
}

type UserProvider struct {
	Id             uuid.UUID
	UserId         uuid.UUID
	ProviderName   string
	ProviderUserId string
	AvatarURL      string
	CreatedAt      time.Time
}
