package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type User struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email         string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash  *string   `gorm:"type:varchar(255)"`
	DisplayName   *string   `gorm:"type:varchar(255)"`
	AvatarURL     *string   `gorm:"type:text"`
	Bio           *string   `gorm:"type:text"`
	Location      *string   `gorm:"type:varchar(255)"`
	Timezone      string    `gorm:"type:varchar(64);not null;default:'UTC'"`
	Language      string    `gorm:"type:varchar(16);not null;default:'en'"`
	EmailVerified bool      `gorm:"default:false"`
	IsPremium     bool      `gorm:"default:false"`
	LoginCount    int       `gorm:"default:0"`
	LastLoginAt   *time.Time
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

type UserPreferences struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	Theme     string         `gorm:"type:varchar(32);not null;default:'system'"`
	Settings  datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
}

func (UserPreferences) TableName() string {
	return "user_preferences"
}

type UserProvider struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId         uuid.UUID `gorm:"type:uuid;not null;index"`
	ProviderName   string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_provider_identity"`
	ProviderUserId string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_provider_identity"`
	AvatarURL      string    `gorm:"type:text"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

func (UserProvider) TableName() string {
	return "user_providers"
}
