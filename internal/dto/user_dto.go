package dto

import (
	"time"

	"github.com/google/uuid"
)

type ProfileResponse struct {
	Id            uuid.UUID  `json:"id"`
	Email         string     `json:"email"`
	DisplayName   string     `json:"display_name,omitempty"`
	AvatarURL     string     `json:"avatar_url,omitempty"`
	Bio           string     `json:"bio,omitempty"`
	Location      string     `json:"location,omitempty"`
	Timezone      string     `json:"timezone"`
	Language      string     `json:"language"`
	EmailVerified bool       `json:"email_verified"`
	IsPremium     bool       `json:"is_premium"`
	LoginCount    int        `json:"login_count"`
	LastLoginAt   *time.Time `json:"last_login_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name" validate:"omitempty,min=2,max=100"`
	AvatarURL   *string `json:"avatar_url" validate:"omitempty,url"`
	Bio         *string `json:"bio" validate:"omitempty,max=500"`
	Location    *string `json:"location" validate:"omitempty,max=100"`
	Timezone    *string `json:"timezone" validate:"omitempty,max=64"`
	Language    *string `json:"language" validate:"omitempty,max=16"`
}

type PreferencesResponse struct {
	Theme    string                 `json:"theme"`
	Settings map[string]interface{} `json:"settings"`
}

type UpdatePreferencesRequest struct {
	Theme    *string                `json:"theme" validate:"omitempty,oneof=light dark system"`
	Settings map[string]interface{} `json:"settings"`
}
