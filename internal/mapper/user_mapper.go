package mapper

import (
	"tria-ai-be/internal/entity"
	"tria-ai-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}
	return &entity.User{
		Id:            u.Id,
		Email:         u.Email,
		PasswordHash:  u.PasswordHash,
		DisplayName:   u.DisplayName,
		AvatarURL:     u.AvatarURL,
		Bio:           u.Bio,
		Location:      u.Location,
		Timezone:      u.Timezone,
		Language:      u.Language,
		EmailVerified: u.EmailVerified,
		IsPremium:     u.IsPremium,
		LoginCount:    u.LoginCount,
		LastLoginAt:   u.LastLoginAt,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}
	return &model.User{
		Id:            u.Id,
		Email:         u.Email,
		PasswordHash:  u.PasswordHash,
		DisplayName:   u.DisplayName,
		AvatarURL:     u.AvatarURL,
		Bio:           u.Bio,
		Location:      u.Location,
		Timezone:      u.Timezone,
		Language:      u.Language,
		EmailVerified: u.EmailVerified,
		IsPremium:     u.IsPremium,
		LoginCount:    u.LoginCount,
		LastLoginAt:   u.LastLoginAt,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func (m *UserMapper) ToEntities(users []*model.User) []*entity.User {
	entities := make([]*entity.User, len(users))
	for i, u := range users {
		entities[i] = m.ToEntity(u)
	}
	return entities
}

func (m *UserMapper) PreferencesToEntity(p *model.UserPreferences) *entity.UserPreferences {
	if p == nil {
		return nil
	}
	return &entity.UserPreferences{
		Id:        p.Id,
		UserId:    p.UserId,
		Theme:     p.Theme,
		Settings:  toJSONMap(p.Settings),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (m *UserMapper) PreferencesToModel(p *entity.UserPreferences) *model.UserPreferences {
	if p == nil {
		return nil
	}
	return &model.UserPreferences{
		Id:        p.Id,
		UserId:    p.UserId,
		Theme:     p.Theme,
		Settings:  fromJSONMap(p.Settings),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (m *UserMapper) ProviderToEntity(p *model.UserProvider) *entity.UserProvider {
	if p == nil {
		return nil
	}
	return &entity.UserProvider{
		Id:             p.Id,
		UserId:         p.UserId,
		ProviderName:   p.ProviderName,
		ProviderUserId: p.ProviderUserId,
		AvatarURL:      p.AvatarURL,
		CreatedAt:      p.CreatedAt,
	}
}

func (m *UserMapper) ProviderToModel(p *entity.UserProvider) *model.UserProvider {
	if p == nil {
		return nil
	}
	return &model.UserProvider{
		Id:             p.Id,
		UserId:         p.UserId,
		ProviderName:   p.ProviderName,
		ProviderUserId: p.ProviderUserId,
		AvatarURL:      p.AvatarURL,
		CreatedAt:      p.CreatedAt,
	}
}
