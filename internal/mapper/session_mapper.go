package mapper

import (
	"tria-ai-be/internal/entity"
	"tria-ai-be/internal/model"
)

type SessionMapper struct{}

func NewSessionMapper() *SessionMapper {
	return &SessionMapper{}
}

func (m *SessionMapper) ToEntity(s *model.UserSession) *entity.UserSession {
	if s == nil {
		return nil
	}
	return &entity.UserSession{
		Id:        s.Id,
		UserId:    s.UserId,
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt,
		CreatedAt: s.CreatedAt,
	}
}

func (m *SessionMapper) ToModel(s *entity.UserSession) *model.UserSession {
	if s == nil {
		return nil
	}
	return &model.UserSession{
		Id:        s.Id,
		UserId:    s.UserId,
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt,
		CreatedAt: s.CreatedAt,
	}
}
