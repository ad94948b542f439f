package mapper

import (
	"tria-ai-be/internal/entity"
	"tria-ai-be/internal/model"
)

type ConversationMapper struct{}

func NewConversationMapper() *ConversationMapper {
	return &ConversationMapper{}
}

func (m *ConversationMapper) ToEntity(c *model.Conversation) *entity.Conversation {
	if c == nil {
		return nil
	}
	return &entity.Conversation{
		Id:            c.Id,
		UserId:        c.UserId,
		Title:         c.Title,
		Description:   c.Description,
		ChatType:      c.ChatType,
		Status:        c.Status,
		IsFavorite:    c.IsFavorite,
		Tags:          toStringSlice(c.Tags),
		Metadata:      toJSONMap(c.Metadata),
		MessageCount:  c.MessageCount,
		LastMessageAt: c.LastMessageAt,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func (m *ConversationMapper) ToModel(c *entity.Conversation) *model.Conversation {
	if c == nil {
		return nil
	}
	return &model.Conversation{
		Id:            c.Id,
		UserId:        c.UserId,
		Title:         c.Title,
		Description:   c.Description,
		ChatType:      c.ChatType,
		Status:        c.Status,
		IsFavorite:    c.IsFavorite,
		Tags:          fromStringSlice(c.Tags),
		Metadata:      fromJSONMap(c.Metadata),
		MessageCount:  c.MessageCount,
		LastMessageAt: c.LastMessageAt,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func (m *ConversationMapper) ToEntities(conversations []*model.Conversation) []*entity.Conversation {
	entities := make([]*entity.Conversation, len(conversations))
	for i, c := range conversations {
		entities[i] = m.ToEntity(c)
	}
	return entities
}

func (m *ConversationMapper) AnalyticsToEntity(a *model.ConversationAnalytics) *entity.ConversationAnalytics {
	if a == nil {
		return nil
	}
	return &entity.ConversationAnalytics{
		Id:             a.Id,
		ConversationId: a.ConversationId,
		MessageCount:   a.MessageCount,
		LastActivity:   a.LastActivity,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func (m *ConversationMapper) AnalyticsToModel(a *entity.ConversationAnalytics) *model.ConversationAnalytics {
	if a == nil {
		return nil
	}
	return &model.ConversationAnalytics{
		Id:             a.Id,
		ConversationId: a.ConversationId,
		MessageCount:   a.MessageCount,
		LastActivity:   a.LastActivity,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}
