package mapper

import (
	"tria-ai-be/internal/entity"
	"tria-ai-be/internal/model"
)

type MessageMapper struct{}

func NewMessageMapper() *MessageMapper {
	return &MessageMapper{}
}

func (m *MessageMapper) ToEntity(msg *model.Message) *entity.Message {
	if msg == nil {
		return nil
	}
	return &entity.Message{
		Id:              msg.Id,
		ConversationId:  msg.ConversationId,
		UserId:          msg.UserId,
		ParentMessageId: msg.ParentMessageId,
		Sender:          msg.Sender,
		Content:         msg.Content,
		MessageType:     msg.MessageType,
		Metadata:        toJSONMap(msg.Metadata),
		IsEdited:        msg.IsEdited,
		EditedAt:        msg.EditedAt,
		IsDeleted:       msg.IsDeleted,
		DeletedAt:       msg.DeletedAt,
		ReactionCount:   msg.ReactionCount,
		WordCount:       msg.WordCount,
		Sentiment:       msg.Sentiment,
		CreatedAt:       msg.CreatedAt,
		UpdatedAt:       msg.UpdatedAt,
	}
}

func (m *MessageMapper) ToModel(msg *entity.Message) *model.Message {
	if msg == nil {
		return nil
	}
	return &model.Message{
		Id:              msg.Id,
		ConversationId:  msg.ConversationId,
		UserId:          msg.UserId,
		ParentMessageId: msg.ParentMessageId,
		Sender:          msg.Sender,
		Content:         msg.Content,
		MessageType:     msg.MessageType,
		Metadata:        fromJSONMap(msg.Metadata),
		IsEdited:        msg.IsEdited,
		EditedAt:        msg.EditedAt,
		IsDeleted:       msg.IsDeleted,
		DeletedAt:       msg.DeletedAt,
		ReactionCount:   msg.ReactionCount,
		WordCount:       msg.WordCount,
		Sentiment:       msg.Sentiment,
		CreatedAt:       msg.CreatedAt,
		UpdatedAt:       msg.UpdatedAt,
	}
}

func (m *MessageMapper) ToEntities(messages []*model.Message) []*entity.Message {
	entities := make([]*entity.Message, len(messages))
	for i, msg := range messages {
		entities[i] = m.ToEntity(msg)
	}
	return entities
}

func (m *MessageMapper) ReactionToEntity(r *model.Reaction) *entity.Reaction {
	if r == nil {
		return nil
	}
	return &entity.Reaction{
		Id:        r.Id,
		MessageId: r.MessageId,
		UserId:    r.UserId,
		Kind:      r.Kind,
		Intensity: r.Intensity,
		Feedback:  r.Feedback,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func (m *MessageMapper) ReactionToModel(r *entity.Reaction) *model.Reaction {
	if r == nil {
		return nil
	}
	return &model.Reaction{
		Id:        r.Id,
		MessageId: r.MessageId,
		UserId:    r.UserId,
		Kind:      r.Kind,
		Intensity: r.Intensity,
		Feedback:  r.Feedback,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
