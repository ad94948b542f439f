package implementation

import (
	"context"
	"errors"

	"tria-ai-be/internal/apperror"
	"tria-ai-be/internal/entity"
	"tria-ai-be/internal/mapper"
	"tria-ai-be/internal/model"
	"tria-ai-be/internal/repository/contract"
	"tria-ai-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MessageMapper
}

func NewMessageRepository(db *gorm.DB) contract.MessageRepository {
	return &MessageRepositoryImpl{
		db:     db,
		mapper: mapper.NewMessageMapper(),
	}
}

func (r *MessageRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *MessageRepositoryImpl) Create(ctx context.Context, message *entity.Message) error {
	m := r.mapper.ToModel(message)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if isForeignKeyViolation(err) {
			return apperror.NewNotFound("conversation", message.ConversationId.String())
		}
		return err
	}
	*message = *r.mapper.ToEntity(m)
	return nil
}

func (r *MessageRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Message, error) {
	var m model.Message
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.ToEntity(&m), nil
}

func (r *MessageRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error) {
	var models []*model.Message
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(models), nil
}

func (r *MessageRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Message{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindWindowDescending keeps the historical windowing contract: the page is
// selected over created_at DESC, so offset N skips the N newest rows. The
// caller reverses the page into chronological order before returning it.
func (r *MessageRepositoryImpl) FindWindowDescending(ctx context.Context, conversationId uuid.UUID, limit, offset int, includeDeleted bool) ([]*entity.Message, error) {
	query := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationId)
	if !includeDeleted {
		query = query.Where("is_deleted = ?", false)
	}

	var models []*model.Message
	err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(models), nil
}

func (r *MessageRepositoryImpl) FindUserHistoryDescending(ctx context.Context, userId uuid.UUID, chatType string, limit int) ([]*entity.Message, error) {
	query := r.db.WithContext(ctx).Model(&model.Message{}).
		Joins("JOIN conversations ON conversations.id = messages.conversation_id").
		Where("conversations.user_id = ?", userId).
		Where("conversations.status <> ?", "deleted").
		Where("messages.is_deleted = ?", false)
	if chatType != "" {
		query = query.Where("conversations.chat_type = ?", chatType)
	}

	var models []*model.Message
	err := query.
		Order("messages.created_at DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(models), nil
}

func (r *MessageRepositoryImpl) AverageWordCount(ctx context.Context, userId uuid.UUID) (float64, error) {
	var avg *float64
	err := r.db.WithContext(ctx).Model(&model.Message{}).
		Where("user_id = ? AND is_deleted = ?", userId, false).
		Select("AVG(word_count)").
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}

// UpsertReaction relies on the (message_id, user_id, kind) unique index. The
// reaction counter moves only when a new row appears, so re-submitting the
// same kind updates intensity without double counting.
func (r *MessageRepositoryImpl) UpsertReaction(ctx context.Context, reaction *entity.Reaction) (bool, error) {
	var existing model.Reaction
	err := r.db.WithContext(ctx).
		Where("message_id = ? AND user_id = ? AND kind = ?", reaction.MessageId, reaction.UserId, reaction.Kind).
		First(&existing).Error

	if err == nil {
		updateErr := r.db.WithContext(ctx).Model(&model.Reaction{}).
			Where("id = ?", existing.Id).
			Updates(map[string]interface{}{
				"intensity": reaction.Intensity,
				"feedback":  reaction.Feedback,
			}).Error
		if updateErr != nil {
			return false, updateErr
		}
		reaction.Id = existing.Id
		reaction.CreatedAt = existing.CreatedAt
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	m := r.mapper.ReactionToModel(reaction)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		// Lost a race with an identical reaction; report the update branch so
		// the counter is not bumped twice.
		if isUniqueViolation(err) {
			return false, nil
		}
		return false, err
	}
	*reaction = *r.mapper.ReactionToEntity(m)

	err = r.db.WithContext(ctx).Model(&model.Message{}).
		Where("id = ?", reaction.MessageId).
		Update("reaction_count", gorm.Expr("reaction_count + 1")).Error
	if err != nil {
		return true, err
	}
	return true, nil
}

func (r *MessageRepositoryImpl) CountReactions(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Reaction{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
