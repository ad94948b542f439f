package implementation

import (
	"context"
	"errors"
	"time"

	"tria-ai-be/internal/constant"
	"tria-ai-be/internal/entity"
	"tria-ai-be/internal/mapper"
	"tria-ai-be/internal/model"
	"tria-ai-be/internal/repository/contract"
	"tria-ai-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ConversationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ConversationMapper
}

func NewConversationRepository(db *gorm.DB) contract.ConversationRepository {
	return &ConversationRepositoryImpl{
		db:     db,
		mapper: mapper.NewConversationMapper(),
	}
}

func (r *ConversationRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ConversationRepositoryImpl) Create(ctx context.Context, conversation *entity.Conversation) error {
	m := r.mapper.ToModel(conversation)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*conversation = *r.mapper.ToEntity(m)
	return nil
}

func (r *ConversationRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Conversation, error) {
	var m model.Conversation
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.ToEntity(&m), nil
}

func (r *ConversationRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Conversation, error) {
	var models []*model.Conversation
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(models), nil
}

func (r *ConversationRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Conversation{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ConversationRepositoryImpl) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (int64, error) {
	fields["updated_at"] = time.Now()
	result := r.db.WithContext(ctx).Model(&model.Conversation{}).
		Where("id = ?", id).
		Updates(fields)
	return result.RowsAffected, result.Error
}

func (r *ConversationRepositoryImpl) MarkDeleted(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.Conversation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     constant.ConversationStatusDeleted,
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}

// BumpOnMessage uses a server-side increment so concurrent inserts into the
// same conversation never lose a count.
func (r *ConversationRepositoryImpl) BumpOnMessage(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).Model(&model.Conversation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"message_count":   gorm.Expr("message_count + 1"),
			"last_message_at": at,
			"updated_at":      at,
		}).Error
}

func (r *ConversationRepositoryImpl) SumMessageCounts(ctx context.Context) (int64, error) {
	var total *int64
	err := r.db.WithContext(ctx).Model(&model.Conversation{}).
		Where("status <> ?", constant.ConversationStatusDeleted).
		Select("SUM(message_count)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

// Analytics

func (r *ConversationRepositoryImpl) CreateAnalytics(ctx context.Context, analytics *entity.ConversationAnalytics) error {
	m := r.mapper.AnalyticsToModel(analytics)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*analytics = *r.mapper.AnalyticsToEntity(m)
	return nil
}

func (r *ConversationRepositoryImpl) BumpAnalytics(ctx context.Context, conversationId uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).Model(&model.ConversationAnalytics{}).
		Where("conversation_id = ?", conversationId).
		Updates(map[string]interface{}{
			"message_count": gorm.Expr("message_count + 1"),
			"last_activity": at,
			"updated_at":    at,
		}).Error
}

func (r *ConversationRepositoryImpl) FindAnalytics(ctx context.Context, conversationId uuid.UUID) (*entity.ConversationAnalytics, error) {
	var m model.ConversationAnalytics
	if err := r.db.WithContext(ctx).Where("conversation_id = ?", conversationId).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.AnalyticsToEntity(&m), nil
}
