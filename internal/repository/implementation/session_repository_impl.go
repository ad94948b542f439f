package implementation

import (
	"context"
	"errors"
	"time"

	"tria-ai-be/internal/entity"
	"tria-ai-be/internal/mapper"
	"tria-ai-be/internal/model"
	"tria-ai-be/internal/repository/contract"
	"tria-ai-be/internal/repository/specification"

	"gorm.io/gorm"
)

type SessionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SessionMapper
}

func NewSessionRepository(db *gorm.DB) contract.SessionRepository {
	return &SessionRepositoryImpl{
		db:     db,
		mapper: mapper.NewSessionMapper(),
	}
}

func (r *SessionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *SessionRepositoryImpl) Create(ctx context.Context, session *entity.UserSession) error {
	m := r.mapper.ToModel(session)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*session = *r.mapper.ToEntity(m)
	return nil
}

func (r *SessionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.UserSession, error) {
	var m model.UserSession
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.ToEntity(&m), nil
}

func (r *SessionRepositoryImpl) DeleteByToken(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).
		Where("token = ?", token).
		Delete(&model.UserSession{}).Error
}

func (r *SessionRepositoryImpl) DeleteExpired(ctx context.Context, at time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at <= ?", at).
		Delete(&model.UserSession{})
	return result.RowsAffected, result.Error
}
