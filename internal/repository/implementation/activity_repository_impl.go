package implementation

import (
	"context"

	"tria-ai-be/internal/entity"
	"tria-ai-be/internal/mapper"
	"tria-ai-be/internal/model"
	"tria-ai-be/internal/repository/contract"
	"tria-ai-be/internal/repository/specification"

	"gorm.io/gorm"
)

type ActivityRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ActivityMapper
}

func NewActivityRepository(db *gorm.DB) contract.ActivityRepository {
	return &ActivityRepositoryImpl{
		db:     db,
		mapper: mapper.NewActivityMapper(),
	}
}

func (r *ActivityRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ActivityRepositoryImpl) Append(ctx context.Context, log *entity.ActivityLog) error {
	m := r.mapper.ToModel(log)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*log = *r.mapper.ToEntity(m)
	return nil
}

func (r *ActivityRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ActivityLog, error) {
	var models []*model.ActivityLog
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(models), nil
}

func (r *ActivityRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ActivityLog{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
