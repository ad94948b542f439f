package implementation

import (
	"context"
	"errors"
	"time"

	"tria-ai-be/internal/apperror"
	"tria-ai-be/internal/entity"
	"tria-ai-be/internal/mapper"
	"tria-ai-be/internal/model"
	"tria-ai-be/internal/repository/contract"
	"tria-ai-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UserMapper
}

func NewUserRepository(db *gorm.DB) contract.UserRepository {
	return &UserRepositoryImpl{
		db:     db,
		mapper: mapper.NewUserMapper(),
	}
}

func (r *UserRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *UserRepositoryImpl) Create(ctx context.Context, user *entity.User) error {
	modelUser := r.mapper.ToModel(user)
	if err := r.db.WithContext(ctx).Create(modelUser).Error; err != nil {
		// The service checks for an existing email first, but two concurrent
		// registrations can still race to the unique index.
		if isUniqueViolation(err) {
			return apperror.NewConflict("user", "email already registered")
		}
		return err
	}
	*user = *r.mapper.ToEntity(modelUser)
	return nil
}

func (r *UserRepositoryImpl) Update(ctx context.Context, user *entity.User) error {
	modelUser := r.mapper.ToModel(user)
	if err := r.db.WithContext(ctx).Save(modelUser).Error; err != nil {
		return err
	}
	*user = *r.mapper.ToEntity(modelUser)
	return nil
}

func (r *UserRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	var modelUser model.User
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&modelUser).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.ToEntity(&modelUser), nil
}

func (r *UserRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	var modelUsers []*model.User
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&modelUsers).Error; err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(modelUsers), nil
}

func (r *UserRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.User{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *UserRepositoryImpl) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (int64, error) {
	fields["updated_at"] = time.Now()
	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Updates(fields)
	return result.RowsAffected, result.Error
}

func (r *UserRepositoryImpl) RecordLogin(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"login_count":   gorm.Expr("login_count + 1"),
			"last_login_at": now,
			"updated_at":    now,
		}).Error
}

// Preferences

func (r *UserRepositoryImpl) CreatePreferences(ctx context.Context, prefs *entity.UserPreferences) error {
	m := r.mapper.PreferencesToModel(prefs)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*prefs = *r.mapper.PreferencesToEntity(m)
	return nil
}

func (r *UserRepositoryImpl) FindPreferences(ctx context.Context, userId uuid.UUID) (*entity.UserPreferences, error) {
	var m model.UserPreferences
	if err := r.db.WithContext(ctx).Where("user_id = ?", userId).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.PreferencesToEntity(&m), nil
}

func (r *UserRepositoryImpl) UpdatePreferences(ctx context.Context, prefs *entity.UserPreferences) error {
	m := r.mapper.PreferencesToModel(prefs)
	return r.db.WithContext(ctx).Model(&model.UserPreferences{}).
		Where("user_id = ?", prefs.UserId).
		Updates(map[string]interface{}{
			"theme":      m.Theme,
			"settings":   m.Settings,
			"updated_at": time.Now(),
		}).Error
}

func (r *UserRepositoryImpl) SaveProvider(ctx context.Context, provider *entity.UserProvider) error {
	m := r.mapper.ProviderToModel(provider)
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO user_providers (id, user_id, provider_name, provider_user_id, avatar_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (provider_name, provider_user_id)
		DO UPDATE SET avatar_url = EXCLUDED.avatar_url
	`, m.Id, m.UserId, m.ProviderName, m.ProviderUserId, m.AvatarURL, m.CreatedAt).Error
}
