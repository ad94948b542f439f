package contract

import (
	"context"

	"tria-ai-be/internal/entity"
	"tria-ai-be/internal/repository/specification"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// UpdateFields applies a partial update and bumps updated_at.
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (int64, error)

	// RecordLogin increments login_count server-side and stamps last_login_at.
	RecordLogin(ctx context.Context, id uuid.UUID) error

	CreatePreferences(ctx context.Context, prefs *entity.UserPreferences) error
	FindPreferences(ctx context.Context, userId uuid.UUID) (*entity.UserPreferences, error)
	UpdatePreferences(ctx context.Context, prefs *entity.UserPreferences) error

	SaveProvider(ctx context.Context, provider *entity.UserProvider) error
}
