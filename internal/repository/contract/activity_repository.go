package contract

import (
	"context"

	"tria-ai-be/internal/entity"
	"tria-ai-be/internal/repository/specification"
)

// ActivityRepository is append-only. There is deliberately no update or
// delete operation.
type ActivityRepository interface {
	Append(ctx context.Context, log *entity.ActivityLog) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ActivityLog, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
