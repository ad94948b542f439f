package contract

import (
	"context"
	"time"

	"tria-ai-be/internal/entity"
	"tria-ai-be/internal/repository/specification"
)

type SessionRepository interface {
	Create(ctx context.Context, session *entity.UserSession) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.UserSession, error)

	// DeleteByToken is idempotent; deleting an absent token is not an error.
	DeleteByToken(ctx context.Context, token string) error

	// DeleteExpired removes every session with expires_at <= at and reports
	// how many rows went away.
	DeleteExpired(ctx context.Context, at time.Time) (int64, error)
}
