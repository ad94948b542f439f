package contract

import (
	"context"

	"tria-ai-be/internal/entity"
	"tria-ai-be/internal/repository/specification"

	"github.com/google/uuid"
)

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Message, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// FindWindowDescending fetches a limit/offset window over created_at
	// descending. Callers reverse the page to present chronological order;
	// offsets therefore walk backwards in time, page 2 being the next older
	// block rather than a forward continuation.
	FindWindowDescending(ctx context.Context, conversationId uuid.UUID, limit, offset int, includeDeleted bool) ([]*entity.Message, error)

	// FindUserHistoryDescending spans every non-deleted conversation the
	// user owns, newest first, optionally narrowed to one chat type.
	FindUserHistoryDescending(ctx context.Context, userId uuid.UUID, chatType string, limit int) ([]*entity.Message, error)

	// AverageWordCount over non-deleted messages authored by the user.
	AverageWordCount(ctx context.Context, userId uuid.UUID) (float64, error)

	// UpsertReaction updates intensity/feedback in place when a row for
	// (message, user, kind) exists; otherwise inserts and increments the
	// message's reaction_count server-side. Returns true on the insert branch.
	UpsertReaction(ctx context.Context, reaction *entity.Reaction) (bool, error)
	CountReactions(ctx context.Context) (int64, error)
}
