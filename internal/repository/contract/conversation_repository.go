package contract

import (
	"context"
	"time"

	"tria-ai-be/internal/entity"
	"tria-ai-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ConversationRepository interface {
	Create(ctx context.Context, conversation *entity.Conversation) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Conversation, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Conversation, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (int64, error)

	// MarkDeleted flips status to "deleted" without touching child messages.
	MarkDeleted(ctx context.Context, id uuid.UUID) (int64, error)

	// BumpOnMessage applies message_count = message_count + 1 server-side and
	// refreshes updated_at / last_message_at in a single statement.
	BumpOnMessage(ctx context.Context, id uuid.UUID, at time.Time) error

	// Aggregate message count across all non-deleted conversations, used by
	// the dashboard for average messages per conversation.
	SumMessageCounts(ctx context.Context) (int64, error)

	CreateAnalytics(ctx context.Context, analytics *entity.ConversationAnalytics) error
	BumpAnalytics(ctx context.Context, conversationId uuid.UUID, at time.Time) error
	FindAnalytics(ctx context.Context, conversationId uuid.UUID) (*entity.ConversationAnalytics, error)
}
