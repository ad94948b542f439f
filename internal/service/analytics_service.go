package service

import (
	"context"
	"time"

	"tria-ai-be/internal/apperror"
	"tria-ai-be/internal/constant"
	"tria-ai-be/internal/dto"
	"tria-ai-be/internal/pkg/logger"
	"tria-ai-be/internal/repository/specification"
	"tria-ai-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IAnalyticsService interface {
	// GetDatabaseStats backs the dashboard header. Any counter whose query
	// fails degrades to zero rather than failing the whole response.
	GetDatabaseStats(ctx context.Context) (*dto.DatabaseStatsResponse, error)

	GetUserAnalytics(ctx context.Context, userId uuid.UUID) (*dto.UserAnalyticsResponse, error)
	GetRecentActivity(ctx context.Context, userId uuid.UUID, limit int) ([]*dto.ActivityLogResponse, error)
}

type analyticsService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewAnalyticsService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IAnalyticsService {
	return &analyticsService{
		uowFactory: uowFactory,
		logger:     log,
	}
}

func (s *analyticsService) GetDatabaseStats(ctx context.Context) (*dto.DatabaseStatsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	stats := &dto.DatabaseStatsResponse{}

	if n, err := uow.UserRepository().Count(ctx); err != nil {
		s.logger.Warn("AnalyticsService", "User count failed, reporting zero", map[string]interface{}{"error": err.Error()})
	} else {
		stats.TotalUsers = n
	}

	// Active means a login within the trailing 30 days.
	if n, err := uow.UserRepository().Count(ctx, specification.ActiveSince{Since: time.Now().AddDate(0, 0, -30)}); err != nil {
		s.logger.Warn("AnalyticsService", "Active user count failed, reporting zero", map[string]interface{}{"error": err.Error()})
	} else {
		stats.ActiveUsers = n
	}

	if n, err := uow.UserRepository().Count(ctx, specification.PremiumOnly{}); err != nil {
		s.logger.Warn("AnalyticsService", "Premium user count failed, reporting zero", map[string]interface{}{"error": err.Error()})
	} else {
		stats.PremiumUsers = n
	}

	if n, err := uow.ConversationRepository().Count(ctx, specification.ByStatus{Status: constant.ConversationStatusActive}); err != nil {
		s.logger.Warn("AnalyticsService", "Conversation count failed, reporting zero", map[string]interface{}{"error": err.Error()})
	} else {
		stats.TotalConversations = n
	}

	if sum, err := uow.ConversationRepository().SumMessageCounts(ctx); err != nil {
		s.logger.Warn("AnalyticsService", "Message count sum failed, reporting zero", map[string]interface{}{"error": err.Error()})
	} else if stats.TotalConversations > 0 {
		stats.AverageMessagesPerConversation = float64(sum) / float64(stats.TotalConversations)
	}

	if n, err := uow.MessageRepository().Count(ctx, specification.NotDeletedMessages{}); err != nil {
		s.logger.Warn("AnalyticsService", "Message count failed, reporting zero", map[string]interface{}{"error": err.Error()})
	} else {
		stats.TotalMessages = n
	}

	if n, err := uow.MessageRepository().CountReactions(ctx); err != nil {
		s.logger.Warn("AnalyticsService", "Reaction count failed, reporting zero", map[string]interface{}{"error": err.Error()})
	} else {
		stats.TotalReactions = n
	}

	return stats, nil
}

func (s *analyticsService) GetUserAnalytics(ctx context.Context, userId uuid.UUID) (*dto.UserAnalyticsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, apperror.NewStorage("analytics user lookup", err)
	}
	if user == nil {
		return nil, apperror.NewNotFound("user", userId.String())
	}

	res := &dto.UserAnalyticsResponse{
		LoginCount:     user.LoginCount,
		LastLoginAt:    user.LastLoginAt,
		MemberSince:    user.CreatedAt,
		FavoriteTopics: []string{},
	}

	if n, err := uow.ConversationRepository().Count(ctx,
		specification.OwnedBy{UserID: userId},
		specification.ByStatus{Status: constant.ConversationStatusActive},
	); err != nil {
		s.logger.Warn("AnalyticsService", "User conversation count failed", map[string]interface{}{"error": err.Error()})
	} else {
		res.ConversationCount = n
	}

	if n, err := uow.MessageRepository().Count(ctx,
		specification.OwnedBy{UserID: userId},
		specification.NotDeletedMessages{},
	); err != nil {
		s.logger.Warn("AnalyticsService", "User message count failed", map[string]interface{}{"error": err.Error()})
	} else {
		res.MessageCount = n
	}

	if avg, err := uow.MessageRepository().AverageWordCount(ctx, userId); err != nil {
		s.logger.Warn("AnalyticsService", "Average word count failed", map[string]interface{}{"error": err.Error()})
	} else {
		res.AverageWordsPerReply = avg
	}

	res.Achievements = achievementCount(res.ConversationCount, res.MessageCount, user.LoginCount)

	return res, nil
}

// Badge milestones, 20 in total. The dashboard renders achievement progress
// against that fixed scale.
var (
	conversationMilestones = []int64{1, 5, 10, 25, 50}
	messageMilestones      = []int64{1, 10, 50, 100, 250, 500, 1000}
	loginMilestones        = []int64{1, 5, 10, 25, 50, 100, 250, 500}
)

func achievementCount(conversations, messages int64, logins int) int {
	count := 0
	for _, m := range conversationMilestones {
		if conversations >= m {
			count++
		}
	}
	for _, m := range messageMilestones {
		if messages >= m {
			count++
		}
	}
	for _, m := range loginMilestones {
		if int64(logins) >= m {
			count++
		}
	}
	return count
}

func (s *analyticsService) GetRecentActivity(ctx context.Context, userId uuid.UUID, limit int) ([]*dto.ActivityLogResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	logs, err := uow.ActivityRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: 0},
	)
	if err != nil {
		return nil, apperror.NewStorage("activity list", err)
	}

	responses := make([]*dto.ActivityLogResponse, 0, len(logs))
	for _, l := range logs {
		res := &dto.ActivityLogResponse{
			Action:       l.Action,
			ResourceType: l.ResourceType,
			Details:      l.Details,
			CreatedAt:    l.CreatedAt,
		}
		if l.ResourceId != nil {
			res.ResourceId = l.ResourceId.String()
		}
		responses = append(responses, res)
	}
	return responses, nil
}
