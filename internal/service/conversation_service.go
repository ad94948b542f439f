package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"tria-ai-be/internal/apperror"
	"tria-ai-be/internal/constant"
	"tria-ai-be/internal/dto"
	"tria-ai-be/internal/entity"
	"tria-ai-be/internal/pkg/logger"
	"tria-ai-be/internal/repository/specification"
	"tria-ai-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const defaultPageSize = 50

type IConversationService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateConversationRequest) (*dto.ConversationResponse, error)
	List(ctx context.Context, userId uuid.UUID, q *dto.ListConversationsQuery) ([]*dto.ConversationResponse, error)
	Get(ctx context.Context, userId, conversationId uuid.UUID) (*dto.ConversationResponse, error)
	Update(ctx context.Context, userId, conversationId uuid.UUID, req *dto.UpdateConversationRequest) error
	Delete(ctx context.Context, userId, conversationId uuid.UUID) error
	ListMessages(ctx context.Context, userId, conversationId uuid.UUID, q *dto.ListMessagesQuery) ([]*dto.MessageResponse, error)
	AddReaction(ctx context.Context, userId, messageId uuid.UUID, req *dto.AddReactionRequest) (*dto.AddReactionResponse, error)

	// SaveMessage persists one transcript entry and bumps the parent's
	// counters and analytics in the same transaction.
	SaveMessage(ctx context.Context, message *entity.Message) error
}

type conversationService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewConversationService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IConversationService {
	return &conversationService{
		uowFactory: uowFactory,
		logger:     log,
	}
}

func (s *conversationService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateConversationRequest) (*dto.ConversationResponse, error) {
	chatType := req.ChatType
	if chatType == "" {
		chatType = constant.ChatTypeTriple
	}

	var description *string
	if req.Description != "" {
		description = &req.Description
	}

	now := time.Now()
	conversation := &entity.Conversation{
		Id:            uuid.New(),
		UserId:        userId,
		Title:         req.Title,
		Description:   description,
		ChatType:      chatType,
		Status:        constant.ConversationStatusActive,
		Tags:          req.Tags,
		Metadata:      map[string]interface{}{},
		LastMessageAt: now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.NewStorage("conversation begin", err)
	}
	defer uow.Rollback()

	if err := uow.ConversationRepository().Create(ctx, conversation); err != nil {
		return nil, apperror.NewStorage("conversation create", err)
	}

	analytics := &entity.ConversationAnalytics{
		Id:             uuid.New(),
		ConversationId: conversation.Id,
		LastActivity:   now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uow.ConversationRepository().CreateAnalytics(ctx, analytics); err != nil {
		return nil, apperror.NewStorage("conversation analytics", err)
	}

	if err := uow.ActivityRepository().Append(ctx, &entity.ActivityLog{
		Id:           uuid.New(),
		UserId:       userId,
		Action:       constant.ActivityConversationCreated,
		ResourceType: "conversation",
		ResourceId:   &conversation.Id,
		CreatedAt:    now,
	}); err != nil {
		return nil, apperror.NewStorage("conversation activity", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, apperror.NewStorage("conversation commit", err)
	}

	return toConversationResponse(conversation), nil
}

func (s *conversationService) List(ctx context.Context, userId uuid.UUID, q *dto.ListConversationsQuery) ([]*dto.ConversationResponse, error) {
	specs := []specification.Specification{
		specification.OwnedBy{UserID: userId},
	}

	// Listings default to active; archived or deleted rows only show up when
	// that status is asked for explicitly.
	status := q.Status
	switch status {
	case constant.ConversationStatusActive,
		constant.ConversationStatusArchived,
		constant.ConversationStatusDeleted:
	default:
		status = constant.ConversationStatusActive
	}
	specs = append(specs, specification.ByStatus{Status: status})

	if q.ChatType != "" {
		specs = append(specs, specification.ByChatType{ChatType: q.ChatType})
	}
	if q.Favorites {
		specs = append(specs, specification.FavoritesOnly{})
	}
	if term := strings.TrimSpace(q.Search); term != "" {
		specs = append(specs, specification.TitleSearch{Term: term})
	}

	limit := q.Limit
	if limit <= 0 || limit > 200 {
		limit = defaultPageSize
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}

	specs = append(specs,
		specification.OrderBy{Field: "updated_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	conversations, err := uow.ConversationRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, apperror.NewStorage("conversation list", err)
	}

	responses := make([]*dto.ConversationResponse, 0, len(conversations))
	for _, c := range conversations {
		responses = append(responses, toConversationResponse(c))
	}
	return responses, nil
}

func (s *conversationService) Get(ctx context.Context, userId, conversationId uuid.UUID) (*dto.ConversationResponse, error) {
	conversation, err := s.findOwned(ctx, userId, conversationId)
	if err != nil {
		return nil, err
	}
	return toConversationResponse(conversation), nil
}

func (s *conversationService) Update(ctx context.Context, userId, conversationId uuid.UUID, req *dto.UpdateConversationRequest) error {
	if _, err := s.findOwned(ctx, userId, conversationId); err != nil {
		return err
	}

	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.IsFavorite != nil {
		fields["is_favorite"] = *req.IsFavorite
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.Tags != nil {
		b, _ := json.Marshal(req.Tags)
		fields["tags"] = datatypes.JSON(b)
	}
	if len(fields) == 0 {
		return nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := uow.ConversationRepository().UpdateFields(ctx, conversationId, fields); err != nil {
		return apperror.NewStorage("conversation update", err)
	}
	return nil
}

// Delete soft-deletes. The transcript stays in place; only the status flips.
func (s *conversationService) Delete(ctx context.Context, userId, conversationId uuid.UUID) error {
	if _, err := s.findOwned(ctx, userId, conversationId); err != nil {
		return err
	}

	// Status flip and activity append land together or not at all.
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return apperror.NewStorage("conversation delete begin", err)
	}
	defer uow.Rollback()

	affected, err := uow.ConversationRepository().MarkDeleted(ctx, conversationId)
	if err != nil {
		return apperror.NewStorage("conversation delete", err)
	}
	if affected == 0 {
		return apperror.NewNotFound("conversation", conversationId.String())
	}

	if err := uow.ActivityRepository().Append(ctx, &entity.ActivityLog{
		Id:           uuid.New(),
		UserId:       userId,
		Action:       constant.ActivityConversationDeleted,
		ResourceType: "conversation",
		ResourceId:   &conversationId,
		CreatedAt:    time.Now(),
	}); err != nil {
		return apperror.NewStorage("conversation delete activity", err)
	}

	if err := uow.Commit(); err != nil {
		return apperror.NewStorage("conversation delete commit", err)
	}
	return nil
}

// ListMessages pages over the transcript. The repository returns a window in
// created_at descending order; the page is reversed here so the client
// renders it chronologically. Offsets walk backwards in time.
func (s *conversationService) ListMessages(ctx context.Context, userId, conversationId uuid.UUID, q *dto.ListMessagesQuery) ([]*dto.MessageResponse, error) {
	if _, err := s.findOwned(ctx, userId, conversationId); err != nil {
		return nil, err
	}

	limit := q.Limit
	if limit <= 0 || limit > 200 {
		limit = defaultPageSize
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	messages, err := uow.MessageRepository().FindWindowDescending(ctx, conversationId, limit, offset, false)
	if err != nil {
		return nil, apperror.NewStorage("message list", err)
	}

	// Reverse into chronological order.
	responses := make([]*dto.MessageResponse, len(messages))
	for i, m := range messages {
		responses[len(messages)-1-i] = toMessageResponse(m)
	}
	return responses, nil
}

func (s *conversationService) AddReaction(ctx context.Context, userId, messageId uuid.UUID, req *dto.AddReactionRequest) (*dto.AddReactionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	message, err := uow.MessageRepository().FindOne(ctx, specification.ByID{ID: messageId})
	if err != nil {
		return nil, apperror.NewStorage("reaction lookup", err)
	}
	if message == nil {
		return nil, apperror.NewNotFound("message", messageId.String())
	}

	intensity := req.Intensity
	if intensity <= 0 {
		intensity = 1
	}
	var feedback *string
	if req.Feedback != "" {
		feedback = &req.Feedback
	}

	reaction := &entity.Reaction{
		Id:        uuid.New(),
		MessageId: messageId,
		UserId:    userId,
		Kind:      req.Kind,
		Intensity: intensity,
		Feedback:  feedback,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	inserted, err := uow.MessageRepository().UpsertReaction(ctx, reaction)
	if err != nil {
		return nil, apperror.NewStorage("reaction upsert", err)
	}

	// Re-read for the authoritative count; it only moved on the insert branch.
	updated, err := uow.MessageRepository().FindOne(ctx, specification.ByID{ID: messageId})
	if err != nil || updated == nil {
		updated = message
	}

	return &dto.AddReactionResponse{
		Inserted:      inserted,
		ReactionCount: updated.ReactionCount,
	}, nil
}

// SaveMessage wraps the insert and every derived counter bump in one
// transaction so a transcript row can never exist without its counters.
func (s *conversationService) SaveMessage(ctx context.Context, message *entity.Message) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	conversation, err := uow.ConversationRepository().FindOne(ctx, specification.ByID{ID: message.ConversationId})
	if err != nil {
		return apperror.NewStorage("save message lookup", err)
	}
	if conversation == nil || conversation.Status == constant.ConversationStatusDeleted {
		return apperror.NewNotFound("conversation", message.ConversationId.String())
	}

	if message.Id == uuid.Nil {
		message.Id = uuid.New()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}
	message.UpdatedAt = message.CreatedAt
	if message.MessageType == "" {
		message.MessageType = "text"
	}
	message.WordCount = countWords(message.Content)

	if err := uow.Begin(ctx); err != nil {
		return apperror.NewStorage("save message begin", err)
	}
	defer uow.Rollback()

	if err := uow.MessageRepository().Create(ctx, message); err != nil {
		return apperror.NewStorage("save message create", err)
	}

	if err := uow.ConversationRepository().BumpOnMessage(ctx, message.ConversationId, message.CreatedAt); err != nil {
		return apperror.NewStorage("save message bump", err)
	}

	if err := uow.ConversationRepository().BumpAnalytics(ctx, message.ConversationId, message.CreatedAt); err != nil {
		return apperror.NewStorage("save message analytics", err)
	}

	if message.Sender == constant.SenderUser && message.UserId != nil {
		if err := uow.ActivityRepository().Append(ctx, &entity.ActivityLog{
			Id:           uuid.New(),
			UserId:       *message.UserId,
			Action:       constant.ActivityMessageSent,
			ResourceType: "message",
			ResourceId:   &message.Id,
			CreatedAt:    message.CreatedAt,
		}); err != nil {
			return apperror.NewStorage("save message activity", err)
		}
	}

	return uow.Commit()
}

func (s *conversationService) findOwned(ctx context.Context, userId, conversationId uuid.UUID) (*entity.Conversation, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	conversation, err := uow.ConversationRepository().FindOne(ctx,
		specification.ByID{ID: conversationId},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, apperror.NewStorage("conversation lookup", err)
	}
	if conversation == nil || conversation.Status == constant.ConversationStatusDeleted {
		return nil, apperror.NewNotFound("conversation", conversationId.String())
	}
	return conversation, nil
}

// countWords counts whitespace-separated tokens.
func countWords(content string) int {
	return len(strings.Fields(content))
}

func toConversationResponse(c *entity.Conversation) *dto.ConversationResponse {
	res := &dto.ConversationResponse{
		Id:            c.Id,
		Title:         c.Title,
		ChatType:      c.ChatType,
		Status:        c.Status,
		IsFavorite:    c.IsFavorite,
		Tags:          c.Tags,
		MessageCount:  c.MessageCount,
		LastMessageAt: c.LastMessageAt,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
	if c.Description != nil {
		res.Description = *c.Description
	}
	return res
}

func toMessageResponse(m *entity.Message) *dto.MessageResponse {
	return &dto.MessageResponse{
		Id:             m.Id,
		ConversationId: m.ConversationId,
		Sender:         m.Sender,
		Content:        m.Content,
		MessageType:    m.MessageType,
		ReactionCount:  m.ReactionCount,
		WordCount:      m.WordCount,
		CreatedAt:      m.CreatedAt,
	}
}
