package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"tria-ai-be/internal/apperror"
	"tria-ai-be/internal/constant"
	"tria-ai-be/internal/dto"
	"tria-ai-be/internal/entity"
	"tria-ai-be/internal/pkg/logger"
	"tria-ai-be/internal/repository/memory"
	"tria-ai-be/internal/repository/unitofwork"
	"tria-ai-be/pkg/llm"
	"tria-ai-be/pkg/store"

	"github.com/google/uuid"
)

type IChatService interface {
	// SendMessage runs one full turn: persist the user message, collect a
	// reply from each persona in order, persist both, and return the trio.
	SendMessage(ctx context.Context, userId uuid.UUID, req *dto.SendMessageRequest) (*dto.TurnResponse, error)

	// SendAnonymousMessage runs a turn for a sessionless visitor. Nothing is
	// persisted; the transcript lives entirely with the client.
	SendAnonymousMessage(ctx context.Context, req *dto.AnonymousTurnRequest) (*dto.AnonymousTurnResponse, error)

	// GetHistory returns the user's most recent messages across all of their
	// conversations, chronological, optionally narrowed to one chat type.
	GetHistory(ctx context.Context, userId uuid.UUID, q *dto.ChatHistoryQuery) ([]*dto.MessageResponse, error)

	ListPersonas() []dto.PersonaDTO
}

type chatService struct {
	uowFactory          unitofwork.RepositoryFactory
	conversationService IConversationService
	turnStates          *memory.TurnStateRepository
	llmProvider         llm.LLMProvider
	publisherService    IPublisherService
	logger              logger.ILogger

	// pacingDelay separates the first persona's reply from the second
	// persona's request. Overridable in tests.
	pacingDelay time.Duration
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	conversationService IConversationService,
	turnStates *memory.TurnStateRepository,
	llmProvider llm.LLMProvider,
	publisherService IPublisherService,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:          uowFactory,
		conversationService: conversationService,
		turnStates:          turnStates,
		llmProvider:         llmProvider,
		publisherService:    publisherService,
		logger:              log,
		pacingDelay:         constant.PersonaPacingDelay,
	}
}

func (s *chatService) ListPersonas() []dto.PersonaDTO {
	keys := []constant.PersonaKey{constant.PersonaRam, constant.PersonaLaxman}
	personas := make([]dto.PersonaDTO, 0, len(keys))
	for _, key := range keys {
		p := constant.PersonaFor(key)
		personas = append(personas, dto.PersonaDTO{
			Key:     string(p.Key),
			Label:   p.Label,
			Tagline: p.Tagline,
		})
	}
	return personas
}

func (s *chatService) SendMessage(ctx context.Context, userId uuid.UUID, req *dto.SendMessageRequest) (*dto.TurnResponse, error) {
	// Re-entrancy guard: one turn per conversation at a time. Losing the
	// race is a rejection, not a queue.
	if !s.turnStates.TryAcquire(req.ConversationId.String(), userId.String(), req.Content) {
		return nil, apperror.NewConflict("conversation", "a turn is already in progress")
	}
	defer s.turnStates.Release(req.ConversationId.String())

	// 1. Persist the user message first so it survives any downstream failure.
	userMessage := &entity.Message{
		ConversationId: req.ConversationId,
		UserId:         &userId,
		Sender:         constant.SenderUser,
		Content:        req.Content,
	}
	if err := s.conversationService.SaveMessage(ctx, userMessage); err != nil {
		return nil, err
	}
	s.publish(ctx, req.ConversationId.String(), "message", constant.SenderUser, userMessage.Content)

	// 2. Read the trailing context window, newest last.
	window, err := s.contextWindow(ctx, req.ConversationId)
	if err != nil {
		s.logger.Warn("ChatService", "Context window read failed, continuing with empty context", map[string]interface{}{"error": err.Error()})
		window = nil
	}

	// 3. Run both personas.
	ramReply, laxmanReply, err := s.executeTurn(ctx, req.ConversationId.String(), window)
	if err != nil {
		return nil, err
	}

	// 4. Persist the replies in speaking order.
	ramMessage := &entity.Message{
		ConversationId:  req.ConversationId,
		ParentMessageId: &userMessage.Id,
		Sender:          constant.SenderRam,
		Content:         ramReply,
	}
	if err := s.conversationService.SaveMessage(ctx, ramMessage); err != nil {
		return nil, err
	}
	s.publish(ctx, req.ConversationId.String(), "message", constant.SenderRam, ramReply)

	laxmanMessage := &entity.Message{
		ConversationId:  req.ConversationId,
		ParentMessageId: &userMessage.Id,
		Sender:          constant.SenderLaxman,
		Content:         laxmanReply,
	}
	if err := s.conversationService.SaveMessage(ctx, laxmanMessage); err != nil {
		return nil, err
	}
	s.publish(ctx, req.ConversationId.String(), "message", constant.SenderLaxman, laxmanReply)

	return &dto.TurnResponse{
		UserMessage: *toMessageResponse(userMessage),
		Replies: []dto.MessageResponse{
			*toMessageResponse(ramMessage),
			*toMessageResponse(laxmanMessage),
		},
	}, nil
}

// executeTurn collects one reply per persona. A completion failure is
// absorbed into the apology substitute; the turn always yields two replies
// unless the caller's context is cancelled.
func (s *chatService) executeTurn(ctx context.Context, conversationId string, window []*entity.Message) (string, string, error) {
	ram := constant.PersonaFor(constant.PersonaRam)
	laxman := constant.PersonaFor(constant.PersonaLaxman)

	s.publish(ctx, conversationId, "typing", constant.SenderRam, "")
	ramReply := s.askPersona(ctx, ram, window)
	if err := ctx.Err(); err != nil {
		return "", "", err
	}

	s.turnStates.Advance(conversationId, store.PhaseAwaitingPersonaB)

	// Pacing delay, cancellable.
	select {
	case <-ctx.Done():
		return "", "", ctx.Err()
	case <-time.After(s.pacingDelay):
	}

	// Laxman sees Ram's reply as part of the transcript.
	windowWithRam := append(append([]*entity.Message{}, window...), &entity.Message{
		Sender:  constant.SenderRam,
		Content: ramReply,
	})

	s.publish(ctx, conversationId, "typing", constant.SenderLaxman, "")
	laxmanReply := s.askPersona(ctx, laxman, windowWithRam)
	if err := ctx.Err(); err != nil {
		return "", "", err
	}

	return ramReply, laxmanReply, nil
}

// askPersona issues one completion request and substitutes the apology line
// on failure. The raw error never reaches a transcript.
func (s *chatService) askPersona(ctx context.Context, persona constant.Persona, window []*entity.Message) string {
	history := buildHistory(persona, window)

	reply, err := s.llmProvider.Chat(ctx, history,
		llm.WithTemperature(0.7),
		llm.WithMaxTokens(500),
	)
	if err != nil {
		s.logger.Warn("ChatService", "Persona completion failed, substituting apology", map[string]interface{}{
			"persona": string(persona.Key),
			"error":   err.Error(),
		})
		return constant.ApologyReply
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		return constant.ApologyReply
	}
	return reply
}

// buildHistory serializes the transcript window into a prompt, each entry
// tagged with its speaker label so the model can track who said what. The
// caller sizes the window; nothing is dropped here, so the second persona's
// extra entry survives.
func buildHistory(persona constant.Persona, window []*entity.Message) []llm.Message {
	var b strings.Builder
	for _, m := range window {
		fmt.Fprintf(&b, "%s: %s\n", constant.SenderLabel(m.Sender), m.Content)
	}
	fmt.Fprintf(&b, "\nRespond as %s.", persona.Label)

	return []llm.Message{
		{Role: "system", Content: persona.SystemPrompt},
		{Role: "user", Content: b.String()},
	}
}

// contextWindow loads the prompt window in chronological order: the last
// ContextWindowSize entries that preceded the turn, plus the just-saved user
// message sitting at the head of the descending page.
func (s *chatService) contextWindow(ctx context.Context, conversationId uuid.UUID) ([]*entity.Message, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	messages, err := uow.MessageRepository().FindWindowDescending(ctx, conversationId, constant.ContextWindowSize+1, 0, false)
	if err != nil {
		return nil, err
	}

	// Newest-first from the store, reverse into speaking order.
	window := make([]*entity.Message, len(messages))
	for i, m := range messages {
		window[len(messages)-1-i] = m
	}
	return window, nil
}

// SendAnonymousMessage reconstructs the window from the client-held
// transcript and runs the same two-persona sequence, skipping persistence,
// the re-entrancy guard, and stream updates.
func (s *chatService) SendAnonymousMessage(ctx context.Context, req *dto.AnonymousTurnRequest) (*dto.AnonymousTurnResponse, error) {
	history := req.History
	if len(history) > constant.ContextWindowSize {
		history = history[len(history)-constant.ContextWindowSize:]
	}

	window := make([]*entity.Message, 0, len(history)+1)
	for _, e := range history {
		window = append(window, &entity.Message{Sender: e.Sender, Content: e.Content})
	}
	window = append(window, &entity.Message{Sender: constant.SenderUser, Content: req.Content})

	ramReply, laxmanReply, err := s.executeTurn(ctx, "", window)
	if err != nil {
		return nil, err
	}

	return &dto.AnonymousTurnResponse{
		Replies: []dto.AnonymousReply{
			{Sender: constant.SenderRam, Content: ramReply},
			{Sender: constant.SenderLaxman, Content: laxmanReply},
		},
	}, nil
}

func (s *chatService) GetHistory(ctx context.Context, userId uuid.UUID, q *dto.ChatHistoryQuery) ([]*dto.MessageResponse, error) {
	limit := q.Limit
	if limit <= 0 || limit > 200 {
		limit = defaultPageSize
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	messages, err := uow.MessageRepository().FindUserHistoryDescending(ctx, userId, q.ChatType, limit)
	if err != nil {
		return nil, apperror.NewStorage("chat history", err)
	}

	responses := make([]*dto.MessageResponse, len(messages))
	for i, m := range messages {
		responses[len(messages)-1-i] = toMessageResponse(m)
	}
	return responses, nil
}

func (s *chatService) publish(ctx context.Context, conversationId, kind, sender, content string) {
	if s.publisherService == nil || conversationId == "" {
		return
	}
	payload, err := json.Marshal(map[string]interface{}{
		"kind":            kind,
		"conversation_id": conversationId,
		"sender":          sender,
		"content":         content,
	})
	if err != nil {
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.logger.Warn("ChatService", "Failed to publish chat update", map[string]interface{}{"error": err.Error()})
	}
}
