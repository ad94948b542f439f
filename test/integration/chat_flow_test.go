package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"tria-ai-be/internal/apperror"
	"tria-ai-be/internal/constant"
	"tria-ai-be/internal/dto"
	"tria-ai-be/internal/entity"
	"tria-ai-be/internal/repository/memory"
	"tria-ai-be/internal/repository/specification"
	"tria-ai-be/internal/repository/unitofwork"
	"tria-ai-be/internal/service"
	"tria-ai-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

type stubMailer struct{}

func (stubMailer) SendWelcome(toEmail, displayName string) error { return nil }

type quietLogger struct{}

func (quietLogger) Debug(module, message string, details map[string]interface{}) {}
func (quietLogger) Info(module, message string, details map[string]interface{})  {}
func (quietLogger) Warn(module, message string, details map[string]interface{})  {}
func (quietLogger) Error(module, message string, details map[string]interface{}) {}
func (quietLogger) Sync() error                                                  { return nil }

func TestChatPersistenceFlow(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.ConversationRepository())
	assert.NotNil(t, uow.MessageRepository())
	assert.NotNil(t, uow.SessionRepository())
	assert.NotNil(t, uow.ActivityRepository())

	authService := service.NewAuthService(uowFactory, stubMailer{}, nil, quietLogger{})
	conversationService := service.NewConversationService(uowFactory, quietLogger{})
	analyticsService := service.NewAnalyticsService(uowFactory, quietLogger{})

	ctx := context.Background()

	email := "test-integration-" + uuid.New().String() + "@example.com"
	registered, err := authService.Register(ctx, &dto.RegisterRequest{
		Email:       email,
		Password:    "integration-password",
		DisplayName: "Integration Test User",
	})
	if err != nil {
		t.Fatalf("Failed to register test user: %v", err)
	}
	userId := registered.User.Id

	t.Run("Registration Counts As First Login", func(t *testing.T) {
		user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: email})
		assert.NoError(t, err)
		assert.Equal(t, 1, user.LoginCount)
		if assert.NotNil(t, user.LastLoginAt) {
			assert.WithinDuration(t, time.Now(), *user.LastLoginAt, time.Minute)
		}
	})

	t.Run("Duplicate Email Rejected", func(t *testing.T) {
		_, err := authService.Register(ctx, &dto.RegisterRequest{
			Email:    email,
			Password: "another-password",
		})
		assert.Error(t, err)
		assert.True(t, apperror.IsConflict(err))
	})

	t.Run("Session Lifecycle", func(t *testing.T) {
		assert.Len(t, registered.SessionToken, 64, "token should be 32 random bytes hex encoded")

		validatedId, err := authService.ValidateSession(ctx, registered.SessionToken)
		assert.NoError(t, err)
		assert.Equal(t, userId, validatedId)

		login, err := authService.Login(ctx, &dto.LoginRequest{
			Email:    email,
			Password: "integration-password",
		})
		assert.NoError(t, err)
		assert.NotEqual(t, registered.SessionToken, login.SessionToken, "each login issues a fresh token")

		err = authService.Logout(ctx, login.SessionToken)
		assert.NoError(t, err)

		_, err = authService.ValidateSession(ctx, login.SessionToken)
		assert.True(t, apperror.IsAuthentication(err))

		// Logout is idempotent.
		err = authService.Logout(ctx, login.SessionToken)
		assert.NoError(t, err)
	})

	t.Run("Wrong Password Rejected", func(t *testing.T) {
		_, err := authService.Login(ctx, &dto.LoginRequest{
			Email:    email,
			Password: "not-the-password",
		})
		assert.True(t, apperror.IsAuthentication(err))
	})

	conversation, err := conversationService.Create(ctx, userId, &dto.CreateConversationRequest{
		Title:    "Integration transcript",
		ChatType: constant.ChatTypeTriple,
		Tags:     []string{"integration"},
	})
	if err != nil {
		t.Fatalf("Failed to create conversation: %v", err)
	}

	t.Run("Messages Persist With Counters", func(t *testing.T) {
		senders := []string{constant.SenderUser, constant.SenderRam, constant.SenderLaxman}
		contents := []string{
			"What is the capital of France?",
			"Paris, and a lovely one at that!",
			"Paris indeed, where even the pigeons have good taste.",
		}
		for i := range senders {
			msg := &entity.Message{
				ConversationId: conversation.Id,
				Sender:         senders[i],
				Content:        contents[i],
			}
			if senders[i] == constant.SenderUser {
				msg.UserId = &userId
			}
			err := conversationService.SaveMessage(ctx, msg)
			assert.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, msg.Id)
			assert.NotZero(t, msg.WordCount)
		}

		fetched, err := conversationService.Get(ctx, userId, conversation.Id)
		assert.NoError(t, err)
		assert.Equal(t, 3, fetched.MessageCount)

		messages, err := conversationService.ListMessages(ctx, userId, conversation.Id, &dto.ListMessagesQuery{})
		assert.NoError(t, err)
		if assert.Len(t, messages, 3) {
			// Chronological order, user first.
			assert.Equal(t, constant.SenderUser, messages[0].Sender)
			assert.Equal(t, constant.SenderRam, messages[1].Sender)
			assert.Equal(t, constant.SenderLaxman, messages[2].Sender)
			assert.Equal(t, 6, messages[0].WordCount)
		}
	})

	t.Run("Message Pagination", func(t *testing.T) {
		paged, err := conversationService.Create(ctx, userId, &dto.CreateConversationRequest{
			Title: "Paged transcript",
		})
		assert.NoError(t, err)
		contents := []string{"message 1", "message 2", "message 3", "message 4", "message 5"}
		for _, content := range contents {
			err := conversationService.SaveMessage(ctx, &entity.Message{
				ConversationId: paged.Id,
				UserId:         &userId,
				Sender:         constant.SenderUser,
				Content:        content,
			})
			assert.NoError(t, err)
		}

		newest, err := conversationService.ListMessages(ctx, userId, paged.Id, &dto.ListMessagesQuery{Limit: 2})
		assert.NoError(t, err)
		if assert.Len(t, newest, 2) {
			assert.Equal(t, "message 4", newest[0].Content)
			assert.Equal(t, "message 5", newest[1].Content)
		}

		// Offset skips the newest rows, so the second page is the next
		// older block, still chronological within itself.
		older, err := conversationService.ListMessages(ctx, userId, paged.Id, &dto.ListMessagesQuery{Limit: 2, Offset: 2})
		assert.NoError(t, err)
		if assert.Len(t, older, 2) {
			assert.Equal(t, "message 2", older[0].Content)
			assert.Equal(t, "message 3", older[1].Content)
		}

		oldest, err := conversationService.ListMessages(ctx, userId, paged.Id, &dto.ListMessagesQuery{Limit: 2, Offset: 4})
		assert.NoError(t, err)
		if assert.Len(t, oldest, 1) {
			assert.Equal(t, "message 1", oldest[0].Content)
		}
	})

	t.Run("Reaction Upsert", func(t *testing.T) {
		messages, err := conversationService.ListMessages(ctx, userId, conversation.Id, &dto.ListMessagesQuery{})
		assert.NoError(t, err)
		if len(messages) == 0 {
			t.Fatal("expected messages from previous subtest")
		}
		target := messages[1]

		res, err := conversationService.AddReaction(ctx, userId, target.Id, &dto.AddReactionRequest{
			Kind:      "like",
			Intensity: 3,
		})
		assert.NoError(t, err)
		assert.True(t, res.Inserted)
		assert.Equal(t, 1, res.ReactionCount)

		// Same user and kind again updates in place, count stays put.
		res, err = conversationService.AddReaction(ctx, userId, target.Id, &dto.AddReactionRequest{
			Kind:      "like",
			Intensity: 5,
			Feedback:  "even better on reread",
		})
		assert.NoError(t, err)
		assert.False(t, res.Inserted)
		assert.Equal(t, 1, res.ReactionCount)

		// A different kind is a new row.
		res, err = conversationService.AddReaction(ctx, userId, target.Id, &dto.AddReactionRequest{
			Kind: "laugh",
		})
		assert.NoError(t, err)
		assert.True(t, res.Inserted)
		assert.Equal(t, 2, res.ReactionCount)
	})

	t.Run("Title Search", func(t *testing.T) {
		hits, err := conversationService.List(ctx, userId, &dto.ListConversationsQuery{Search: "Integration transcript"})
		assert.NoError(t, err)
		assert.NotEmpty(t, hits)

		misses, err := conversationService.List(ctx, userId, &dto.ListConversationsQuery{Search: "no-such-title-" + uuid.New().String()})
		assert.NoError(t, err)
		assert.Empty(t, misses)
	})

	t.Run("Archive And Unarchive", func(t *testing.T) {
		shelved, err := conversationService.Create(ctx, userId, &dto.CreateConversationRequest{
			Title: "Shelved transcript",
		})
		assert.NoError(t, err)

		archived := constant.ConversationStatusArchived
		err = conversationService.Update(ctx, userId, shelved.Id, &dto.UpdateConversationRequest{Status: &archived})
		assert.NoError(t, err)

		// The default listing only shows active conversations.
		active, err := conversationService.List(ctx, userId, &dto.ListConversationsQuery{})
		assert.NoError(t, err)
		for _, c := range active {
			assert.NotEqual(t, shelved.Id, c.Id)
		}

		shelf, err := conversationService.List(ctx, userId, &dto.ListConversationsQuery{Status: constant.ConversationStatusArchived})
		assert.NoError(t, err)
		found := false
		for _, c := range shelf {
			if c.Id == shelved.Id {
				found = true
				assert.Equal(t, constant.ConversationStatusArchived, c.Status)
			}
		}
		assert.True(t, found, "archived listing should include the shelved conversation")

		// Unarchiving brings it back to the default listing.
		restore := constant.ConversationStatusActive
		err = conversationService.Update(ctx, userId, shelved.Id, &dto.UpdateConversationRequest{Status: &restore})
		assert.NoError(t, err)

		restored, err := conversationService.Get(ctx, userId, shelved.Id)
		assert.NoError(t, err)
		assert.Equal(t, constant.ConversationStatusActive, restored.Status)
	})

	t.Run("Ownership Enforced", func(t *testing.T) {
		stranger := uuid.New()
		_, err := conversationService.Get(ctx, stranger, conversation.Id)
		assert.True(t, apperror.IsNotFound(err))

		err = conversationService.Delete(ctx, stranger, conversation.Id)
		assert.True(t, apperror.IsNotFound(err))
	})

	t.Run("Deleted Conversation Rejects Messages", func(t *testing.T) {
		doomed, err := conversationService.Create(ctx, userId, &dto.CreateConversationRequest{
			Title: "Short lived",
		})
		assert.NoError(t, err)

		err = conversationService.Delete(ctx, userId, doomed.Id)
		assert.NoError(t, err)

		err = conversationService.SaveMessage(ctx, &entity.Message{
			ConversationId: doomed.Id,
			UserId:         &userId,
			Sender:         constant.SenderUser,
			Content:        "anyone home?",
		})
		assert.True(t, apperror.IsNotFound(err))

		// Gone from the active listing too.
		listed, err := conversationService.List(ctx, userId, &dto.ListConversationsQuery{})
		assert.NoError(t, err)
		for _, c := range listed {
			assert.NotEqual(t, doomed.Id, c.Id)
		}

		// The status flip committed together with its activity row.
		n, err := uow.ActivityRepository().Count(ctx,
			specification.OwnedBy{UserID: userId},
			specification.Filter("action", constant.ActivityConversationDeleted))
		assert.NoError(t, err)
		assert.GreaterOrEqual(t, n, int64(1))
	})

	t.Run("Cross Conversation History", func(t *testing.T) {
		chatService := service.NewChatService(uowFactory, conversationService, memory.NewTurnStateRepository(), nil, nil, quietLogger{})

		history, err := chatService.GetHistory(ctx, userId, &dto.ChatHistoryQuery{})
		assert.NoError(t, err)
		if assert.GreaterOrEqual(t, len(history), 3) {
			for i := 1; i < len(history); i++ {
				assert.False(t, history[i].CreatedAt.Before(history[i-1].CreatedAt), "history should be chronological")
			}
		}

		studyOnly, err := chatService.GetHistory(ctx, userId, &dto.ChatHistoryQuery{ChatType: constant.ChatTypeStudy})
		assert.NoError(t, err)
		assert.Empty(t, studyOnly)
	})

	t.Run("Profile Update Recorded", func(t *testing.T) {
		userService := service.NewUserService(uowFactory, quietLogger{})

		bio := "Planning trips with Ram and Laxman"
		err := userService.UpdateProfile(ctx, userId, &dto.UpdateProfileRequest{Bio: &bio})
		assert.NoError(t, err)

		profile, err := userService.GetProfile(ctx, userId)
		assert.NoError(t, err)
		assert.Equal(t, bio, profile.Bio)

		// The field change and its activity row commit together.
		n, err := uow.ActivityRepository().Count(ctx,
			specification.OwnedBy{UserID: userId},
			specification.Filter("action", constant.ActivityUserUpdated))
		assert.NoError(t, err)
		assert.GreaterOrEqual(t, n, int64(1))
	})

	t.Run("Database Stats", func(t *testing.T) {
		stats, err := analyticsService.GetDatabaseStats(ctx)
		assert.NoError(t, err)
		assert.GreaterOrEqual(t, stats.TotalUsers, int64(1))
		assert.GreaterOrEqual(t, stats.TotalMessages, int64(3))
		assert.GreaterOrEqual(t, stats.TotalReactions, int64(2))
		// The freshly registered user logged in within the window.
		assert.GreaterOrEqual(t, stats.ActiveUsers, int64(1))
		assert.GreaterOrEqual(t, stats.PremiumUsers, int64(0))
		assert.Greater(t, stats.AverageMessagesPerConversation, 0.0)
	})

	t.Run("User Analytics", func(t *testing.T) {
		analytics, err := analyticsService.GetUserAnalytics(ctx, userId)
		assert.NoError(t, err)
		assert.GreaterOrEqual(t, analytics.ConversationCount, int64(1))
		assert.GreaterOrEqual(t, analytics.MessageCount, int64(1))
		// One conversation, one message and one login each unlock a badge.
		assert.GreaterOrEqual(t, analytics.Achievements, 3)

		_, err = analyticsService.GetUserAnalytics(ctx, uuid.New())
		assert.True(t, apperror.IsNotFound(err))
	})

	t.Run("Expired Session Cleanup", func(t *testing.T) {
		expired := &entity.UserSession{
			Id:        uuid.New(),
			UserId:    userId,
			Token:     "expired-" + uuid.New().String(),
			ExpiresAt: time.Now().Add(-time.Hour),
		}
		err := uow.SessionRepository().Create(ctx, expired)
		assert.NoError(t, err)

		// An expired token fails validation even before cleanup runs.
		_, err = authService.ValidateSession(ctx, expired.Token)
		assert.True(t, apperror.IsAuthentication(err))

		removed, err := authService.CleanupExpiredSessions(ctx)
		assert.NoError(t, err)
		assert.GreaterOrEqual(t, removed, int64(1))
	})
}
