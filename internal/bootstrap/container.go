package bootstrap

import (
	"context"
	"log"

	"tria-ai-be/internal/config"
	"tria-ai-be/internal/controller"
	"tria-ai-be/internal/handler"
	"tria-ai-be/internal/pkg/logger"
	"tria-ai-be/internal/pkg/mailer"
	"tria-ai-be/internal/pkg/serverutils"
	"tria-ai-be/internal/repository/memory"
	"tria-ai-be/internal/repository/unitofwork"
	"tria-ai-be/internal/service"
	"tria-ai-be/internal/websocket"
	"tria-ai-be/pkg/llm/factory"

	pktNats "tria-ai-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController         controller.IAuthController
	OAuthController        controller.IOAuthController
	UserController         controller.IUserController
	ConversationController controller.IConversationController
	ChatController         controller.IChatController
	AnalyticsController    controller.IAnalyticsController

	// Session auth middleware shared by protected route groups
	SessionMiddleware fiber.Handler

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	AuthService     service.IAuthService

	// WebSockets
	ChatStreamHandler *handler.ChatStreamHandler
	WebSocketHub      *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// LLM Provider
	llmProvider, err := factory.NewProvider(factory.Config{
		Type:      factory.ProviderType(cfg.Ai.Provider),
		APIKey:    cfg.Ai.GroqAPIKey,
		BaseURL:   cfg.Ai.GroqBaseURL,
		ModelName: cfg.Ai.Model,
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.Provider, cfg.Ai.Model)

	// In-memory turn state
	turnStates := memory.NewTurnStateRepository()

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/chat_stream.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	publisherService := service.NewPublisherService(cfg.Topics.ChatUpdates, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.Topics.ChatUpdates, wsHub)

	// 3. Services
	authService := service.NewAuthService(uowFactory, emailService, natsPub, sysLogger)
	oauthService := service.NewOAuthService(uowFactory)
	userService := service.NewUserService(uowFactory, sysLogger)
	conversationService := service.NewConversationService(uowFactory, sysLogger)
	chatService := service.NewChatService(
		uowFactory,
		conversationService,
		turnStates,
		llmProvider,
		publisherService,
		sysLogger,
	)
	analyticsService := service.NewAnalyticsService(uowFactory, sysLogger)

	sessionMiddleware := serverutils.SessionMiddleware(authService)

	// WebSocket handler
	chatStreamHandler := handler.NewChatStreamHandler(authService, wsHub, wsLogger)

	// 4. Controllers
	return &Container{
		AuthController:         controller.NewAuthController(authService),
		OAuthController:        controller.NewOAuthController(oauthService),
		UserController:         controller.NewUserController(userService),
		ConversationController: controller.NewConversationController(conversationService),
		ChatController:         controller.NewChatController(chatService),
		AnalyticsController:    controller.NewAnalyticsController(analyticsService),

		SessionMiddleware: sessionMiddleware,

		ConsumerService: consumerService,
		AuthService:     authService,

		ChatStreamHandler: chatStreamHandler,
		WebSocketHub:      wsHub,
	}
}
