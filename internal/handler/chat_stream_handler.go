package handler

import (
	"tria-ai-be/internal/pkg/logger"
	"tria-ai-be/internal/pkg/serverutils"
	internalWS "tria-ai-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// ChatStreamHandler upgrades clients onto the hub so they receive turn
// progress and persona replies live.
type ChatStreamHandler struct {
	validator serverutils.SessionValidator
	hub       *internalWS.Hub
	logger    logger.ILogger
}

func NewChatStreamHandler(validator serverutils.SessionValidator, hub *internalWS.Hub, log logger.ILogger) *ChatStreamHandler {
	return &ChatStreamHandler{
		validator: validator,
		hub:       hub,
		logger:    log,
	}
}

// ServeWs handles websocket requests from the peer.
func (h *ChatStreamHandler) ServeWs(c *fiber.Ctx) error {
	// Priority 1: Query Param (Browser standard)
	tokenStr := c.Query("token")

	// Priority 2: Authorization Header (Tooling/Non-browser standard)
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}

	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token (Query 'token' or Header 'Authorization')"})
	}

	userID, err := h.validator.ValidateSession(c.Context(), tokenStr)
	if err != nil {
		h.logger.Warn("ChatStreamHandler", "Invalid session in WS handshake", map[string]interface{}{"error": err.Error()})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired session"})
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			internalWS.ServeWs(h.hub, conn, userID)
			h.logger.Info("ChatStreamHandler", "WebSocket session ended", map[string]interface{}{"user_id": userID})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

// RegisterRoutes registers the websocket endpoint.
func (h *ChatStreamHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ws", h.ServeWs)
}
