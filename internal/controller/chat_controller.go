package controller

import (
	"strings"

	"tria-ai-be/internal/apperror"
	"tria-ai-be/internal/dto"
	"tria-ai-be/internal/pkg/serverutils"
	"tria-ai-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	SendMessage(ctx *fiber.Ctx) error
	SendAnonymous(ctx *fiber.Ctx) error
	GetHistory(ctx *fiber.Ctx) error
	ListPersonas(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
}

func NewChatController(service service.IChatService) IChatController {
	return &chatController{service: service}
}

func (c *chatController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/chat")
	h.Get("/personas", c.ListPersonas)
	h.Post("/anonymous", c.SendAnonymous)
	h.Use(auth)
	h.Post("/send", c.SendMessage)
	h.Get("/history", c.GetHistory)
}

func (c *chatController) SendMessage(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	req.Content = strings.TrimSpace(req.Content)
	if req.Content == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Message content is empty")
	}

	res, err := c.service.SendMessage(ctx.Context(), userId, &req)
	if err != nil {
		// A turn already in flight is reported as a conflict so the client
		// can keep its input disabled instead of retrying.
		if apperror.IsConflict(err) {
			return ctx.Status(fiber.StatusConflict).JSON(serverutils.ErrorResponse(409, err.Error()))
		}
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Turn completed", res))
}

func (c *chatController) SendAnonymous(ctx *fiber.Ctx) error {
	var req dto.AnonymousTurnRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	req.Content = strings.TrimSpace(req.Content)
	if req.Content == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Message content is empty")
	}

	res, err := c.service.SendAnonymousMessage(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Turn completed", res))
}

func (c *chatController) GetHistory(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var q dto.ChatHistoryQuery
	if err := ctx.QueryParser(&q); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid query parameters"))
	}

	res, err := c.service.GetHistory(ctx.Context(), userId, &q)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Chat history", res))
}

func (c *chatController) ListPersonas(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Personas", c.service.ListPersonas()))
}
