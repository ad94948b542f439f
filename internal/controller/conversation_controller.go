package controller

import (
	"tria-ai-be/internal/dto"
	"tria-ai-be/internal/pkg/serverutils"
	"tria-ai-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IConversationController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Get(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	ListMessages(ctx *fiber.Ctx) error
	AddReaction(ctx *fiber.Ctx) error
}

type conversationController struct {
	service service.IConversationService
}

func NewConversationController(service service.IConversationService) IConversationController {
	return &conversationController{service: service}
}

func (c *conversationController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/conversations")
	h.Use(auth)
	h.Post("/", c.Create)
	h.Get("/", c.List)
	h.Get("/:id", c.Get)
	h.Put("/:id", c.Update)
	h.Delete("/:id", c.Delete)
	h.Get("/:id/messages", c.ListMessages)
	h.Post("/messages/:messageId/reactions", c.AddReaction)
}

func (c *conversationController) Create(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var req dto.CreateConversationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Conversation created", res))
}

func (c *conversationController) List(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var q dto.ListConversationsQuery
	if err := ctx.QueryParser(&q); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid query parameters"))
	}

	res, err := c.service.List(ctx.Context(), userId, &q)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Conversations", res))
}

func (c *conversationController) Get(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	conversationId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid conversation ID"))
	}

	res, err := c.service.Get(ctx.Context(), userId, conversationId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Conversation", res))
}

func (c *conversationController) Update(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	conversationId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid conversation ID"))
	}

	var req dto.UpdateConversationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.Update(ctx.Context(), userId, conversationId, &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Conversation updated", nil))
}

func (c *conversationController) Delete(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	conversationId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid conversation ID"))
	}

	if err := c.service.Delete(ctx.Context(), userId, conversationId); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Conversation deleted", nil))
}

func (c *conversationController) ListMessages(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	conversationId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid conversation ID"))
	}

	var q dto.ListMessagesQuery
	if err := ctx.QueryParser(&q); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid query parameters"))
	}

	res, err := c.service.ListMessages(ctx.Context(), userId, conversationId, &q)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Messages", res))
}

func (c *conversationController) AddReaction(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	messageId, err := uuid.Parse(ctx.Params("messageId"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid message ID"))
	}

	var req dto.AddReactionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.AddReaction(ctx.Context(), userId, messageId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Reaction saved", res))
}

func currentUserId(ctx *fiber.Ctx) uuid.UUID {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	return userId
}
