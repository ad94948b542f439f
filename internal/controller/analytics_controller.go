package controller

import (
	"tria-ai-be/internal/pkg/serverutils"
	"tria-ai-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAnalyticsController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	GetDatabaseStats(ctx *fiber.Ctx) error
	GetUserAnalytics(ctx *fiber.Ctx) error
	GetRecentActivity(ctx *fiber.Ctx) error
}

type analyticsController struct {
	service service.IAnalyticsService
}

func NewAnalyticsController(service service.IAnalyticsService) IAnalyticsController {
	return &analyticsController{service: service}
}

func (c *analyticsController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/stats")
	h.Use(auth)
	h.Get("/database", c.GetDatabaseStats)
	h.Get("/me", c.GetUserAnalytics)
	h.Get("/activity", c.GetRecentActivity)
}

func (c *analyticsController) GetDatabaseStats(ctx *fiber.Ctx) error {
	res, err := c.service.GetDatabaseStats(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Database stats", res))
}

func (c *analyticsController) GetUserAnalytics(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	res, err := c.service.GetUserAnalytics(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("User analytics", res))
}

func (c *analyticsController) GetRecentActivity(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	limit := ctx.QueryInt("limit", 20)

	res, err := c.service.GetRecentActivity(ctx.Context(), userId, limit)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Recent activity", res))
}
