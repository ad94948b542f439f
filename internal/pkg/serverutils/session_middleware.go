package serverutils

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// SessionValidator resolves an opaque bearer token to a user id. The auth
// service implements it.
type SessionValidator interface {
	ValidateSession(ctx context.Context, token string) (uuid.UUID, error)
}

// SessionMiddleware authenticates requests carrying "Authorization: Bearer <token>".
// On success the user's id is stored in Locals("user_id") as a string.
func SessionMiddleware(validator SessionValidator) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Missing token"))
		}
		token := authHeader[7:]

		userId, err := validator.ValidateSession(ctx.Context(), token)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Invalid or expired session"))
		}

		ctx.Locals("user_id", userId.String())
		return ctx.Next()
	}
}
