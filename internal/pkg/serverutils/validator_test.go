package serverutils

import (
	"errors"
	"testing"

	"tria-ai-be/internal/dto"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestValidateRequestAcceptsValidPayload(t *testing.T) {
	err := ValidateRequest(&dto.RegisterRequest{
		Email:    "user@example.com",
		Password: "long-enough-password",
	})
	assert.NoError(t, err)
}

func TestValidateRequestRejectsBadPayload(t *testing.T) {
	err := ValidateRequest(&dto.RegisterRequest{
		Email:    "not-an-email",
		Password: "short",
	})
	assert.Error(t, err)

	var fiberErr *fiber.Error
	if assert.True(t, errors.As(err, &fiberErr)) {
		assert.Equal(t, fiber.StatusBadRequest, fiberErr.Code)
		assert.Contains(t, fiberErr.Message, "Email")
		assert.Contains(t, fiberErr.Message, "Password")
	}
}

func TestValidateRequestRejectsUnknownReactionKind(t *testing.T) {
	err := ValidateRequest(&dto.AddReactionRequest{Kind: "angry"})
	assert.Error(t, err)

	err = ValidateRequest(&dto.AddReactionRequest{Kind: "insightful", Intensity: 5})
	assert.NoError(t, err)
}
