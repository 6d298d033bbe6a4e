package handlers

import (
	"errors"
	"log/slog"

	"github.com/fardinbaf/scamguard-backend/internal/dto"
	"github.com/fardinbaf/scamguard-backend/internal/policy"
	"github.com/gofiber/fiber/v2"
)

// fail maps service errors to transport responses. Policy denials render as
// generic messages so probing cannot tell which rule fired; validation
// errors keep their detail since the caller supplied the bad input.
func fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, policy.ErrUnauthenticated):
		return respond(c, fiber.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, policy.ErrForbidden):
		return respond(c, fiber.StatusForbidden, "Not permitted")
	case errors.Is(err, policy.ErrNotFound):
		return respond(c, fiber.StatusNotFound, "Not found")
	case errors.Is(err, policy.ErrValidation):
		return respond(c, fiber.StatusBadRequest, err.Error())
	default:
		slog.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err.Error())
		return respond(c, fiber.StatusInternalServerError, "Internal server error")
	}
}

func respond(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: message})
}
