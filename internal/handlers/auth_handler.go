package handlers

import (
	"errors"

	"github.com/fardinbaf/scamguard-backend/internal/dto"
	"github.com/fardinbaf/scamguard-backend/internal/identity"
	"github.com/fardinbaf/scamguard-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return respond(c, fiber.StatusBadRequest, "Invalid request body")
	}

	user, err := h.authService.Register(c.UserContext(), &req)
	if err != nil {
		if errors.Is(err, services.ErrIdentifierTaken) {
			return respond(c, fiber.StatusConflict, err.Error())
		}
		return respond(c, fiber.StatusBadRequest, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Verification code sent",
		"user": dto.UserResponse{
			ID:         user.ID,
			Identifier: user.Identifier,
		},
	})
}

func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	var req dto.VerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return respond(c, fiber.StatusBadRequest, "Invalid request body")
	}

	resp, err := h.authService.Verify(c.UserContext(), &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCode) || errors.Is(err, services.ErrUserNotFound) {
			return respond(c, fiber.StatusBadRequest, "Invalid verification code")
		}
		return respond(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(resp)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return respond(c, fiber.StatusBadRequest, "Invalid request body")
	}

	resp, err := h.authService.Login(c.UserContext(), &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return respond(c, fiber.StatusUnauthorized, err.Error())
		}
		if errors.Is(err, services.ErrNotVerified) {
			return respond(c, fiber.StatusForbidden, err.Error())
		}
		return respond(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(resp)
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return respond(c, fiber.StatusBadRequest, "Invalid request body")
	}

	resp, err := h.authService.Refresh(c.UserContext(), &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidToken) {
			return respond(c, fiber.StatusUnauthorized, err.Error())
		}
		return respond(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(resp)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var req dto.LogoutRequest
	if err := c.BodyParser(&req); err != nil {
		return respond(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := h.authService.Logout(c.UserContext(), &req); err != nil {
		return respond(c, fiber.StatusInternalServerError, "Failed to logout")
	}

	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

// Me returns the reconciled identity of the current session.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	id := identity.FromCtx(c)
	if id == nil {
		return respond(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	return c.JSON(dto.UserResponse{
		ID:         id.ID,
		Identifier: id.Identifier,
		IsAdmin:    id.IsAdmin,
		IsBanned:   id.IsBanned,
		IsVerified: id.IsVerified,
	})
}

func (h *AuthHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetRequest
	if err := c.BodyParser(&req); err != nil {
		return respond(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := h.authService.RequestPasswordReset(c.UserContext(), req.Identifier); err != nil {
		return respond(c, fiber.StatusInternalServerError, "Internal server error")
	}

	// Same response whether or not the identifier exists.
	return c.JSON(fiber.Map{"message": "If the account exists, a reset code was sent"})
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return respond(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := h.authService.ResetPassword(c.UserContext(), &req); err != nil {
		if errors.Is(err, services.ErrInvalidCode) {
			return respond(c, fiber.StatusBadRequest, "Invalid or expired reset code")
		}
		return respond(c, fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(fiber.Map{"message": "Password updated"})
}
