package handlers

import (
	"github.com/fardinbaf/scamguard-backend/internal/dto"
	"github.com/fardinbaf/scamguard-backend/internal/identity"
	"github.com/fardinbaf/scamguard-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.userService.List(c.UserContext(), identity.FromCtx(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(users)
}

func (h *UserHandler) SetRole(c *fiber.Ctx) error {
	target, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respond(c, fiber.StatusNotFound, "Not found")
	}

	var req dto.SetRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return respond(c, fiber.StatusBadRequest, "Invalid request body")
	}

	user, err := h.userService.SetAdmin(c.UserContext(), identity.FromCtx(c), target, req.IsAdmin)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(user)
}

func (h *UserHandler) SetBan(c *fiber.Ctx) error {
	target, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respond(c, fiber.StatusNotFound, "Not found")
	}

	var req dto.SetBanRequest
	if err := c.BodyParser(&req); err != nil {
		return respond(c, fiber.StatusBadRequest, "Invalid request body")
	}

	user, err := h.userService.SetBanned(c.UserContext(), identity.FromCtx(c), target, req.IsBanned)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(user)
}

// Delete bans the target; true account deletion happens out of band at the
// identity provider.
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	target, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respond(c, fiber.StatusNotFound, "Not found")
	}

	if err := h.userService.Remove(c.UserContext(), identity.FromCtx(c), target); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "User removed"})
}
