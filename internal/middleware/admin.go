package middleware

import (
	"github.com/fardinbaf/scamguard-backend/internal/config"
	"github.com/fardinbaf/scamguard-backend/internal/dto"
	"github.com/fardinbaf/scamguard-backend/internal/identity"
	"github.com/gofiber/fiber/v2"
)

// AdminRequired gates the moderation and management surface. An operator
// token configured out of band also passes, acting as a synthesized admin
// identity.
func AdminRequired(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.AdminToken != "" && c.Get("X-Admin-Token") == cfg.AdminToken {
			identity.Set(c, &identity.Identity{
				Identifier: "operator-token",
				IsAdmin:    true,
			})
			return c.Next()
		}

		id := identity.FromCtx(c)
		if !id.Authenticated() {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}
		if !id.IsAdmin {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Admin access required",
			})
		}
		return c.Next()
	}
}
