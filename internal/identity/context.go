package identity

import "github.com/gofiber/fiber/v2"

const localsKey = "identity"

// Set stores the resolved identity in Fiber context locals.
func Set(c *fiber.Ctx, id *Identity) {
	c.Locals(localsKey, id)
}

// FromCtx extracts the resolved identity from Fiber context locals.
// Returns nil for anonymous callers.
func FromCtx(c *fiber.Ctx) *Identity {
	if id, ok := c.Locals(localsKey).(*Identity); ok {
		return id
	}
	return nil
}
