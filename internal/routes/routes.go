package routes

import (
	"time"

	"github.com/fardinbaf/scamguard-backend/internal/config"
	"github.com/fardinbaf/scamguard-backend/internal/handlers"
	"github.com/fardinbaf/scamguard-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	reportHandler *handlers.ReportHandler,
	userHandler *handlers.UserHandler,
	adHandler *handlers.AdvertisementHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter limiter: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/verify", authHandler.Verify)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Post("/password-reset", authHandler.RequestPasswordReset)
	auth.Post("/password-reset/confirm", authHandler.ResetPassword)

	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)
	api.Get("/auth/me", middleware.JWTProtected(cfg), authHandler.Me)

	// Reports — listing and fetching work for anonymous callers too; the
	// resolved identity (if any) drives the policy narrowing downstream.
	api.Get("/reports", reportHandler.List)
	api.Get("/reports/:id", reportHandler.Get)
	api.Get("/reports/:id/comments", reportHandler.ListComments)
	api.Post("/reports", middleware.JWTProtected(cfg), middleware.RequireAuth(), reportHandler.Create)
	api.Post("/reports/:id/comments", middleware.JWTProtected(cfg), middleware.RequireAuth(), reportHandler.AddComment)

	// Advertisement banner — public read
	api.Get("/advertisement", adHandler.Get)

	// Admin panel. No jwtware layer here: the operator token carries no
	// bearer token at all, and AdminRequired rejects everyone else that the
	// globally resolved identity does not mark as admin.
	admin := api.Group("/admin", middleware.AdminRequired(cfg))
	admin.Put("/reports/:id/status", reportHandler.SetStatus)
	admin.Delete("/reports/:id", reportHandler.Delete)
	admin.Get("/users", userHandler.List)
	admin.Put("/users/:id/role", userHandler.SetRole)
	admin.Put("/users/:id/ban", userHandler.SetBan)
	admin.Delete("/users/:id", userHandler.Delete)
	admin.Put("/advertisement", adHandler.Save)
}
