package handler

import (
	"github.com/AnthoniusHendriyanto/user-service/internal/logging"
	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Auth   *AuthHandler
	Users  *UserHandler
	Health *HealthHandler
	Gate   Authenticator
	Logger logging.Logger
}

func RegisterRoutes(app *fiber.App, prefix string, h Handlers) {
	app.Get("/", OptionalAuth(h.Gate, h.Logger), h.Health.Root)
	app.Get("/health", h.Health.Health)

	api := app.Group(prefix)

	auth := api.Group("/auth")
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)

	users := api.Group("/users", RequireAuth(h.Gate, h.Logger))
	// /me must be registered before /:id.
	users.Get("/me", h.Users.Me)
	users.Get("/", h.Users.List)
	users.Get("/:id", h.Users.Get)
	users.Put("/:id", h.Users.Update)
	users.Delete("/:id", h.Users.Delete)
}
