package handler

import (
	"context"
	"time"

	"github.com/AnthoniusHendriyanto/user-service/internal/logging"
	"github.com/gofiber/fiber/v2"
)

const pingTimeout = 2 * time.Second

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db          Pinger
	projectName string
	logger      logging.Logger
}

func NewHealthHandler(db Pinger, projectName string, logger logging.Logger) *HealthHandler {
	return &HealthHandler{db: db, projectName: projectName, logger: logger}
}

func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), pingTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.logger.Warn(c.UserContext(), "health check failed", "error", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unhealthy"})
	}
	return c.JSON(fiber.Map{"status": "healthy"})
}

// Root is the service banner. An authenticated caller also sees who it is.
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	body := fiber.Map{
		"message": h.projectName,
		"status":  "active",
	}
	if user, ok := CurrentUser(c); ok {
		body["user"] = user.Email
	}
	return c.JSON(body)
}
