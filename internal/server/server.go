// Package server assembles the fiber application and owns its lifecycle.
package server

import (
	"context"
	"strings"

	"github.com/AnthoniusHendriyanto/user-service/config"
	"github.com/AnthoniusHendriyanto/user-service/internal/auth/handler"
	"github.com/AnthoniusHendriyanto/user-service/internal/logging"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

type Server struct {
	app    *fiber.App
	addr   string
	logger logging.Logger
}

func New(cfg *config.Config, handlers handler.Handlers, logger logging.Logger) *Server {
	app := fiber.New(fiber.Config{
		AppName:               cfg.ProjectName,
		DisableStartupMessage: true,
	})

	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(handler.AccessLog(logger))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.CORSOrigins, ","),
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	handler.RegisterRoutes(app, cfg.APIPrefix, handlers)

	return &Server{app: app, addr: cfg.HTTPAddress(), logger: logger}
}

// App exposes the fiber application, mostly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Start blocks until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info(context.Background(), "http server listening", "addr", s.addr)
	return s.app.Listen(s.addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info(ctx, "http server shutting down")
	return s.app.ShutdownWithContext(ctx)
}
