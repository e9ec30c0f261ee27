package handler

import (
	"context"
	"time"

	"github.com/AnthoniusHendriyanto/user-service/internal/auth/domain"
	"github.com/AnthoniusHendriyanto/user-service/internal/logging"
	authconstant "github.com/AnthoniusHendriyanto/user-service/pkg/constant"
	"github.com/gofiber/fiber/v2"
)

type Authenticator interface {
	Resolve(ctx context.Context, authorization string) (*domain.User, error)
}

// RequireAuth rejects anonymous requests and invalid tokens with the same
// 401 response. The reason is only logged.
func RequireAuth(gate Authenticator, logger logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok, err := resolve(c, gate, logger)
		if !ok {
			return err
		}
		if user == nil {
			return writeError(c, fiber.StatusUnauthorized, msgNotAuthenticated)
		}

		c.Locals(authconstant.CurrentUserKey, user)
		return c.Next()
	}
}

// OptionalAuth lets anonymous requests through but still rejects a bearer
// token that does not verify.
func OptionalAuth(gate Authenticator, logger logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok, err := resolve(c, gate, logger)
		if !ok {
			return err
		}
		if user != nil {
			c.Locals(authconstant.CurrentUserKey, user)
		}
		return c.Next()
	}
}

// resolve runs the gate. When ok is false the response has already been
// written and err is what the handler must return.
func resolve(c *fiber.Ctx, gate Authenticator, logger logging.Logger) (user *domain.User, ok bool, err error) {
	user, err = gate.Resolve(c.UserContext(), c.Get(fiber.HeaderAuthorization))
	if err == nil {
		return user, true, nil
	}
	if statusFor(err) != fiber.StatusUnauthorized {
		return nil, false, respondError(c, logger, err)
	}
	logger.Info(c.UserContext(), "bearer token rejected", "path", c.Path(), "error", err)
	return nil, false, writeError(c, fiber.StatusUnauthorized, msgNotAuthenticated)
}

// CurrentUser returns the user stored by RequireAuth or OptionalAuth.
func CurrentUser(c *fiber.Ctx) (*domain.User, bool) {
	user, ok := c.Locals(authconstant.CurrentUserKey).(*domain.User)
	return user, ok && user != nil
}

// AccessLog writes one line per request.
func AccessLog(logger logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// Let the app's error handler set the status before logging it.
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		logger.Info(c.UserContext(), "http request",
			"request_id", c.GetRespHeader(fiber.HeaderXRequestID),
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"latency", time.Since(start),
		)
		return nil
	}
}
