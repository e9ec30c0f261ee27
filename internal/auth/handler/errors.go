package handler

import (
	"errors"
	"fmt"
	"strings"

	autherror "github.com/AnthoniusHendriyanto/user-service/internal/errors"
	"github.com/AnthoniusHendriyanto/user-service/internal/logging"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

const (
	msgInvalidBody        = "invalid request body"
	msgNotAuthenticated   = "Could not validate credentials"
	msgInvalidCredentials = "Incorrect email or password"
	msgInvalidToken       = "Invalid or expired authentication token"
	msgInternal           = "Internal server error"
)

// statusFor maps a service error to its HTTP status. ErrInvalidToken is
// checked first because it may wrap ErrUserNotFound.
func statusFor(err error) int {
	var verrs validator.ValidationErrors
	switch {
	case errors.Is(err, autherror.ErrInvalidToken),
		errors.Is(err, autherror.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, autherror.ErrUserNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, autherror.ErrEmailExists):
		return fiber.StatusConflict
	case errors.Is(err, autherror.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, autherror.ErrStorageUnavailable):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, bcrypt.ErrPasswordTooLong), errors.As(err, &verrs):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

func messageFor(err error, status int) string {
	switch {
	case errors.Is(err, autherror.ErrInvalidToken):
		return msgInvalidToken
	case errors.Is(err, autherror.ErrInvalidCredentials):
		return msgInvalidCredentials
	case errors.Is(err, bcrypt.ErrPasswordTooLong):
		return "password must be at most 72 bytes"
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return validationMessage(verrs)
	}
	var de *autherror.DomainError
	if errors.As(err, &de) {
		return de.Detail()
	}
	if status >= fiber.StatusInternalServerError {
		return msgInternal
	}
	return err.Error()
}

// respondError writes {"error": msg}. Every 401 carries the bearer challenge.
func respondError(c *fiber.Ctx, logger logging.Logger, err error) error {
	status := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		logger.Error(c.UserContext(), "request failed",
			"method", c.Method(), "path", c.Path(), "status", status, "error", err)
	}
	return writeError(c, status, messageFor(err, status))
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	if status == fiber.StatusUnauthorized {
		c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	}
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

func validationMessage(verrs validator.ValidationErrors) string {
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			parts = append(parts, field+" is required")
		case "email":
			parts = append(parts, field+" must be a valid email address")
		case "min":
			parts = append(parts, fmt.Sprintf("%s must be at least %s characters", field, fe.Param()))
		case "max":
			parts = append(parts, fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
		default:
			parts = append(parts, fmt.Sprintf("%s failed %s validation", field, fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}
