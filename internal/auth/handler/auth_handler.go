package handler

import (
	"errors"

	"github.com/AnthoniusHendriyanto/user-service/internal/auth/dto"
	"github.com/AnthoniusHendriyanto/user-service/internal/auth/service"
	autherror "github.com/AnthoniusHendriyanto/user-service/internal/errors"
	"github.com/AnthoniusHendriyanto/user-service/internal/logging"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	userService *service.UserService
	validate    *validator.Validate
	logger      logging.Logger
}

func NewAuthHandler(userService *service.UserService, validate *validator.Validate, logger logging.Logger) *AuthHandler {
	return &AuthHandler{userService: userService, validate: validate, logger: logger}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input dto.RegisterInput
	if ok, err := bind(c, h.validate, &input); !ok {
		return err
	}

	user, err := h.userService.Register(c.UserContext(), input)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewUserOutput(user))
}

// Login accepts either an urlencoded password form or a JSON body.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if ok, err := bind(c, h.validate, &input); !ok {
		return err
	}
	if input.Identifier() == "" {
		return writeError(c, fiber.StatusUnprocessableEntity, "username is required")
	}

	tokens, err := h.userService.Login(c.UserContext(), input)
	if err != nil {
		if errors.Is(err, autherror.ErrInvalidCredentials) {
			h.logger.Info(c.UserContext(), "login rejected", "ip", c.IP())
		}
		return respondError(c, h.logger, err)
	}

	return c.Status(fiber.StatusOK).JSON(tokens)
}
