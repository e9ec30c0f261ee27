package handler

import (
	"strconv"

	"github.com/AnthoniusHendriyanto/user-service/internal/auth/dto"
	"github.com/AnthoniusHendriyanto/user-service/internal/auth/service"
	autherror "github.com/AnthoniusHendriyanto/user-service/internal/errors"
	"github.com/AnthoniusHendriyanto/user-service/internal/logging"
	authconstant "github.com/AnthoniusHendriyanto/user-service/pkg/constant"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler serves the self-service user routes. Every route runs behind
// RequireAuth, and a caller may only touch its own record.
type UserHandler struct {
	userService *service.UserService
	validate    *validator.Validate
	logger      logging.Logger
}

func NewUserHandler(userService *service.UserService, validate *validator.Validate, logger logging.Logger) *UserHandler {
	return &UserHandler{userService: userService, validate: validate, logger: logger}
}

func (h *UserHandler) Me(c *fiber.Ctx) error {
	current, ok := CurrentUser(c)
	if !ok {
		return writeError(c, fiber.StatusUnauthorized, msgNotAuthenticated)
	}
	return c.JSON(dto.NewUserOutput(current))
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, ok, err := h.ownID(c, "user profile")
	if !ok {
		return err
	}

	user, err := h.userService.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(dto.NewUserOutput(user))
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	skip, err := queryInt(c, "skip", authconstant.DefaultListSkip)
	if err != nil || skip < 0 {
		return writeError(c, fiber.StatusUnprocessableEntity, "skip must be a non-negative integer")
	}
	limit, err := queryInt(c, "limit", authconstant.DefaultListLimit)
	if err != nil || limit < 1 || limit > authconstant.MaxListLimit {
		return writeError(c, fiber.StatusUnprocessableEntity,
			"limit must be an integer between 1 and "+strconv.Itoa(authconstant.MaxListLimit))
	}

	users, err := h.userService.List(c.UserContext(), skip, limit)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(dto.NewUserOutputs(users))
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, ok, err := h.ownID(c, "user profile")
	if !ok {
		return err
	}

	var input dto.UpdateUserInput
	if ok, err := bind(c, h.validate, &input); !ok {
		return err
	}

	user, err := h.userService.Update(c.UserContext(), id, input)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(dto.NewUserOutput(user))
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, ok, err := h.ownID(c, "user account")
	if !ok {
		return err
	}

	if err := h.userService.Delete(c.UserContext(), id); err != nil {
		return respondError(c, h.logger, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ownID parses :id and checks it against the caller before anything is
// fetched.
func (h *UserHandler) ownID(c *fiber.Ctx, resource string) (int64, bool, error) {
	current, ok := CurrentUser(c)
	if !ok {
		return 0, false, writeError(c, fiber.StatusUnauthorized, msgNotAuthenticated)
	}
	id, ok, err := pathID(c)
	if !ok {
		return 0, false, err
	}
	if id != current.ID {
		return 0, false, respondError(c, h.logger, autherror.Forbidden(resource))
	}
	return id, true, nil
}

func queryInt(c *fiber.Ctx, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
