package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// NewValidator returns the validator shared by all handlers.
func NewValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

// bind parses the request body into out and validates it. It returns
// false after writing the error response itself.
func bind(c *fiber.Ctx, v *validator.Validate, out any) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return false, writeError(c, fiber.StatusBadRequest, msgInvalidBody)
	}
	if err := v.Struct(out); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			return false, writeError(c, fiber.StatusUnprocessableEntity, validationMessage(verrs))
		}
		return false, writeError(c, fiber.StatusBadRequest, msgInvalidBody)
	}
	return true, nil
}

// pathID reads the :id parameter. Non-numeric ids are a validation failure.
func pathID(c *fiber.Ctx) (int64, bool, error) {
	id, err := c.ParamsInt("id")
	if err != nil {
		return 0, false, writeError(c, fiber.StatusUnprocessableEntity, "id must be an integer")
	}
	return int64(id), true, nil
}
