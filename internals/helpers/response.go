package helper

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Success response without custom code (default 200)
func Success(c *fiber.Ctx, message string, data interface{}) error {
	return SuccessWithCode(c, fiber.StatusOK, message, data)
}

// Success response with custom code (e.g. 201 for created)
func SuccessWithCode(c *fiber.Ctx, code int, message string, data interface{}) error {
	return c.Status(code).JSON(fiber.Map{
		"code":    code,
		"status":  "success",
		"message": message,
		"data":    data,
	})
}

// Plain error response
func Error(c *fiber.Ctx, code int, message string) error {
	return c.Status(code).JSON(fiber.Map{
		"code":    code,
		"status":  "error",
		"message": message,
	})
}

// ErrorWithCode carries a machine-readable error code so API clients
// can branch on the outcome instead of matching message strings.
func ErrorWithCode(c *fiber.Ctx, code int, errCode string, message string) error {
	return c.Status(code).JSON(fiber.Map{
		"code":    code,
		"status":  "error",
		"error":   errCode,
		"message": message,
	})
}

// ErrorWithDetails attaches structured detail (e.g. which subject is short)
func ErrorWithDetails(c *fiber.Ctx, code int, errCode string, message string, details interface{}) error {
	return c.Status(code).JSON(fiber.Map{
		"code":    code,
		"status":  "error",
		"error":   errCode,
		"message": message,
		"details": details,
	})
}

// Validation errors (validator.v10)
func ValidationError(c *fiber.Ctx, err error) error {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return ErrorWithCode(c, fiber.StatusBadRequest, "bad_request", "Invalid input")
	}

	errorsMap := make(map[string]string)
	for _, fieldErr := range ve {
		errorsMap[fieldErr.Field()] = fieldErr.Tag()
	}

	return ErrorWithDetails(c, fiber.StatusBadRequest, "validation_failed", "Validation failed", errorsMap)
}

// ValidationErrorWithCode is ValidationError with a caller-chosen error code
// (the candidate start flow reports missing_candidate_info, not validation_failed).
func ValidationErrorWithCode(c *fiber.Ctx, errCode string, err error) error {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return ErrorWithCode(c, fiber.StatusBadRequest, errCode, "Invalid input")
	}
	errorsMap := make(map[string]string)
	for _, fieldErr := range ve {
		errorsMap[fieldErr.Field()] = fieldErr.Tag()
	}
	return ErrorWithDetails(c, fiber.StatusBadRequest, errCode, "Validation failed", errorsMap)
}
