package helper

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

// FromFiberError turns an error bubbling out of a service/Transaction
// (usually *fiber.Error) into the consistent JSON envelope.
// Anything else is an unexpected failure: logged and masked as 500.
func FromFiberError(c *fiber.Ctx, err error) error {
	if fe, ok := err.(*fiber.Error); ok {
		return Error(c, fe.Code, fe.Message)
	}
	log.Printf("[ERROR] internal: %v", err)
	return ErrorWithCode(c, fiber.StatusInternalServerError, "internal", "Internal server error")
}
