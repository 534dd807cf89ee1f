package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jmswright/fieldlog/internal/services"
)

var errInvalidInput = errors.New("Invalid input")

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"statusCode":    status,
		"statusMessage": message,
	})
}

func statusForKind(kind services.ErrorKind) int {
	switch kind {
	case services.KindValidation:
		return fiber.StatusBadRequest
	case services.KindUnauthorized:
		return fiber.StatusUnauthorized
	case services.KindNotFound:
		return fiber.StatusNotFound
	case services.KindConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// respondDomainError maps domain outcomes onto status codes; anything
// untagged is an infrastructure failure and stays generic.
func respondDomainError(c *fiber.Ctx, err error) error {
	if kind, tagged := services.KindOf(err); tagged {
		return apiError(c, statusForKind(kind), err.Error())
	}
	return apiError(c, fiber.StatusInternalServerError, "Internal server error")
}

func sendSuccess(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true})
}
