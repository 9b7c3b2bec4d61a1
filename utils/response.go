package utils

import (
	"fastfast-logistics/apperror"
	"fastfast-logistics/logger"
	"fastfast-logistics/types"

	"github.com/gofiber/fiber/v2"
)

// SendError writes the error body for err. Internal failures are logged
// with their cause and reported to the client as a generic 500.
func SendError(c *fiber.Ctx, err error) error {
	status := apperror.StatusCode(err)
	if status == fiber.StatusInternalServerError {
		logger.Error(c.Method()+" "+c.Path()+" failed", err)
	}
	return c.Status(status).JSON(types.ErrorResponse{
		Error:  apperror.PublicMessage(err),
		Status: status,
	})
}

// SendBadRequest is used for bodies that fail to parse.
func SendBadRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
		Error:  message,
		Status: fiber.StatusBadRequest,
	})
}

func SendSuccess(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(types.ApiResponse{
		Message: message,
		Status:  status,
		Data:    data,
	})
}
