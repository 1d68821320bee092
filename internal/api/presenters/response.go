package presenters

import (
	"cookbook-backend/domain"
	"cookbook-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Response struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func SuccessResponse(c *fiber.Ctx, data any, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *fiber.Ctx, statusCode int, message string, err error) error {
	res := Response{
		Status:  false,
		Message: message,
	}
	if err != nil {
		res.Error = err.Error()
	}
	return c.Status(statusCode).JSON(res)
}

// HandleError writes a ClientError with its own status and message. Any other
// error is logged and reported as a generic 500.
func HandleError(c *fiber.Ctx, message string, err error) error {
	if ce, ok := domain.IsClientError(err); ok {
		return ErrorResponse(c, ce.Status, message, ce)
	}

	utils.Logger.Error(message,
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	return c.Status(fiber.StatusInternalServerError).JSON(Response{
		Status:  false,
		Message: message,
		Error:   domain.MessageInternalError,
	})
}
