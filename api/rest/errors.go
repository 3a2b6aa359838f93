package rest

import (
	"context"
	"enhancer/api/model"
	"errors"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"time"
)

// ErrorHandler funnels every failure into one JSON error body plus one
// status code. Responses with headers already written are left alone.
func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		message := "Internal server error"

		var appErr *model.Error
		var fiberErr *fiber.Error

		switch {
		case errors.As(err, &appErr):
			status = appErr.Kind.Status()
			message = appErr.Message
		case errors.Is(err, context.DeadlineExceeded):
			status = fiber.StatusServiceUnavailable
			message = "Request timed out, please try again"
		case errors.As(err, &fiberErr):
			status = fiberErr.Code
			message = fiberErr.Message
		}

		logger.Error("Request failed", zap.Int("status", status), zap.Error(err))

		if c.Response().Header.ContentLength() > 0 {
			// body already on the wire, appending JSON would corrupt it
			return nil
		}

		return c.Status(status).JSON(model.ErrorResponse{
			Success:   false,
			Message:   message,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	}
}
