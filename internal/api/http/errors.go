package httpapi

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/i474232898/weather-backend/internal/weather"
)

// ErrorHandler renders every handler error as {"error": <status text>, "message": <text>}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var (
		invalid     *weather.InvalidInputError
		unavailable *weather.DataUnavailableError
		fiberErr    *fiber.Error
	)

	code := fiber.StatusInternalServerError
	message := "failed to process weather request"

	switch {
	case errors.As(err, &invalid):
		code = fiber.StatusBadRequest
		message = invalid.Message
	case errors.As(err, &unavailable):
		code = fiber.StatusNotFound
		message = unavailable.Message
		slog.Warn("weather data unavailable",
			"path", c.Path(),
			"request_id", requestID(c),
			"err", unavailable.Err,
		)
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
		message = fiberErr.Message
	}

	if code >= fiber.StatusInternalServerError {
		slog.Error("request failed", "path", c.Path(), "request_id", requestID(c), "err", err)
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   utils.StatusMessage(code),
		"message": message,
	})
}

func requestID(c *fiber.Ctx) string {
	id, _ := c.Locals("requestid").(string)
	return id
}
