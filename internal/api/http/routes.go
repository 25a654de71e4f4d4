package httpapi

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-backend/internal/scheduler"
	"github.com/i474232898/weather-backend/internal/validation"
	"github.com/i474232898/weather-backend/internal/weather"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their query parameter name.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("query"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// ProbeReporter exposes the latest upstream probe result.
type ProbeReporter interface {
	Status() scheduler.ProbeStatus
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
// probe may be nil when the upstream probe is disabled.
func RegisterRoutes(app *fiber.App, service *weather.Service, probe ProbeReporter) {
	app.Get("/health", func(c *fiber.Ctx) error {
		body := fiber.Map{
			"status":  "ok",
			"service": "weather-backend",
		}
		if probe != nil {
			body["upstream"] = probe.Status()
		}
		return c.JSON(body)
	})

	api := app.Group("/api/weather")

	api.Get("/7-day-forecast", func(c *fiber.Ctx) error {
		lat, lon, err := parseCoordinates(c)
		if err != nil {
			return err
		}

		days, err := service.Get7DayForecast(c.UserContext(), lat, lon)
		if err != nil {
			return err
		}

		return c.JSON(fiber.Map{
			"days":        days,
			"daily_units": service.DailyUnits(),
		})
	})

	api.Get("/weekly-summary", func(c *fiber.Ctx) error {
		lat, lon, err := parseCoordinates(c)
		if err != nil {
			return err
		}

		summary, err := service.GetWeekSummary(c.UserContext(), lat, lon)
		if err != nil {
			return err
		}

		return c.JSON(fiber.Map{
			"weekly_summary":       summary,
			"weekly_summary_units": service.WeeklySummaryUnits(),
		})
	})
}

// coordinateQuery holds the raw query parameters identifying a location.
type coordinateQuery struct {
	Latitude  string `query:"latitude" validate:"required"`
	Longitude string `query:"longitude" validate:"required"`
}

func parseCoordinates(c *fiber.Ctx) (float64, float64, error) {
	q := coordinateQuery{
		Latitude:  c.Query("latitude"),
		Longitude: c.Query("longitude"),
	}

	if err := validate.Struct(q); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return 0, 0, weather.NewInvalidInput(
				fmt.Sprintf("Missing required parameter: '%s'.", verrs[0].Field()))
		}
		return 0, 0, weather.NewInvalidInput(err.Error())
	}

	return validation.Coordinates(q.Latitude, q.Longitude)
}
