package httpapi

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/alissonpef/Hydraulic-Monitoring-System/internal/store"
	"github.com/alissonpef/Hydraulic-Monitoring-System/internal/tank"
)

var validate = validator.New()

// RegisterRoutes wires the read-only dashboard handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *tank.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/dashboard", func(c *fiber.Ctx) error {
		return c.JSON(service.Dashboard(c.UserContext()))
	})

	v1.Get("/readings/latest", func(c *fiber.Ctx) error {
		reading, err := service.Latest()
		if err != nil {
			if errors.Is(err, tank.ErrNoReading) {
				return fiber.NewError(fiber.StatusNotFound, "no reading received yet for marker "+service.Marker())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read latest reading")
		}
		return c.JSON(fiber.Map{
			"marker":  service.Marker(),
			"reading": reading,
			"volumeL": service.Volume(),
		})
	})

	v1.Get("/physics", func(c *fiber.Ctx) error {
		return c.JSON(service.Physics())
	})

	v1.Get("/physics/:quantity", func(c *fiber.Ctx) error {
		name := c.Params("quantity")
		result, ok := service.Quantity(name)
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "unknown quantity: "+name)
		}
		return c.JSON(result)
	})

	v1.Get("/tank", func(c *fiber.Ctx) error {
		return c.JSON(service.Gauge())
	})

	v1.Get("/history", func(c *fiber.Ctx) error {
		var q historyQuery
		q.Metric = c.Query("metric")
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if q.Metric == "" {
			return c.JSON(service.Histories())
		}

		metric, err := store.ParseMetric(q.Metric)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		points, err := service.History(metric)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read history")
		}
		return c.JSON(fiber.Map{
			"metric": metric,
			"points": points,
		})
	})

	v1.Get("/status", func(c *fiber.Ctx) error {
		return c.JSON(service.Status(c.UserContext()))
	})
}

// ErrorHandler renders every handler error as {"error": true, "message": ...}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}

// historyQuery holds query parameters for the history endpoint. An empty
// metric returns every series.
type historyQuery struct {
	Metric string `validate:"omitempty,oneof=flow level temperature"`
}
