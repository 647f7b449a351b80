package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/pmrmap/internal/core/domain"
)

// DataHandler serves the geo-data file as WGS84 GeoJSON. The file is read
// again on every request. Failures answer 500 with {"error": message}.
func DataHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		body, err := deps.GeoData.Load(c.UserContext())
		if err != nil {
			LoggerFromCtx(c.UserContext()).Error("serve geodata", "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}

		c.Set("Cache-Control", "no-cache")
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(body)
	}
}

// DashboardFigureHandler returns the Plotly figure for ?color_by=.
func DashboardFigureHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		field, err := colorField(c)
		if err != nil {
			return errBadRequest(c, err.Error())
		}

		fig, err := deps.Dashboard.Figure(c.UserContext(), field)
		if err != nil {
			return errFromDomain(c, err)
		}
		return c.JSON(fig)
	}
}

// colorField reads ?color_by=, defaulting to the overall priority.
func colorField(c *fiber.Ctx) (domain.ColorField, error) {
	raw := c.Query("color_by")
	if raw == "" {
		return domain.ColorByPriority, nil
	}
	return domain.ParseColorField(raw)
}
