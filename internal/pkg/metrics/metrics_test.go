package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_CountsRequests(t *testing.T) {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(Middleware())
	app.Get("/data", func(c *fiber.Ctx) error { return c.SendString("{}") })

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/data", "200"))

	resp, err := app.Test(httptest.NewRequest("GET", "/data", nil), -1)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/data", "200"))
	assert.Equal(t, before+1, after)
}

func TestHandler_ExposesDomainMetrics(t *testing.T) {
	GeoDataLoads.WithLabelValues(OutcomeMissing).Inc()
	DashboardRenders.WithLabelValues("priority").Inc()

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Get("/metrics", Handler())

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil), -1)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	text := string(body)
	assert.True(t, strings.Contains(text, `pmrmap_geodata_loads_total{outcome="missing"}`))
	assert.True(t, strings.Contains(text, `pmrmap_dashboard_renders_total{color_by="priority"}`))
}
