package http

import (
	"errors"
	"io/fs"
	"os"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler returns a basic liveness check.
func HealthHandler(deps *Dependencies) fiber.Handler {
	clock := deps.clock()
	startedAt := clock.Now()

	version := deps.Version
	if version == "" {
		version = "dev"
	}

	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"uptime":  clock.Since(startedAt).String(),
			"version": version,
		})
	}
}

// ReadyHandler checks that every input file is present. The dashboard cache
// state is reported but does not affect readiness.
func ReadyHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		checks := make(map[string]string)
		allOK := true

		files := map[string]string{}
		if deps.GeoData != nil {
			files["geodata"] = deps.GeoData.Path()
		}
		if deps.Dashboard != nil {
			paths := deps.Dashboard.Paths()
			files["dashboard_points"] = paths[0]
			files["dashboard_establishments"] = paths[1]
		}

		for name, path := range files {
			if status := fileStatus(path); status != "ok" {
				checks[name] = status
				allOK = false
			} else {
				checks[name] = "ok"
			}
		}

		if deps.Dashboard != nil {
			if deps.Dashboard.Loaded() {
				checks["dashboard_cache"] = "loaded"
			} else {
				checks["dashboard_cache"] = "cold"
			}
		}

		status := "ready"
		code := 200
		if !allOK {
			status = "not ready"
			code = 503
		}

		return c.Status(code).JSON(fiber.Map{
			"status": status,
			"checks": checks,
		})
	}
}

func fileStatus(path string) string {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "missing: " + path
	case err != nil:
		return "error: " + err.Error()
	case info.IsDir():
		return "not a file: " + path
	}
	return "ok"
}
