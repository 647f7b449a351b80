package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	_ "github.com/joho/godotenv/autoload"
	"github.com/jonboulle/clockwork"

	"github.com/samirrijal/pmrmap/internal/adapters/geofile"
	"github.com/samirrijal/pmrmap/internal/adapters/http"
	"github.com/samirrijal/pmrmap/internal/core/usecases"
	"github.com/samirrijal/pmrmap/internal/pkg/config"
	"github.com/samirrijal/pmrmap/internal/pkg/logging"
	"github.com/samirrijal/pmrmap/internal/pkg/telemetry"
)

var version = "dev"

func main() {
	cfg, err := config.Load("pmrmap-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Structured logging
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.TempoAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	// Sources
	source := geofile.NewSource()

	// Use cases
	geoDataSvc := usecases.NewGeoDataService(source, cfg.Path(cfg.Data.GeoJSON))
	dashboardSvc := usecases.NewDashboardService(source, usecases.DashboardOptions{
		PointsPath:         cfg.Path(cfg.Dashboard.Points),
		EstablishmentsPath: cfg.Path(cfg.Dashboard.Establishments),
		Zoom:               cfg.Dashboard.Zoom,
		Title:              cfg.Dashboard.Title,
	})

	deps := &http.Dependencies{
		GeoData:     geoDataSvc,
		Dashboard:   dashboardSvc,
		FrontendDir: cfg.Path(cfg.Frontend.Dir),
		DocsPath:    cfg.Path("api/openapi.yaml"),
		Version:     version,
		Clock:       clockwork.NewRealClock(),
	}

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    1024 * 1024, // 1 MB max request body
		AppName:      "PMR Map API",
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CORSOrigins,
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: false,
		MaxAge:           3600,
	}))

	http.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting",
			"addr", addr,
			"geodata", geoDataSvc.Path(),
			"dashboard", dashboardSvc.Paths(),
		)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	// Give in-flight requests up to 10s to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}
