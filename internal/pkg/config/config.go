package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Data      DataConfig      `mapstructure:"data"`
	Frontend  FrontendConfig  `mapstructure:"frontend"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
	Log       LogConfig       `mapstructure:"log"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

type ServerConfig struct {
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`
	WriteTimeout int    `mapstructure:"write_timeout"`
	CORSOrigins  string `mapstructure:"cors_origins"`
}

// DataConfig locates the input files. Relative paths are resolved against Root.
type DataConfig struct {
	Root    string `mapstructure:"root"`
	GeoJSON string `mapstructure:"geojson"`
}

type FrontendConfig struct {
	Dir string `mapstructure:"dir"`
}

type DashboardConfig struct {
	Points         string  `mapstructure:"points"`
	Establishments string  `mapstructure:"establishments"`
	Zoom           float64 `mapstructure:"zoom"`
	Title          string  `mapstructure:"title"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type TelemetryConfig struct {
	ServiceName string `mapstructure:"service_name"`
	TempoAddr   string `mapstructure:"tempo_addr"`
	Enabled     bool   `mapstructure:"enabled"`
}

// Path resolves p against the data root. Absolute paths are returned as is.
func (c *Config) Path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Data.Root, p)
}

// Load reads configuration from file and environment variables.
func Load(service string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.cors_origins", "*")
	v.SetDefault("data.root", ".")
	v.SetDefault("data.geojson", "data/data_pmr.geojson")
	v.SetDefault("frontend.dir", "frontend")
	v.SetDefault("dashboard.points", "data/data_pmr.parquet")
	v.SetDefault("dashboard.establishments", "data/etablissements.geojson")
	v.SetDefault("dashboard.zoom", 11)
	v.SetDefault("dashboard.title", "Accessibilité PMR des gares")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("telemetry.service_name", service)
	v.SetDefault("telemetry.tempo_addr", "tempo:4317")
	v.SetDefault("telemetry.enabled", false)

	// Config file (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	_ = v.ReadInConfig() // OK if missing

	// Environment variables: PMRMAP_DATA_ROOT → data.root
	v.SetEnvPrefix("PMRMAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, "server.read_timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, "server.write_timeout must be positive")
	}
	if c.Data.GeoJSON == "" {
		errs = append(errs, "data.geojson is required")
	}
	if c.Frontend.Dir == "" {
		errs = append(errs, "frontend.dir is required")
	}
	if c.Dashboard.Points == "" {
		errs = append(errs, "dashboard.points is required")
	}
	if c.Dashboard.Establishments == "" {
		errs = append(errs, "dashboard.establishments is required")
	}
	if c.Dashboard.Zoom < 0 || c.Dashboard.Zoom > 22 {
		errs = append(errs, fmt.Sprintf("dashboard.zoom must be 0-22, got %g", c.Dashboard.Zoom))
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Sprintf("log.format must be json or text, got %q", c.Log.Format))
	}
	if c.Telemetry.Enabled && c.Telemetry.TempoAddr == "" {
		errs = append(errs, "telemetry.tempo_addr is required when telemetry is enabled")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
