package usecases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/samirrijal/pmrmap/internal/core/domain"
	"github.com/samirrijal/pmrmap/internal/core/ports"
	"github.com/samirrijal/pmrmap/internal/pkg/geospatial"
	"github.com/samirrijal/pmrmap/internal/pkg/metrics"
	"github.com/samirrijal/pmrmap/internal/pkg/telemetry"
)

// GeoDataService serves the accessibility geo-data file as WGS84 GeoJSON.
type GeoDataService struct {
	source ports.FeatureSource
	path   string
}

// NewGeoDataService creates a GeoDataService reading path through source.
func NewGeoDataService(source ports.FeatureSource, path string) *GeoDataService {
	return &GeoDataService{source: source, path: path}
}

// Path is the file the service reads.
func (s *GeoDataService) Path() string {
	return s.path
}

// Load reads the file, reprojects it to WGS84 and returns the encoded
// document. Nothing is cached: every call sees the file as it is on disk.
func (s *GeoDataService) Load(ctx context.Context) ([]byte, error) {
	ctx, span := telemetry.Tracer().Start(ctx, telemetry.SpanGeoDataLoad)
	defer span.End()
	span.SetAttributes(attribute.String("geodata.path", s.path))

	start := time.Now()
	body, err := s.load(ctx)
	metrics.GeoDataLoadDuration.Observe(time.Since(start).Seconds())
	metrics.GeoDataLoads.WithLabelValues(outcome(err)).Inc()

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		slog.WarnContext(ctx, "geodata load failed", "path", s.path, "error", err)
		return nil, err
	}
	return body, nil
}

func (s *GeoDataService) load(ctx context.Context) ([]byte, error) {
	fc, err := s.source.ReadFeatures(ctx, s.path)
	if err != nil {
		return nil, fmt.Errorf("load geodata: %w", err)
	}

	fc, err = geospatial.ToWGS84(fc)
	if err != nil {
		return nil, fmt.Errorf("load geodata %s: %w", s.path, err)
	}

	body, err := fc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("load geodata %s: %w: %v", s.path, domain.ErrSerialization, err)
	}
	return body, nil
}

// outcome maps an error to the metrics outcome label.
func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, domain.ErrNotFound):
		return metrics.OutcomeMissing
	default:
		return metrics.OutcomeError
	}
}
