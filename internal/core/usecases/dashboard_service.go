package usecases

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/paulmach/orb/geojson"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/samirrijal/pmrmap/internal/core/domain"
	"github.com/samirrijal/pmrmap/internal/core/ports"
	"github.com/samirrijal/pmrmap/internal/pkg/geospatial"
	"github.com/samirrijal/pmrmap/internal/pkg/memo"
	"github.com/samirrijal/pmrmap/internal/pkg/metrics"
	"github.com/samirrijal/pmrmap/internal/pkg/plotly"
	"github.com/samirrijal/pmrmap/internal/pkg/telemetry"
)

// DashboardOptions locates the dashboard inputs and fixes the map layout.
type DashboardOptions struct {
	PointsPath         string
	EstablishmentsPath string
	Zoom               float64
	Title              string
}

// DashboardService loads the two dashboard tables once per process and
// renders the map figure from them.
type DashboardService struct {
	source ports.FeatureSource
	opts   DashboardOptions
	cache  memo.Once[*domain.DashboardData]
}

// NewDashboardService creates a DashboardService.
func NewDashboardService(source ports.FeatureSource, opts DashboardOptions) *DashboardService {
	return &DashboardService{source: source, opts: opts}
}

// Paths lists the files the dashboard depends on.
func (s *DashboardService) Paths() []string {
	return []string{s.opts.PointsPath, s.opts.EstablishmentsPath}
}

// Loaded reports whether the cached load has run.
func (s *DashboardService) Loaded() bool {
	return s.cache.Loaded()
}

// Data returns the cached dashboard data, loading it on first use. A failed
// load is returned to every later caller until the process restarts.
func (s *DashboardService) Data(ctx context.Context) (*domain.DashboardData, error) {
	return s.cache.Get(context.WithoutCancel(ctx), s.Load)
}

// Load reads both tables from disk, bypassing the cache.
func (s *DashboardService) Load(ctx context.Context) (*domain.DashboardData, error) {
	ctx, span := telemetry.Tracer().Start(ctx, telemetry.SpanDashboardLoad)
	defer span.End()

	data, stats, err := s.load(ctx)
	metrics.DashboardLoads.WithLabelValues(outcome(err)).Inc()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		slog.ErrorContext(ctx, "dashboard load failed", "error", err)
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("dashboard.points", len(data.Points)),
		attribute.Int("dashboard.establishments", len(data.Establishments)),
	)
	slog.InfoContext(ctx, "dashboard data loaded",
		"points", len(data.Points),
		"establishments", len(data.Establishments),
		"unclassified", stats.unclassified,
		"without_geometry", stats.withoutGeometry,
	)
	return data, nil
}

// loadStats counts the input rows that were not drawn as read.
type loadStats struct {
	unclassified    int
	withoutGeometry int
}

func (s *DashboardService) load(ctx context.Context) (*domain.DashboardData, loadStats, error) {
	var stats loadStats

	pointsFC, err := s.read(ctx, s.opts.PointsPath)
	if err != nil {
		return nil, stats, err
	}
	establishmentsFC, err := s.read(ctx, s.opts.EstablishmentsPath)
	if err != nil {
		return nil, stats, err
	}

	points, unclassified, skippedPoints := accessPoints(pointsFC)
	if unclassified > 0 {
		slog.WarnContext(ctx, "points without a valid priority class",
			"path", s.opts.PointsPath, "count", unclassified)
	}
	if skippedPoints > 0 {
		slog.WarnContext(ctx, "features without geometry skipped",
			"path", s.opts.PointsPath, "count", skippedPoints)
	}

	ests, skippedEsts := establishments(establishmentsFC)
	if skippedEsts > 0 {
		slog.WarnContext(ctx, "features without geometry skipped",
			"path", s.opts.EstablishmentsPath, "count", skippedEsts)
	}

	stats.unclassified = unclassified
	stats.withoutGeometry = skippedPoints + skippedEsts
	return &domain.DashboardData{
		Points:         points,
		Establishments: ests,
	}, stats, nil
}

func (s *DashboardService) read(ctx context.Context, path string) (*geojson.FeatureCollection, error) {
	fc, err := s.source.ReadFeatures(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("load dashboard: %w", err)
	}
	fc, err = geospatial.ToWGS84(fc)
	if err != nil {
		return nil, fmt.Errorf("load dashboard %s: %w", path, err)
	}
	return fc, nil
}

// Figure renders the map coloured by field from the cached data.
func (s *DashboardService) Figure(ctx context.Context, field domain.ColorField) (*plotly.Figure, error) {
	if _, err := domain.ParseColorField(string(field)); err != nil {
		return nil, err
	}

	ctx, span := telemetry.Tracer().Start(ctx, telemetry.SpanDashboardFigure)
	defer span.End()
	span.SetAttributes(attribute.String("dashboard.color_by", string(field)))

	data, err := s.Data(ctx)
	if err != nil {
		return nil, err
	}

	metrics.DashboardRenders.WithLabelValues(string(field)).Inc()
	return BuildFigure(data, field, FigureOptions{Title: s.opts.Title, Zoom: s.opts.Zoom}), nil
}

// accessPoints converts features to points. Rows whose class cannot be read
// are kept as unclassified and counted. Rows without geometry are dropped
// and counted.
func accessPoints(fc *geojson.FeatureCollection) (out []domain.AccessPoint, unclassified, skipped int) {
	out = make([]domain.AccessPoint, 0, len(fc.Features))
	for _, f := range fc.Features {
		loc, ok := geospatial.PointOf(f.Geometry)
		if !ok {
			skipped++
			continue
		}
		priority, err := domain.ParsePriorityClass(f.Properties[domain.PropPriority])
		if err != nil {
			unclassified++
		}
		access, _ := domain.ParsePriorityClass(f.Properties[domain.PropAccessPriority])

		out = append(out, domain.AccessPoint{
			Name:           textProp(f.Properties, domain.PropName),
			Location:       loc,
			Priority:       priority,
			AccessPriority: access,
		})
	}
	return out, unclassified, skipped
}

func establishments(fc *geojson.FeatureCollection) (out []domain.Establishment, skipped int) {
	out = make([]domain.Establishment, 0, len(fc.Features))
	for _, f := range fc.Features {
		loc, ok := geospatial.PointOf(f.Geometry)
		if !ok {
			skipped++
			continue
		}
		out = append(out, domain.Establishment{
			Label:    textProp(f.Properties, domain.PropLabel),
			Type:     domain.EstablishmentType(textProp(f.Properties, domain.PropType)),
			Location: loc,
		})
	}
	return out, skipped
}

func textProp(p geojson.Properties, key string) string {
	switch v := p[key].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
