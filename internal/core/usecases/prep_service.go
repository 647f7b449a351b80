package usecases

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samirrijal/pmrmap/internal/core/domain"
	"github.com/samirrijal/pmrmap/internal/core/ports"
	"github.com/samirrijal/pmrmap/internal/pkg/geospatial"
	"github.com/samirrijal/pmrmap/internal/pkg/telemetry"
)

// PrepRequest describes one station preparation run.
type PrepRequest struct {
	StationsPath string
	Coords       domain.CoordColumns

	// AttributesPath is optional. When set, its rows are joined onto the
	// stations on the cleaned names in StationKey and AttributeKey.
	AttributesPath string
	StationKey     string
	AttributeKey   string

	OutPath string
}

// PrepResult is what a run produced.
type PrepResult struct {
	Features int
	Join     *geospatial.JoinReport
}

// PrepService turns a station table into the GeoJSON file the data server reads.
type PrepService struct {
	frames ports.FrameSource
	sink   ports.FeatureSink
}

// NewPrepService creates a PrepService.
func NewPrepService(frames ports.FrameSource, sink ports.FeatureSink) *PrepService {
	return &PrepService{frames: frames, sink: sink}
}

// Run reads the stations, builds their points, joins the attributes if any
// and writes the result.
func (s *PrepService) Run(ctx context.Context, req PrepRequest) (*PrepResult, error) {
	if req.StationsPath == "" || req.OutPath == "" {
		return nil, fmt.Errorf("prep: %w: stations and output paths are required", domain.ErrValidation)
	}
	if req.AttributesPath != "" && (req.StationKey == "" || req.AttributeKey == "") {
		return nil, fmt.Errorf("prep: %w: joining attributes needs both key columns", domain.ErrValidation)
	}

	ctx, span := telemetry.Tracer().Start(ctx, telemetry.SpanPrepRun)
	defer span.End()

	stations, err := s.frames.ReadFrame(ctx, req.StationsPath)
	if err != nil {
		return nil, fmt.Errorf("prep: %w", err)
	}

	gf, err := geospatial.ToGeoFrame(stations, req.Coords)
	if err != nil {
		return nil, fmt.Errorf("prep %s: %w", req.StationsPath, err)
	}

	result := &PrepResult{}
	if req.AttributesPath != "" {
		attrs, err := s.frames.ReadFrame(ctx, req.AttributesPath)
		if err != nil {
			return nil, fmt.Errorf("prep: %w", err)
		}
		joined, report, err := geospatial.JoinOnCleanName(gf, attrs, req.StationKey, req.AttributeKey)
		if err != nil {
			return nil, fmt.Errorf("prep %s: %w", req.AttributesPath, err)
		}
		gf = joined
		result.Join = &report

		slog.InfoContext(ctx, "attributes joined",
			"matched", report.Matched,
			"unmatched", report.Unmatched,
		)
		if report.Unmatched > 0 {
			slog.WarnContext(ctx, "stations without attributes", "names", report.Missing)
		}
	}

	if err := s.sink.WriteFeatures(ctx, req.OutPath, gf.FeatureCollection()); err != nil {
		return nil, fmt.Errorf("prep: %w", err)
	}
	result.Features = len(gf.Rows)

	span.SetAttributes(attribute.Int("prep.features", result.Features))
	slog.InfoContext(ctx, "stations written", "path", req.OutPath, "features", result.Features)
	return result, nil
}
