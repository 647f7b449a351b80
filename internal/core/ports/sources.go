package ports

import (
	"context"

	"github.com/paulmach/orb/geojson"

	"github.com/samirrijal/pmrmap/internal/core/domain"
)

// FeatureSource reads a geo-data file into a feature collection. A missing
// file is reported as domain.ErrNotFound before any read is attempted.
type FeatureSource interface {
	ReadFeatures(ctx context.Context, path string) (*geojson.FeatureCollection, error)
}

// FeatureSink writes a feature collection to a geo-data file.
type FeatureSink interface {
	WriteFeatures(ctx context.Context, path string, fc *geojson.FeatureCollection) error
}

// FrameSource reads a tabular file into a frame.
type FrameSource interface {
	ReadFrame(ctx context.Context, path string) (*domain.Frame, error)
}
