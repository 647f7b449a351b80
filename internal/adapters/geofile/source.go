package geofile

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/paulmach/orb/geojson"

	"github.com/samirrijal/pmrmap/internal/core/domain"
)

// Source picks a reader from the file extension.
type Source struct {
	geoJSON    *GeoJSON
	geoParquet *GeoParquet
}

// NewSource creates a Source handling .geojson, .json, .parquet and .geoparquet.
func NewSource() *Source {
	return &Source{geoJSON: NewGeoJSON(), geoParquet: NewGeoParquet()}
}

// ReadFeatures reads path with the reader matching its extension.
func (s *Source) ReadFeatures(ctx context.Context, path string) (*geojson.FeatureCollection, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".geojson", ".json":
		return s.geoJSON.ReadFeatures(ctx, path)
	case ".parquet", ".geoparquet":
		return s.geoParquet.ReadFeatures(ctx, path)
	default:
		return nil, fmt.Errorf("%w: unsupported geo file extension %q in %s", domain.ErrValidation, ext, path)
	}
}
