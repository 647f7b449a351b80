// Package geofile reads and writes the static geo-data files the toolkit
// works from: GeoJSON, GeoParquet and plain CSV tables.
package geofile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/paulmach/orb/geojson"

	"github.com/samirrijal/pmrmap/internal/core/domain"
)

// GeoJSON implements ports.FeatureSource and ports.FeatureSink for GeoJSON files.
type GeoJSON struct{}

// NewGeoJSON creates a GeoJSON reader/writer.
func NewGeoJSON() *GeoJSON {
	return &GeoJSON{}
}

// ReadFeatures loads a FeatureCollection. Every call reads the file again.
func (g *GeoJSON) ReadFeatures(ctx context.Context, path string) (*geojson.FeatureCollection, error) {
	if err := checkFile(path); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w: %v", path, domain.ErrSerialization, err)
	}
	return fc, nil
}

// WriteFeatures writes fc to path via a temp file and a rename, so readers
// never see a partial document.
func (g *GeoJSON) WriteFeatures(ctx context.Context, path string, fc *geojson.FeatureCollection) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := fc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encode %s: %w: %v", path, domain.ErrSerialization, err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}

// checkFile reports a missing file as domain.ErrNotFound, naming the path.
func checkFile(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: file %s does not exist", domain.ErrNotFound, path)
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", domain.ErrValidation, path)
	}
	return nil
}
