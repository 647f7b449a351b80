package usecases_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/require"

	"github.com/samirrijal/pmrmap/internal/core/domain"
)

// --- Mock FeatureSource ---

type mockFeatureSource struct {
	mu     sync.Mutex
	calls  map[string]int
	readFn func(ctx context.Context, path string) (*geojson.FeatureCollection, error)
}

func (m *mockFeatureSource) ReadFeatures(ctx context.Context, path string) (*geojson.FeatureCollection, error) {
	m.mu.Lock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[path]++
	m.mu.Unlock()

	if m.readFn != nil {
		return m.readFn(ctx, path)
	}
	return geojson.NewFeatureCollection(), nil
}

func (m *mockFeatureSource) count(path string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[path]
}

// --- Mock FeatureSink ---

type mockFeatureSink struct {
	written map[string]*geojson.FeatureCollection
	writeFn func(ctx context.Context, path string, fc *geojson.FeatureCollection) error
}

func (m *mockFeatureSink) WriteFeatures(ctx context.Context, path string, fc *geojson.FeatureCollection) error {
	if m.writeFn != nil {
		return m.writeFn(ctx, path, fc)
	}
	if m.written == nil {
		m.written = make(map[string]*geojson.FeatureCollection)
	}
	m.written[path] = fc
	return nil
}

// --- Mock FrameSource ---

type mockFrameSource struct {
	frames map[string]*domain.Frame
	readFn func(ctx context.Context, path string) (*domain.Frame, error)
}

func (m *mockFrameSource) ReadFrame(ctx context.Context, path string) (*domain.Frame, error) {
	if m.readFn != nil {
		return m.readFn(ctx, path)
	}
	f, ok := m.frames[path]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return f, nil
}

// --- Fixtures ---

func pointFeature(lon, lat float64, props map[string]any) *geojson.Feature {
	f := geojson.NewFeature(orb.Point{lon, lat})
	for k, v := range props {
		f.Properties[k] = v
	}
	return f
}

func collection(features ...*geojson.Feature) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, f := range features {
		fc.Append(f)
	}
	return fc
}

func withCRS(fc *geojson.FeatureCollection, name string) *geojson.FeatureCollection {
	fc.ExtraMembers = geojson.Properties{
		"crs": map[string]any{"type": "name", "properties": map[string]any{"name": name}},
	}
	return fc
}

// --- Logs ---

// captureLogs routes the default slog logger to a buffer for the rest of the
// test and returns a function decoding the records logged so far.
func captureLogs(t *testing.T) func() []map[string]any {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	return func() []map[string]any {
		var records []map[string]any
		for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
			if line == "" {
				continue
			}
			var rec map[string]any
			require.NoError(t, json.Unmarshal([]byte(line), &rec))
			records = append(records, rec)
		}
		return records
	}
}

func findLog(records []map[string]any, msg string) map[string]any {
	for _, r := range records {
		if r["msg"] == msg {
			return r
		}
	}
	return nil
}
