package geospatial

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"

	"github.com/samirrijal/pmrmap/internal/core/domain"
)

func TestDistance(t *testing.T) {
	// Gare de Lyon to Gare d'Austerlitz, roughly 1 km across the Seine.
	lyon := domain.GeoPoint{Lat: 48.8443, Lon: 2.3744}
	austerlitz := domain.GeoPoint{Lat: 48.8422, Lon: 2.3655}

	d := Distance(lyon, austerlitz)
	assert.InDelta(t, 690, d, 60)
	assert.InDelta(t, 0, Distance(lyon, lyon), 1e-9)
}

func TestWithin(t *testing.T) {
	center := domain.GeoPoint{Lat: 48.8566, Lon: 2.3522}
	near := Within(center, 1000)

	assert.True(t, near(center))
	assert.True(t, near(domain.GeoPoint{Lat: 48.8600, Lon: 2.3522}))
	assert.False(t, near(domain.GeoPoint{Lat: 48.8800, Lon: 2.3522}))
	assert.False(t, near(domain.GeoPoint{Lat: 45.7640, Lon: 4.8357}))
}

func TestCentroid(t *testing.T) {
	c, ok := Centroid([]domain.GeoPoint{{Lat: 48, Lon: 2}, {Lat: 49, Lon: 3}})
	assert.True(t, ok)
	assert.InDelta(t, 48.5, c.Lat, 1e-12)
	assert.InDelta(t, 2.5, c.Lon, 1e-12)

	_, ok = Centroid(nil)
	assert.False(t, ok)
}

func TestPointOf(t *testing.T) {
	p, ok := PointOf(orb.Point{2.35, 48.85})
	assert.True(t, ok)
	assert.Equal(t, domain.GeoPoint{Lat: 48.85, Lon: 2.35}, p)

	p, ok = PointOf(orb.LineString{{2, 48}, {4, 50}})
	assert.True(t, ok)
	assert.Equal(t, domain.GeoPoint{Lat: 49, Lon: 3}, p)

	_, ok = PointOf(nil)
	assert.False(t, ok)
}
