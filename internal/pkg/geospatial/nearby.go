package geospatial

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"github.com/samirrijal/pmrmap/internal/core/domain"
)

// Distance returns the great-circle distance in meters between two points.
func Distance(a, b domain.GeoPoint) float64 {
	return geo.DistanceHaversine(orb.Point{a.Lon, a.Lat}, orb.Point{b.Lon, b.Lat})
}

// Within returns a predicate matching points at most radiusMeters from
// center. A bounding box rejects far points before the haversine check.
func Within(center domain.GeoPoint, radiusMeters float64) func(domain.GeoPoint) bool {
	c := orb.Point{center.Lon, center.Lat}
	bound := geo.NewBoundAroundPoint(c, radiusMeters)
	return func(p domain.GeoPoint) bool {
		pt := orb.Point{p.Lon, p.Lat}
		if !bound.Contains(pt) {
			return false
		}
		return Distance(center, p) <= radiusMeters
	}
}

// Centroid is the arithmetic mean of pts. It returns false for an empty slice.
func Centroid(pts []domain.GeoPoint) (domain.GeoPoint, bool) {
	if len(pts) == 0 {
		return domain.GeoPoint{}, false
	}
	var lat, lon float64
	for _, p := range pts {
		lat += p.Lat
		lon += p.Lon
	}
	n := float64(len(pts))
	return domain.GeoPoint{Lat: lat / n, Lon: lon / n}, true
}

// PointOf returns the representative point of g: the point itself, or the
// centre of its bound for any other geometry.
func PointOf(g orb.Geometry) (domain.GeoPoint, bool) {
	switch t := g.(type) {
	case nil:
		return domain.GeoPoint{}, false
	case orb.Point:
		return domain.GeoPoint{Lat: t.Lat(), Lon: t.Lon()}, true
	default:
		c := g.Bound().Center()
		return domain.GeoPoint{Lat: c.Lat(), Lon: c.Lon()}, true
	}
}
