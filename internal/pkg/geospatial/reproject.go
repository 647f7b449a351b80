package geospatial

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/project"

	"github.com/samirrijal/pmrmap/internal/core/domain"
)

// epsgRe matches "EPSG:2154", "EPSG::2154" and "urn:ogc:def:crs:EPSG:6.6:2154".
var epsgRe = regexp.MustCompile(`(?i)EPSG:(?:[\d.]*:)?(\d+)$`)

// ParseCRS normalises a CRS identifier to EPSG:nnnn form. OGC CRS84 is the
// lon/lat flavour of WGS84 and maps to EPSG:4326.
func ParseCRS(name string) (string, error) {
	name = strings.TrimSpace(name)
	if strings.HasSuffix(strings.ToUpper(name), "CRS84") {
		return domain.CRSWGS84, nil
	}
	m := epsgRe.FindStringSubmatch(name)
	if m == nil {
		return "", fmt.Errorf("%w: unrecognised crs %q", domain.ErrSerialization, name)
	}
	code := m[1]
	// 900913 is the pre-registration code of Web Mercator.
	if code == "900913" {
		code = "3857"
	}
	return "EPSG:" + code, nil
}

// CRSOf reads the legacy "crs" member of a feature collection. Collections
// without one are WGS84, as RFC 7946 requires.
func CRSOf(fc *geojson.FeatureCollection) (string, error) {
	raw, ok := fc.ExtraMembers["crs"]
	if !ok || raw == nil {
		return domain.CRSWGS84, nil
	}
	member, ok := raw.(map[string]any)
	if !ok {
		return "", fmt.Errorf("%w: crs member has type %T", domain.ErrSerialization, raw)
	}
	props, _ := member["properties"].(map[string]any)
	name, _ := props["name"].(string)
	if name == "" {
		return "", fmt.Errorf("%w: crs member has no name", domain.ErrSerialization)
	}
	return ParseCRS(name)
}

// ToWGS84 reprojects every geometry of fc to WGS84 in place and removes the
// crs member. Collections already in WGS84 are returned as is.
func ToWGS84(fc *geojson.FeatureCollection) (*geojson.FeatureCollection, error) {
	crs, err := CRSOf(fc)
	if err != nil {
		return nil, fmt.Errorf("reproject: %w", err)
	}

	var proj orb.Projection
	switch crs {
	case domain.CRSWGS84:
	case domain.CRSWebMercator:
		proj = project.Mercator.ToWGS84
	case domain.CRSLambert93:
		proj = Lambert93ToWGS84
	default:
		return nil, fmt.Errorf("reproject: %w: no transform from %s to %s", domain.ErrSerialization, crs, domain.CRSWGS84)
	}

	if proj != nil {
		for _, f := range fc.Features {
			if f.Geometry != nil {
				f.Geometry = project.Geometry(f.Geometry, proj)
			}
		}
	}
	delete(fc.ExtraMembers, "crs")
	return fc, nil
}

// Lambert-93 (RGF93) projection constants, IGN notice NTG_71.
const (
	lambert93N  = 0.7256077650532670
	lambert93C  = 11754255.4260960
	lambert93Xs = 700000.0
	lambert93Ys = 12655612.0498760
	grs80E      = 0.0818191910428158
	lambert93L0 = 3.0 * math.Pi / 180
)

// Lambert93ToWGS84 projects a Lambert-93 easting/northing to lon/lat degrees.
// RGF93 and WGS84 agree to well under a metre, so no datum shift is applied.
func Lambert93ToWGS84(p orb.Point) orb.Point {
	dx := p[0] - lambert93Xs
	dy := p[1] - lambert93Ys

	r := math.Hypot(dx, dy)
	gamma := math.Atan2(dx, -dy)
	lon := lambert93L0 + gamma/lambert93N

	latIso := -math.Log(math.Abs(r/lambert93C)) / lambert93N
	lat := 2*math.Atan(math.Exp(latIso)) - math.Pi/2
	for i := 0; i < 20; i++ {
		s := grs80E * math.Sin(lat)
		next := 2*math.Atan(math.Pow((1+s)/(1-s), grs80E/2)*math.Exp(latIso)) - math.Pi/2
		if math.Abs(next-lat) < 1e-12 {
			lat = next
			break
		}
		lat = next
	}

	return orb.Point{lon * 180 / math.Pi, lat * 180 / math.Pi}
}
