package geospatial

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/project"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samirrijal/pmrmap/internal/core/domain"
)

func collectionIn(crs string, pts ...orb.Point) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, p := range pts {
		fc.Append(geojson.NewFeature(p))
	}
	if crs != "" {
		fc.ExtraMembers = geojson.Properties{
			"crs": map[string]any{
				"type":       "name",
				"properties": map[string]any{"name": crs},
			},
		}
	}
	return fc
}

func TestParseCRS(t *testing.T) {
	tests := map[string]string{
		"EPSG:4326":                      domain.CRSWGS84,
		"epsg:2154":                      domain.CRSLambert93,
		"urn:ogc:def:crs:EPSG::2154":     domain.CRSLambert93,
		"urn:ogc:def:crs:EPSG:6.6:3857":  domain.CRSWebMercator,
		"urn:ogc:def:crs:OGC:1.3:CRS84":  domain.CRSWGS84,
		"OGC:CRS84":                      domain.CRSWGS84,
		"EPSG:900913":                    domain.CRSWebMercator,
	}
	for in, want := range tests {
		got, err := ParseCRS(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseCRS("+proj=longlat")
	assert.ErrorIs(t, err, domain.ErrSerialization)
}

func TestCRSOf_DefaultsToWGS84(t *testing.T) {
	crs, err := CRSOf(collectionIn("", orb.Point{2.35, 48.85}))
	require.NoError(t, err)
	assert.Equal(t, domain.CRSWGS84, crs)
}

func TestToWGS84_Identity(t *testing.T) {
	fc, err := ToWGS84(collectionIn("EPSG:4326", orb.Point{2.35, 48.85}))
	require.NoError(t, err)
	assert.Equal(t, orb.Point{2.35, 48.85}, fc.Features[0].Geometry)
	assert.NotContains(t, fc.ExtraMembers, "crs")
}

func TestToWGS84_WebMercator(t *testing.T) {
	merc := project.WGS84.ToMercator(orb.Point{2.35, 48.85})
	fc, err := ToWGS84(collectionIn("urn:ogc:def:crs:EPSG::3857", merc))
	require.NoError(t, err)

	p := fc.Features[0].Geometry.(orb.Point)
	assert.InDelta(t, 2.35, p.Lon(), 1e-9)
	assert.InDelta(t, 48.85, p.Lat(), 1e-9)
	assert.NotContains(t, fc.ExtraMembers, "crs")
}

func TestToWGS84_Lambert93(t *testing.T) {
	fc, err := ToWGS84(collectionIn("EPSG:2154",
		orb.Point{700000, 6600000},
		orb.Point{700000, 6700000},
	))
	require.NoError(t, err)

	origin := fc.Features[0].Geometry.(orb.Point)
	assert.InDelta(t, 3.0, origin.Lon(), 1e-7)
	assert.InDelta(t, 46.5, origin.Lat(), 1e-7)

	north := fc.Features[1].Geometry.(orb.Point)
	assert.InDelta(t, 3.0, north.Lon(), 1e-9)
	assert.InDelta(t, 47.4, north.Lat(), 0.02)
}

func TestToWGS84_Unsupported(t *testing.T) {
	_, err := ToWGS84(collectionIn("EPSG:27572", orb.Point{600000, 2400000}))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSerialization)
	assert.Contains(t, err.Error(), "EPSG:27572")
}

func TestToWGS84_MalformedMember(t *testing.T) {
	fc := collectionIn("", orb.Point{0, 0})
	fc.ExtraMembers = geojson.Properties{"crs": "EPSG:4326"}

	_, err := ToWGS84(fc)
	assert.ErrorIs(t, err, domain.ErrSerialization)
}
