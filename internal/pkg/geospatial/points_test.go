package geospatial

import (
	"encoding/json"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samirrijal/pmrmap/internal/core/domain"
)

var testCols = domain.CoordColumns{Lon: "longitude", Lat: "latitude"}

func stationFrame() *domain.Frame {
	return &domain.Frame{
		Columns: []string{"name", "latitude", "longitude", "lines"},
		Rows: []domain.Row{
			{"name": "Gare du Nord", "latitude": 48.85, "longitude": 2.35, "lines": 5},
			{"name": "Gare de Lyon", "latitude": "48.8443", "longitude": "2.3744", "lines": 4},
		},
	}
}

func TestToGeoFrame_LongitudeFirst(t *testing.T) {
	gf, err := ToGeoFrame(stationFrame(), testCols)
	require.NoError(t, err)
	require.Len(t, gf.Rows, 2)

	p, ok := gf.Rows[0].Geometry.(orb.Point)
	require.True(t, ok)
	assert.Equal(t, 2.35, p.X())
	assert.Equal(t, 48.85, p.Y())
	assert.Equal(t, orb.Point{2.35, 48.85}, p)
	assert.NotEqual(t, orb.Point{48.85, 2.35}, p)
}

func TestToGeoFrame_ParsesStringCells(t *testing.T) {
	gf, err := ToGeoFrame(stationFrame(), testCols)
	require.NoError(t, err)
	assert.Equal(t, orb.Point{2.3744, 48.8443}, gf.Rows[1].Geometry)
}

func TestToGeoFrame_DropsCoordinateColumns(t *testing.T) {
	gf, err := ToGeoFrame(stationFrame(), testCols)
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "lines"}, gf.Columns)
	for _, r := range gf.Rows {
		assert.NotContains(t, r.Properties, "latitude")
		assert.NotContains(t, r.Properties, "longitude")
		assert.Contains(t, r.Properties, "name")
	}
}

func TestToGeoFrame_FixesCRS(t *testing.T) {
	gf, err := ToGeoFrame(stationFrame(), testCols)
	require.NoError(t, err)
	assert.Equal(t, domain.CRSWGS84, gf.CRS)

	fc := gf.FeatureCollection()
	assert.Empty(t, fc.ExtraMembers)
}

func TestToGeoFrame_LeavesInputUntouched(t *testing.T) {
	f := stationFrame()
	_, err := ToGeoFrame(f, testCols)
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "latitude", "longitude", "lines"}, f.Columns)
	assert.Equal(t, 48.85, f.Rows[0]["latitude"])
	assert.Equal(t, 2.35, f.Rows[0]["longitude"])
}

func TestToGeoFrame_MissingLongitude(t *testing.T) {
	f := &domain.Frame{
		Columns: []string{"name", "latitude"},
		Rows:    []domain.Row{{"name": "Nord", "latitude": 48.85}},
	}
	_, err := ToGeoFrame(f, testCols)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), `"longitude"`)
}

func TestToGeoFrame_MissingLatitude(t *testing.T) {
	f := &domain.Frame{
		Columns: []string{"name", "longitude"},
		Rows:    []domain.Row{{"name": "Nord", "longitude": 2.35}},
	}
	_, err := ToGeoFrame(f, testCols)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), `"latitude"`)
}

func TestToGeoFrame_NonNumericCell(t *testing.T) {
	f := stationFrame()
	f.Rows[1]["latitude"] = "north-ish"

	_, err := ToGeoFrame(f, testCols)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "row 1")
}

func TestToGeoFrame_NumericKinds(t *testing.T) {
	f := &domain.Frame{
		Columns: []string{"latitude", "longitude"},
		Rows: []domain.Row{
			{"latitude": int64(48), "longitude": float32(2.5)},
			{"latitude": json.Number("48.5"), "longitude": 3},
		},
	}
	gf, err := ToGeoFrame(f, testCols)
	require.NoError(t, err)
	assert.Equal(t, orb.Point{2.5, 48}, gf.Rows[0].Geometry)
	assert.Equal(t, orb.Point{3, 48.5}, gf.Rows[1].Geometry)
}
