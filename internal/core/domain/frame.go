package domain

import (
	"slices"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Row is a single record of a Frame keyed by column name.
type Row map[string]any

// Frame is an in-memory table: an ordered column list and the rows using it.
type Frame struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// HasColumn reports whether name is one of the frame's columns.
func (f *Frame) HasColumn(name string) bool {
	return slices.Contains(f.Columns, name)
}

// GeoRow is a row of attributes carrying one geometry.
type GeoRow struct {
	Properties Row
	Geometry   orb.Geometry
}

// GeoFrame is a Frame whose rows carry a geometry in a fixed reference system.
// The CRS is set when the frame is built and never rewritten in place.
type GeoFrame struct {
	CRS     string
	Columns []string
	Rows    []GeoRow
}

// FeatureCollection converts the frame to GeoJSON. Non-WGS84 frames carry a
// legacy "crs" member so readers can tell the coordinates apart.
func (g *GeoFrame) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, r := range g.Rows {
		f := geojson.NewFeature(r.Geometry)
		for k, v := range r.Properties {
			f.Properties[k] = v
		}
		fc.Append(f)
	}
	if g.CRS != "" && g.CRS != CRSWGS84 {
		fc.ExtraMembers = geojson.Properties{
			"crs": map[string]any{
				"type":       "name",
				"properties": map[string]any{"name": g.CRS},
			},
		}
	}
	return fc
}
