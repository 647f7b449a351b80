package geospatial

import (
	"encoding/json"
	"fmt"
	"maps"
	"strconv"
	"strings"

	"github.com/paulmach/orb"

	"github.com/samirrijal/pmrmap/internal/core/domain"
)

// ToGeoFrame turns the two coordinate columns of f into point geometries.
// Each point is (lon, lat), x first. The coordinate columns are dropped from
// the result, the CRS is WGS84, and f itself is left untouched.
func ToGeoFrame(f *domain.Frame, cols domain.CoordColumns) (*domain.GeoFrame, error) {
	if !f.HasColumn(cols.Lon) {
		return nil, fmt.Errorf("build geometry: %w: column %q is missing", domain.ErrValidation, cols.Lon)
	}
	if !f.HasColumn(cols.Lat) {
		return nil, fmt.Errorf("build geometry: %w: column %q is missing", domain.ErrValidation, cols.Lat)
	}

	out := &domain.GeoFrame{
		CRS:  domain.CRSWGS84,
		Rows: make([]domain.GeoRow, 0, len(f.Rows)),
	}
	for _, c := range f.Columns {
		if c != cols.Lon && c != cols.Lat {
			out.Columns = append(out.Columns, c)
		}
	}

	for i, r := range f.Rows {
		lon, err := toFloat(r[cols.Lon])
		if err != nil {
			return nil, fmt.Errorf("build geometry: row %d column %q: %w", i, cols.Lon, err)
		}
		lat, err := toFloat(r[cols.Lat])
		if err != nil {
			return nil, fmt.Errorf("build geometry: row %d column %q: %w", i, cols.Lat, err)
		}

		props := maps.Clone(r)
		if props == nil {
			props = domain.Row{}
		}
		delete(props, cols.Lon)
		delete(props, cols.Lat)

		out.Rows = append(out.Rows, domain.GeoRow{
			Properties: props,
			Geometry:   orb.Point{lon, lat},
		})
	}
	return out, nil
}

func toFloat(v any) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case float32:
		return float64(t), nil
	case int:
		return float64(t), nil
	case int8:
		return float64(t), nil
	case int16:
		return float64(t), nil
	case int32:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case uint:
		return float64(t), nil
	case uint8:
		return float64(t), nil
	case uint16:
		return float64(t), nil
	case uint32:
		return float64(t), nil
	case uint64:
		return float64(t), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a number", domain.ErrValidation, t)
		}
		return f, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a number", domain.ErrValidation, t)
		}
		return f, nil
	case nil:
		return 0, fmt.Errorf("%w: value is empty", domain.ErrValidation)
	}
	return 0, fmt.Errorf("%w: %v (%T) is not a number", domain.ErrValidation, v, v)
}
