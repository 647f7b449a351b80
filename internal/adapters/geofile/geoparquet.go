package geofile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/parquet-go/parquet-go"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkb"
	"github.com/paulmach/orb/geojson"

	"github.com/samirrijal/pmrmap/internal/core/domain"
)

const defaultGeometryColumn = "geometry"

// geoMetadata is the "geo" key-value entry of a GeoParquet file footer.
type geoMetadata struct {
	PrimaryColumn string                       `json:"primary_column"`
	Columns       map[string]geoColumnMetadata `json:"columns"`
}

type geoColumnMetadata struct {
	Encoding string          `json:"encoding"`
	CRS      json.RawMessage `json:"crs"`
}

// projJSONID is the identifier part of a PROJJSON CRS definition.
type projJSONID struct {
	ID struct {
		Authority string          `json:"authority"`
		Code      json.RawMessage `json:"code"`
	} `json:"id"`
}

// GeoParquet implements ports.FeatureSource for GeoParquet files with a flat
// schema and a WKB-encoded geometry column.
type GeoParquet struct {
	batchSize int
}

// NewGeoParquet creates a GeoParquet reader.
func NewGeoParquet() *GeoParquet {
	return &GeoParquet{batchSize: 256}
}

// ReadFeatures decodes every row into a feature. The file's CRS is carried
// in the collection's "crs" member so it can be reprojected like GeoJSON.
func (g *GeoParquet) ReadFeatures(ctx context.Context, path string) (*geojson.FeatureCollection, error) {
	if err := checkFile(path); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	pf, err := parquet.OpenFile(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w: %v", path, domain.ErrSerialization, err)
	}

	geomCol, crs, err := readGeoMetadata(pf)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	columns := make([]string, 0)
	for _, p := range pf.Schema().Columns() {
		columns = append(columns, strings.Join(p, "."))
	}

	fc := geojson.NewFeatureCollection()
	if crs != domain.CRSWGS84 {
		fc.ExtraMembers = geojson.Properties{
			"crs": map[string]any{"type": "name", "properties": map[string]any{"name": crs}},
		}
	}

	buf := make([]parquet.Row, g.batchSize)
	for _, rg := range pf.RowGroups() {
		if err := g.readRowGroup(ctx, rg, columns, geomCol, buf, fc); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	return fc, nil
}

func (g *GeoParquet) readRowGroup(ctx context.Context, rg parquet.RowGroup, columns []string, geomCol string, buf []parquet.Row, fc *geojson.FeatureCollection) error {
	rows := rg.Rows()
	defer rows.Close()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, err := rows.ReadRows(buf)
		for _, row := range buf[:n] {
			feature, ferr := rowToFeature(row, columns, geomCol)
			if ferr != nil {
				return ferr
			}
			fc.Append(feature)
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: read rows: %v", domain.ErrSerialization, err)
		}
	}
}

func rowToFeature(row parquet.Row, columns []string, geomCol string) (*geojson.Feature, error) {
	var geom orb.Geometry
	props := geojson.Properties{}

	for _, v := range row {
		idx := v.Column()
		if idx < 0 || idx >= len(columns) {
			continue
		}
		name := columns[idx]

		if name == geomCol {
			if v.IsNull() {
				continue
			}
			g, err := wkb.Unmarshal(v.ByteArray())
			if err != nil {
				return nil, fmt.Errorf("%w: decode %s: %v", domain.ErrSerialization, geomCol, err)
			}
			geom = g
			continue
		}
		props[name] = valueOf(v)
	}

	if geom == nil {
		return nil, fmt.Errorf("%w: row has no %s", domain.ErrSerialization, geomCol)
	}
	f := geojson.NewFeature(geom)
	f.Properties = props
	return f, nil
}

func valueOf(v parquet.Value) any {
	if v.IsNull() {
		return nil
	}
	switch v.Kind() {
	case parquet.Boolean:
		return v.Boolean()
	case parquet.Int32:
		return int64(v.Int32())
	case parquet.Int64:
		return v.Int64()
	case parquet.Float:
		return float64(v.Float())
	case parquet.Double:
		return v.Double()
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return string(v.ByteArray())
	}
	return v.String()
}

// readGeoMetadata returns the geometry column and CRS declared in the footer.
// Files without metadata default to a "geometry" column in OGC:CRS84.
func readGeoMetadata(pf *parquet.File) (string, string, error) {
	raw, ok := pf.Lookup("geo")
	if !ok {
		return defaultGeometryColumn, domain.CRSWGS84, nil
	}

	var meta geoMetadata
	if err := json.Unmarshal([]byte(raw), &meta); err != nil {
		return "", "", fmt.Errorf("%w: geo metadata: %v", domain.ErrSerialization, err)
	}

	col := meta.PrimaryColumn
	if col == "" {
		col = defaultGeometryColumn
	}
	cm := meta.Columns[col]
	if cm.Encoding != "" && !strings.EqualFold(cm.Encoding, "WKB") {
		return "", "", fmt.Errorf("%w: geometry encoding %s is not supported", domain.ErrSerialization, cm.Encoding)
	}

	if len(cm.CRS) == 0 || string(cm.CRS) == "null" {
		return col, domain.CRSWGS84, nil
	}

	var id projJSONID
	if err := json.Unmarshal(cm.CRS, &id); err != nil {
		return "", "", fmt.Errorf("%w: geo metadata crs: %v", domain.ErrSerialization, err)
	}
	if id.ID.Authority == "" || len(id.ID.Code) == 0 {
		return "", "", fmt.Errorf("%w: geo metadata crs has no id", domain.ErrSerialization)
	}

	code := strings.Trim(string(id.ID.Code), `"`)
	if strings.EqualFold(id.ID.Authority, "OGC") && strings.EqualFold(code, "CRS84") {
		return col, domain.CRSWGS84, nil
	}
	return col, strings.ToUpper(id.ID.Authority) + ":" + code, nil
}
