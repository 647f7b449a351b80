package geospatial

import (
	"fmt"
	"maps"
	"slices"

	"github.com/samirrijal/pmrmap/internal/core/domain"
)

// JoinReport summarises a name join.
type JoinReport struct {
	Matched   int      `json:"matched"`
	Unmatched int      `json:"unmatched"`
	Missing   []string `json:"missing,omitempty"`
}

// JoinOnCleanName left-joins the attribute rows of right onto the geometry
// rows of left, matching leftCol and rightCol after CleanName. When several
// right rows share a key the first one wins. Attributes already present on
// a left row are not overwritten.
func JoinOnCleanName(left *domain.GeoFrame, right *domain.Frame, leftCol, rightCol string) (*domain.GeoFrame, JoinReport, error) {
	var report JoinReport

	if !slices.Contains(left.Columns, leftCol) {
		return nil, report, fmt.Errorf("join: %w: column %q is missing on the left side", domain.ErrValidation, leftCol)
	}
	if !right.HasColumn(rightCol) {
		return nil, report, fmt.Errorf("join: %w: column %q is missing on the right side", domain.ErrValidation, rightCol)
	}

	index := make(map[string]domain.Row, len(right.Rows))
	for i, r := range right.Rows {
		key, err := CleanName(r[rightCol])
		if err != nil {
			return nil, report, fmt.Errorf("join: right row %d: %w", i, err)
		}
		if _, dup := index[key]; !dup {
			index[key] = r
		}
	}

	out := &domain.GeoFrame{
		CRS:     left.CRS,
		Columns: append([]string(nil), left.Columns...),
		Rows:    make([]domain.GeoRow, 0, len(left.Rows)),
	}
	for _, c := range right.Columns {
		if c != rightCol && !slices.Contains(out.Columns, c) {
			out.Columns = append(out.Columns, c)
		}
	}

	for i, r := range left.Rows {
		key, err := CleanName(r.Properties[leftCol])
		if err != nil {
			return nil, report, fmt.Errorf("join: left row %d: %w", i, err)
		}

		props := maps.Clone(r.Properties)
		if match, ok := index[key]; ok {
			report.Matched++
			for k, v := range match {
				if k == rightCol {
					continue
				}
				if _, exists := props[k]; !exists {
					props[k] = v
				}
			}
		} else {
			report.Unmatched++
			report.Missing = append(report.Missing, fmt.Sprint(r.Properties[leftCol]))
		}
		out.Rows = append(out.Rows, domain.GeoRow{Properties: props, Geometry: r.Geometry})
	}

	return out, report, nil
}
