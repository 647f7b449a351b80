package geofile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/samirrijal/pmrmap/internal/core/domain"
)

// CSV implements ports.FrameSource for comma-separated files with a header row.
type CSV struct {
	Comma rune
}

// NewCSV creates a CSV reader using sep as the field separator.
func NewCSV(sep rune) *CSV {
	if sep == 0 {
		sep = ','
	}
	return &CSV{Comma: sep}
}

// ReadFrame reads every record. Cells are kept as trimmed strings; empty
// cells become nil so numeric conversion reports them as missing.
func (c *CSV) ReadFrame(ctx context.Context, path string) (*domain.Frame, error) {
	if err := checkFile(path); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = c.Comma
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse %s: %w: no header row", path, domain.ErrSerialization)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w: %v", path, domain.ErrSerialization, err)
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	frame := &domain.Frame{Columns: header}
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse %s line %d: %w: %v", path, line, domain.ErrSerialization, err)
		}

		row := make(domain.Row, len(header))
		for i, col := range header {
			var cell any
			if i < len(record) {
				if v := strings.TrimSpace(record[i]); v != "" {
					cell = v
				}
			}
			row[col] = cell
		}
		frame.Rows = append(frame.Rows, row)
	}
	return frame, nil
}
