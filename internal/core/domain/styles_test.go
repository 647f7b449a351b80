package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samirrijal/pmrmap/internal/core/domain"
)

func TestParsePriorityClass(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		want    domain.PriorityClass
		wantErr bool
	}{
		{name: "float64 from GeoJSON", in: float64(1), want: domain.PriorityHighest},
		{name: "int", in: 2, want: domain.PriorityHigh},
		{name: "int64 from parquet", in: int64(4), want: domain.PriorityLow},
		{name: "string from CSV", in: "3", want: domain.PriorityMedium},
		{name: "string with spaces", in: " 5 ", want: domain.PriorityLowest},
		{name: "json number", in: json.Number("2"), want: domain.PriorityHigh},
		{name: "whole float string", in: "4.0", want: domain.PriorityLow},
		{name: "zero", in: 0, wantErr: true},
		{name: "six", in: 6, wantErr: true},
		{name: "fraction", in: 2.5, wantErr: true},
		{name: "negative", in: -1, wantErr: true},
		{name: "nil", in: nil, wantErr: true},
		{name: "empty string", in: "", wantErr: true},
		{name: "text", in: "high", wantErr: true},
		{name: "bad json number", in: json.Number("x"), wantErr: true},
		{name: "bool", in: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ParsePriorityClass(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrValidation)
				assert.Equal(t, domain.PriorityUnclassified, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPriorityClassStyle(t *testing.T) {
	tests := []struct {
		class  domain.PriorityClass
		size   float64
		color  string
		symbol string
	}{
		{domain.PriorityHighest, 22, "red", "danger"},
		{domain.PriorityHigh, 17, "orange", "triangle"},
		{domain.PriorityMedium, 13, "yellow", "square"},
		{domain.PriorityLow, 10, "yellowgreen", "circle"},
		{domain.PriorityLowest, 7, "green", "circle-stroked"},
	}

	for _, tt := range tests {
		t.Run(tt.class.String(), func(t *testing.T) {
			s := tt.class.Style()
			assert.Equal(t, tt.size, s.Size)
			assert.Equal(t, tt.color, s.Color)
			assert.Equal(t, tt.symbol, s.Symbol)
		})
	}
}

func TestPriorityClassStyle_SizesDecrease(t *testing.T) {
	classes := domain.PriorityClasses()
	require.Len(t, classes, 5)
	assert.Equal(t, domain.PriorityHighest, classes[0])
	assert.Equal(t, domain.PriorityLowest, classes[4])

	for i := 1; i < len(classes); i++ {
		assert.Greater(t, classes[i-1].Style().Size, classes[i].Style().Size,
			"class %s should be drawn larger than class %s", classes[i-1], classes[i])
	}
}

func TestPriorityClassStyle_Unclassified(t *testing.T) {
	for _, c := range []domain.PriorityClass{domain.PriorityUnclassified, 6, 200} {
		assert.False(t, c.Valid())
		assert.Equal(t, "unclassified", c.String())
		s := c.Style()
		assert.Equal(t, "lightgray", s.Color)
		assert.Less(t, s.Size, domain.PriorityLowest.Style().Size)
	}
}

func TestParseColorField(t *testing.T) {
	tests := []struct {
		in      string
		want    domain.ColorField
		wantErr bool
	}{
		{in: "priority", want: domain.ColorByPriority},
		{in: "access_priority", want: domain.ColorByAccessPriority},
		{in: " priority ", want: domain.ColorByPriority},
		{in: "name", wantErr: true},
		{in: "", wantErr: true},
		{in: "Priority", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := domain.ParseColorField(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestColorFields(t *testing.T) {
	fields := domain.ColorFields()
	assert.Equal(t, []domain.ColorField{domain.ColorByPriority, domain.ColorByAccessPriority}, fields)
	for _, f := range fields {
		assert.NotEqual(t, string(f), f.Label())
	}
}

func TestEstablishmentTypeColor(t *testing.T) {
	known := []domain.EstablishmentType{
		domain.EstablishmentHospital,
		domain.EstablishmentClinic,
		domain.EstablishmentSchool,
		domain.EstablishmentUniversity,
		domain.EstablishmentTownHall,
		domain.EstablishmentPharmacy,
		domain.EstablishmentRetirementHome,
		domain.EstablishmentSports,
	}
	seen := make(map[string]domain.EstablishmentType)
	for _, typ := range known {
		color, ok := typ.Color()
		require.True(t, ok, "type %s", typ)
		assert.NotEmpty(t, color)
		if prev, dup := seen[color]; dup {
			t.Errorf("types %s and %s share colour %s", prev, typ, color)
		}
		seen[color] = typ
	}

	for _, typ := range []domain.EstablishmentType{"library", "", "Hospital"} {
		color, ok := typ.Color()
		assert.False(t, ok, "type %q", typ)
		assert.Empty(t, color)
	}
}

func TestAccessPointClass(t *testing.T) {
	p := domain.AccessPoint{Priority: domain.PriorityLowest, AccessPriority: domain.PriorityHighest}

	assert.Equal(t, domain.PriorityLowest, p.Class(domain.ColorByPriority))
	assert.Equal(t, domain.PriorityHighest, p.Class(domain.ColorByAccessPriority))
	assert.Equal(t, domain.PriorityLowest.Style(), p.Style())
}
