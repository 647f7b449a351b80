package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// PriorityClass is the ordinal 1..5 urgency of an accessibility upgrade.
// Class 1 is the most urgent.
type PriorityClass uint8

const (
	PriorityUnclassified PriorityClass = 0
	PriorityHighest      PriorityClass = 1
	PriorityHigh         PriorityClass = 2
	PriorityMedium       PriorityClass = 3
	PriorityLow          PriorityClass = 4
	PriorityLowest       PriorityClass = 5
)

// PriorityStyle is how a class is drawn on the map.
type PriorityStyle struct {
	Size   float64 `json:"size"`
	Color  string  `json:"color"`
	Symbol string  `json:"symbol"`
}

// priorityStyles is indexed by PriorityClass. Index 0 is the fallback for
// rows without a valid class.
var priorityStyles = [...]PriorityStyle{
	PriorityUnclassified: {Size: 6, Color: "lightgray", Symbol: "marker"},
	PriorityHighest:      {Size: 22, Color: "red", Symbol: "danger"},
	PriorityHigh:         {Size: 17, Color: "orange", Symbol: "triangle"},
	PriorityMedium:       {Size: 13, Color: "yellow", Symbol: "square"},
	PriorityLow:          {Size: 10, Color: "yellowgreen", Symbol: "circle"},
	PriorityLowest:       {Size: 7, Color: "green", Symbol: "circle-stroked"},
}

// PriorityClasses lists the valid classes from most to least urgent.
func PriorityClasses() []PriorityClass {
	return []PriorityClass{PriorityHighest, PriorityHigh, PriorityMedium, PriorityLow, PriorityLowest}
}

// Valid reports whether c is within 1..5.
func (c PriorityClass) Valid() bool {
	return c >= PriorityHighest && c <= PriorityLowest
}

// Style returns the marker style of c; invalid classes get the unclassified style.
func (c PriorityClass) Style() PriorityStyle {
	if !c.Valid() {
		return priorityStyles[PriorityUnclassified]
	}
	return priorityStyles[c]
}

func (c PriorityClass) String() string {
	if !c.Valid() {
		return "unclassified"
	}
	return strconv.Itoa(int(c))
}

// ParsePriorityClass reads a class from a decoded attribute. GeoJSON numbers
// arrive as float64, CSV cells as strings; both are accepted when they hold
// an integer in 1..5.
func ParsePriorityClass(v any) (PriorityClass, error) {
	var n float64
	switch t := v.(type) {
	case nil:
		return PriorityUnclassified, fmt.Errorf("%w: priority class is empty", ErrValidation)
	case int:
		n = float64(t)
	case int32:
		n = float64(t)
	case int64:
		n = float64(t)
	case uint8:
		n = float64(t)
	case float32:
		n = float64(t)
	case float64:
		n = t
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return PriorityUnclassified, fmt.Errorf("%w: priority class %q: %v", ErrValidation, t, err)
		}
		n = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return PriorityUnclassified, fmt.Errorf("%w: priority class %q is not a number", ErrValidation, t)
		}
		n = f
	default:
		return PriorityUnclassified, fmt.Errorf("%w: priority class has type %T", ErrValidation, v)
	}

	if n != math.Trunc(n) || n < float64(PriorityHighest) || n > float64(PriorityLowest) {
		return PriorityUnclassified, fmt.Errorf("%w: priority class %v is outside 1..5", ErrValidation, v)
	}
	return PriorityClass(n), nil
}

// EstablishmentType is the category of a public establishment near a station.
type EstablishmentType string

const (
	EstablishmentHospital       EstablishmentType = "hospital"
	EstablishmentClinic         EstablishmentType = "clinic"
	EstablishmentSchool         EstablishmentType = "school"
	EstablishmentUniversity     EstablishmentType = "university"
	EstablishmentTownHall       EstablishmentType = "town_hall"
	EstablishmentPharmacy       EstablishmentType = "pharmacy"
	EstablishmentRetirementHome EstablishmentType = "retirement_home"
	EstablishmentSports         EstablishmentType = "sports"
)

// Color returns the display colour of t. Types outside the table report
// false and are drawn without a colour set.
func (t EstablishmentType) Color() (string, bool) {
	switch t {
	case EstablishmentHospital:
		return "#1f77b4", true
	case EstablishmentClinic:
		return "#17becf", true
	case EstablishmentSchool:
		return "#9467bd", true
	case EstablishmentUniversity:
		return "#e377c2", true
	case EstablishmentTownHall:
		return "#8c564b", true
	case EstablishmentPharmacy:
		return "#2ca02c", true
	case EstablishmentRetirementHome:
		return "#ff7f0e", true
	case EstablishmentSports:
		return "#7f7f7f", true
	}
	return "", false
}

// ColorField is an attribute the dashboard can colour its base layer by.
type ColorField string

const (
	ColorByPriority       ColorField = PropPriority
	ColorByAccessPriority ColorField = PropAccessPriority
)

// ColorFields lists the selectable fields in the order the selector shows them.
func ColorFields() []ColorField {
	return []ColorField{ColorByPriority, ColorByAccessPriority}
}

// ParseColorField validates a field name coming from a request.
func ParseColorField(s string) (ColorField, error) {
	switch f := ColorField(strings.TrimSpace(s)); f {
	case ColorByPriority, ColorByAccessPriority:
		return f, nil
	}
	return "", fmt.Errorf("%w: unknown colour field %q", ErrValidation, s)
}

// Label is the human readable name of f.
func (f ColorField) Label() string {
	switch f {
	case ColorByPriority:
		return "Priorité globale"
	case ColorByAccessPriority:
		return "Priorité accessibilité"
	}
	return string(f)
}
