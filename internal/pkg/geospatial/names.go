package geospatial

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/samirrijal/pmrmap/internal/core/domain"
)

// CleanName canonicalises a free-text station name so that names coming from
// different sources can be joined. It rejects anything that is not text.
func CleanName(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		rv := reflect.ValueOf(v)
		if !rv.IsValid() || rv.Kind() != reflect.String {
			return "", fmt.Errorf("clean name: %w: %v (%T) is not text", domain.ErrValidation, v, v)
		}
		s = rv.String()
	}
	return NormalizeName(s), nil
}

// NormalizeName trims s, drops every whitespace rune and hyphen, and
// lowercases the rest. Accents, digits and other punctuation are kept.
// NormalizeName(NormalizeName(s)) == NormalizeName(s).
func NormalizeName(s string) string {
	s = strings.TrimSpace(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '-' || unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}
