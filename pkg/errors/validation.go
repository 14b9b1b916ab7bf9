package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxFieldNameLength bounds record field names accepted on the command line
// and in HTTP query strings.
const maxFieldNameLength = 128

// ValidateFieldName validates the name of a record field used as a label or
// type accessor.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No leading or trailing whitespace
//   - Maximum length of 128 characters
func ValidateFieldName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidField, "field name cannot be empty")
	}

	if len(name) > maxFieldNameLength {
		return New(ErrCodeInvalidField, "field name too long (max %d characters)", maxFieldNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidField, "field name contains invalid control characters")
		}
	}

	if strings.TrimSpace(name) != name {
		return New(ErrCodeInvalidField, "field name %q has surrounding whitespace", name)
	}

	return nil
}

// ValidateOpacity checks that v is a usable SVG opacity.
func ValidateOpacity(v float64) error {
	if v < 0 || v > 1 {
		return New(ErrCodeInvalidConfig, "opacity must be within [0, 1], got %v", v)
	}
	return nil
}

// hexColorRegex matches #rgb and #rrggbb colors.
var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateHexColor validates a CSS hex color literal.
func ValidateHexColor(s string) error {
	if !hexColorRegex.MatchString(s) {
		return New(ErrCodeInvalidInput, "invalid hex color: %q", s)
	}
	return nil
}
