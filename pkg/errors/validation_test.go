package errors

import (
	"strings"
	"testing"
)

func TestValidateFieldName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "type", false},
		{"valid with dash", "sub-type", false},
		{"valid with space inside", "record id", false},
		{"valid unicode", "種類", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 200), true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
		{"leading space", " type", true},
		{"trailing space", "type ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFieldName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFieldName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidField) {
				t.Errorf("ValidateFieldName(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidField)
			}
		})
	}
}

func TestValidateOpacity(t *testing.T) {
	tests := []struct {
		input   float64
		wantErr bool
	}{
		{0, false},
		{0.4, false},
		{1, false},
		{-0.1, true},
		{1.5, true},
	}

	for _, tt := range tests {
		err := ValidateOpacity(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateOpacity(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}

func TestValidateHexColor(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"#fff", false},
		{"#1a2B3c", false},
		{"fff", true},
		{"#ffff", true},
		{"#gggggg", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateHexColor(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateHexColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}
