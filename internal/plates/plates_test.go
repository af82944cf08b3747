package plates

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValid(t *testing.T) {
	tests := []struct {
		name  string
		plate string
		want  bool
	}{
		{"mercosur format", "AB123CD", true},
		{"three-letter format", "ABC123", true},
		{"motorcycle format", "A123BCD", true},
		{"lowercase with hyphens", "ab-123-cd", true},
		{"internal spaces", "AB 123 CD", true},
		{"surrounding whitespace", "  abc123  ", true},
		{"too few digits", "AB12CD", false},
		{"digits only", "12345", false},
		{"empty", "", false},
		{"whitespace only", "   ", false},
		{"letters only", "ABCDEFG", false},
		{"mercosur with extra char", "AB123CDE", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValid(tt.plate), "plate %q", tt.plate)
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name      string
		plate     string
		want      string
		wantValid bool
	}{
		{"hyphenated lowercase", "ab-123-cd", "AB123CD", true},
		{"spaced", "abc 123", "ABC123", true},
		{"already normalized", "A123BCD", "A123BCD", true},
		{"invalid still normalized", "ab-12", "AB12", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, valid := Normalize(tt.plate)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantValid, valid)
		})
	}
}
