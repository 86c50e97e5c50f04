package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSurfaceLocation(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"INT", "INT"},
		{"i", "INT"},
		{"Internal", "INT"},
		{"YES", "INT"},
		{"interne", "INT"},
		{"NON-INT", "NON-INT"},
		{"e", "NON-INT"},
		{"External", "NON-INT"},
		{"no", "NON-INT"},
		{"non int", "NON-INT"},
		{"EXTERNE", "NON-INT"},
		{" int ", "INT"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeSurfaceLocation(tt.input), "input %q", tt.input)
	}
}

func TestNormalizeSurfaceLocationPassthrough(t *testing.T) {
	// Unknown categories are not an error; they flow through untouched.
	assert.Equal(t, "MID-WALL", NormalizeSurfaceLocation("MID-WALL"))
	assert.Equal(t, "unknown-label", NormalizeSurfaceLocation("unknown-label"))
}
