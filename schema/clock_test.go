package schema

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecimalToClock(t *testing.T) {
	tests := []struct {
		name  string
		hours float64
		want  string
	}{
		{"plain hour", 5.0, "5:00"},
		{"half hour", 5.5, "5:30"},
		{"fractional minutes", 5.9, "5:54"},
		{"noon stays noon", 12.0, "12:00"},
		{"zero wraps to twelve", 0.0, "12:00"},
		{"negative wraps", -1.5, "10:30"},
		{"above twelve reduces", 13.25, "1:15"},
		{"exact multiple of twelve", 24.0, "12:00"},
		{"minute rounding carries", 11.9999, "12:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecimalToClock(tt.hours))
		})
	}
}

func TestDecimalToClockMissing(t *testing.T) {
	assert.Equal(t, "", DecimalToClock(math.NaN()))
}

func TestClockToDecimal(t *testing.T) {
	assert.InDelta(t, 5.5, ClockToDecimal("5:30"), 1e-9)
	assert.InDelta(t, 12.0, ClockToDecimal("12:00"), 1e-9)
	assert.InDelta(t, 6.25, ClockToDecimal(" 6:15 "), 1e-9)
}

func TestClockToDecimalBadInput(t *testing.T) {
	for _, input := range []string{"", "7", "7:3:1", "abc", "7:xx", "x:30"} {
		assert.True(t, math.IsNaN(ClockToDecimal(input)), "input %q should yield NaN", input)
	}
}

func TestFloatToClock(t *testing.T) {
	assert.Equal(t, "12:00", FloatToClock(0.5))
	assert.Equal(t, "06:00", FloatToClock(0.25))
	assert.Equal(t, "00:00", FloatToClock(0.0))
	// 0.291666... of a day is 7:00
	assert.Equal(t, "07:00", FloatToClock(7.0/24.0))
	assert.Equal(t, "", FloatToClock(math.NaN()))
}

func TestClockRoundTrip(t *testing.T) {
	for _, clock := range []string{"1:00", "3:45", "6:30", "11:59", "12:00"} {
		dec := ClockToDecimal(clock)
		assert.Equal(t, clock, DecimalToClock(dec))
	}
}
