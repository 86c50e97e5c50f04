package schema

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DecimalToClock converts a decimal hour position to a "H:MM" clock string.
// The value is wrapped into (0,12]: values at or below zero gain 12, values
// above 12 are reduced modulo 12 with an exact zero becoming 12. The empty
// string is returned for a missing input.
func DecimalToClock(hours float64) string {
	if math.IsNaN(hours) {
		return ""
	}

	if hours <= 0 {
		hours += 12
	} else if hours > 12 {
		hours = math.Mod(hours, 12)
		if hours == 0 {
			hours = 12
		}
	}

	h := int(math.Floor(hours))
	m := int(math.Round((hours - float64(h)) * 60))
	if m == 60 {
		h++
		m = 0
	}
	return fmt.Sprintf("%d:%02d", h, m)
}

// ClockToDecimal parses a "H:MM" clock string into decimal hours.
// Any parse failure returns NaN; callers must handle the sentinel.
func ClockToDecimal(clock string) float64 {
	parts := strings.Split(strings.TrimSpace(clock), ":")
	if len(parts) != 2 {
		return math.NaN()
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return math.NaN()
	}
	m, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return math.NaN()
	}
	return float64(h) + float64(m)/60
}

// FloatToClock converts a fraction-of-day value (the spreadsheet time
// convention, 0.5 == noon) to a "HH:MM" string. Some export tools emit the
// clock column this way instead of as text. The empty string is returned for
// a missing input.
func FloatToClock(fraction float64) string {
	if math.IsNaN(fraction) {
		return ""
	}

	totalMinutes := fraction * 24 * 60
	h := int(totalMinutes / 60)
	m := int(math.Round(math.Mod(totalMinutes, 60)))
	if m == 60 {
		h++
		m = 0
	}
	return fmt.Sprintf("%02d:%02d", h, m)
}
