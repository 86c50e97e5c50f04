package schema

import "strings"

// Synonym sets observed across vendor exports, including the French labels
// from older European runs.
var (
	internalSynonyms = map[string]struct{}{
		"INT": {}, "I": {}, "INTERNAL": {}, "YES": {}, "INTERNE": {},
	}
	externalSynonyms = map[string]struct{}{
		"NON-INT": {}, "E": {}, "EXTERNAL": {}, "NO": {}, "NON INT": {}, "EXTERNE": {},
	}
)

// NormalizeSurfaceLocation maps heterogeneous surface labels onto the
// INT / NON-INT vocabulary. Unrecognized labels are returned unchanged rather
// than rejected, since downstream consumers tolerate free-form categories.
// Empty input stays empty.
func NormalizeSurfaceLocation(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}

	upper := strings.ToUpper(trimmed)
	if _, ok := internalSynonyms[upper]; ok {
		return string(InternalSurface)
	}
	if _, ok := externalSynonyms[upper]; ok {
		return string(ExternalSurface)
	}
	return value
}
