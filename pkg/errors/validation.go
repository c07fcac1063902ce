package errors

import (
	"math"
	"strings"
	"unicode"
)

// maxIDLength bounds node and edge identifiers.
const maxIDLength = 256

// validateID applies the rules shared by node and edge identifiers:
//   - No empty IDs
//   - No control characters or null bytes
//   - No leading or trailing whitespace
//   - Maximum length of 256 bytes
func validateID(kind, id string) error {
	if id == "" {
		return New(ErrCodeInvalidGraph, "%s id cannot be empty", kind)
	}

	if len(id) > maxIDLength {
		return New(ErrCodeInvalidGraph, "%s id too long (max %d characters)", kind, maxIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidGraph, "%s id %q contains invalid control characters", kind, id)
		}
	}

	if strings.TrimSpace(id) != id {
		return New(ErrCodeInvalidGraph, "%s id %q has surrounding whitespace", kind, id)
	}

	return nil
}

// ValidateNodeID validates a node identifier from a graph document.
func ValidateNodeID(id string) error {
	return validateID("node", id)
}

// ValidateEdgeID validates an explicit edge identifier. Edges without an id
// are assigned one on load and never reach this check.
func ValidateEdgeID(id string) error {
	return validateID("edge", id)
}

// ValidateScale checks a distance or layout scale. Scales must be positive
// finite numbers.
func ValidateScale(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidConfig, "%s must be finite, got %v", name, v)
	}
	if v <= 0 {
		return New(ErrCodeInvalidConfig, "%s must be positive, got %v", name, v)
	}
	return nil
}
