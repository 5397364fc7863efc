// Package strings provides string matching utilities.
package strings

import (
	"strings"
)

// ContainsFold reports whether substr is within s, ignoring case.
// An empty substr always matches.
func ContainsFold(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// AnyContainsFold reports whether any of fields contains substr, ignoring case.
//
// Example:
//
//	AnyContainsFold("ann", "Ann Lee", "ann@x.com")
//	// Returns: true
func AnyContainsFold(substr string, fields ...string) bool {
	needle := strings.ToLower(strings.TrimSpace(substr))
	if needle == "" {
		return true
	}
	for _, f := range fields {
		if ContainsFold(f, needle) {
			return true
		}
	}
	return false
}

// FirstNonEmpty returns the first value that is non-empty after trimming,
// or fallback when all are blank.
func FirstNonEmpty(fallback string, values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return fallback
}
