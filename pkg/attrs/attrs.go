// Package attrs reads values back out of slog-style key/value slices.
package attrs

// ExtractString returns the string stored under key in a
// [key1, value1, key2, value2, ...] slice, or "" when absent or not a string.
func ExtractString(attrs []any, key string) string {
	if v, ok := lookup(attrs, key).(string); ok {
		return v
	}
	return ""
}

func lookup(attrs []any, key string) any {
	for i := 0; i+1 < len(attrs); i += 2 {
		if k, ok := attrs[i].(string); ok && k == key {
			return attrs[i+1]
		}
	}
	return nil
}
