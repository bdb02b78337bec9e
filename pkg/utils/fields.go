package utils

import "strconv"

// StringField reads a string value from a loosely typed field map,
// returning fallback when the key is absent or not a string.
func StringField(fields map[string]any, key, fallback string) string {
	if v, ok := fields[key]; ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return fallback
}

// IntField reads an integer value from a loosely typed field map.
// JSON decoding produces float64 for numbers, yaml produces int, and
// users may pass numeric strings; all three are accepted.
func IntField(fields map[string]any, key string, fallback int) int {
	v, ok := fields[key]
	if !ok {
		return fallback
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case string:
		if parsed, err := strconv.Atoi(n); err == nil {
			return parsed
		}
	}
	return fallback
}
