package validation

import "strings"

// normalizedName matches the session lookup rules: trimmed, case-insensitive.
func normalizedName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
