package validator

import "strings"

// Normalize trims, collapses inner whitespace runs to one space and lowercases.
func Normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// NormalizeOptional returns nil when the normalized value is empty.
func NormalizeOptional(s string) *string {
	n := Normalize(s)
	if n == "" {
		return nil
	}
	return &n
}

func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
