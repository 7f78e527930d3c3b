// Package normalize provides helper functions for consistent string normalization
// across the application. Use these helpers instead of scattered strings.ToLower
// and strings.TrimSpace calls to ensure consistent behavior.
package normalize

import "strings"

// Email normalizes an email address by trimming whitespace and converting to lowercase.
// This is the canonical way to normalize emails before storage or comparison.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name normalizes a display name or title by trimming whitespace.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Priority normalizes a contact priority value by trimming whitespace and
// converting to lowercase.
func Priority(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// SlugParam normalizes a slug-or-id path segment by trimming whitespace and
// converting to lowercase. Slugs are generated lowercase, so lookups fold
// case too.
func SlugParam(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// QueryParam normalizes a query parameter by trimming whitespace.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}
