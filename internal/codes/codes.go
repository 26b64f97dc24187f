// Package codes restricts free-form and radio-button form values to closed,
// documented code sets. Tables with a safe catch-all fall back to Other;
// tables without one (lien type, disposition status, citizenship, housing)
// yield the empty string so callers store NULL rather than a misclassified
// value.
package codes

import "strings"

// Table is a closed mapping from normalized raw input to a canonical code.
type Table struct {
	Name   string
	Values map[string]string
}

// Map canonicalizes raw against table, substituting fallback when the value
// is absent or unmapped. Matching is case and whitespace insensitive.
func Map(raw string, table Table, fallback string) string {
	if code, ok := Lookup(raw, table); ok {
		return code
	}
	return fallback
}

// MapOrEmpty canonicalizes raw against a table with no safe catch-all.
// Unmapped input yields "" which persists as NULL, meaning "unspecified".
func MapOrEmpty(raw string, table Table) string {
	code, _ := Lookup(raw, table)
	return code
}

// Lookup is the matching primitive: it reports whether raw mapped, letting
// callers observe fallback substitutions before applying one.
func Lookup(raw string, table Table) (string, bool) {
	code, ok := table.Values[normalizeKey(raw)]
	return code, ok
}

// normalizeKey lowercases and removes whitespace, hyphens, and underscores so
// "Primary Residence", "primary-residence", and "primaryresidence" collide.
func normalizeKey(raw string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(raw)) {
		switch r {
		case ' ', '\t', '-', '_', '/':
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
