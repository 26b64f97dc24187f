// Package normalize holds the form-input coercion policy for the intake
// pipeline. Every function here is total: garbage in yields a nil (or
// Unknown) out, never a panic or an error. Downstream builders can therefore
// treat every optional field as either cleanly typed or absent.
package normalize

import (
	"strconv"
	"strings"
	"time"
	"unicode"
)

// NilIfEmpty trims s and returns nil when nothing remains.
func NilIfEmpty(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// Decimal parses a monetary or numeric string, tolerating currency symbols,
// grouping commas, and surrounding noise. Returns nil when no parsable
// number remains.
func Decimal(s string) *float64 {
	cleaned := stripNonNumeric(s)
	if cleaned == "" {
		return nil
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &value
}

// Int parses an integer string with the same stripping policy as Decimal.
// Fractional input is truncated toward zero.
func Int(s string) *int {
	value := Decimal(s)
	if value == nil {
		return nil
	}
	truncated := int(*value)
	return &truncated
}

// Date parses common form date spellings. Returns nil for anything else.
func Date(s string) *time.Time {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	for _, layout := range []string{"2006-01-02", "01/02/2006", "1/2/2006"} {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return &parsed
		}
	}
	return nil
}

// Last4 reduces a social security number to its last four digits. Formatting
// characters are ignored; fewer than four digits yields nil so a partial SSN
// is never persisted.
func Last4(ssn string) *string {
	var digits []rune
	for _, r := range ssn {
		if unicode.IsDigit(r) {
			digits = append(digits, r)
		}
	}
	if len(digits) < 4 {
		return nil
	}
	last := string(digits[len(digits)-4:])
	return &last
}

// MaskAccount reduces an account number to a masked last-four form
// ("****6789"). Returns nil when the input has no digits.
func MaskAccount(account string) *string {
	var digits []rune
	for _, r := range account {
		if unicode.IsDigit(r) {
			digits = append(digits, r)
		}
	}
	if len(digits) == 0 {
		return nil
	}
	tail := digits
	if len(tail) > 4 {
		tail = tail[len(tail)-4:]
	}
	masked := "****" + string(tail)
	return &masked
}

// stripNonNumeric keeps digits, at most one leading minus, and at most one
// decimal point. "$1,200.50" becomes "1200.50".
func stripNonNumeric(s string) string {
	var b strings.Builder
	seenDot := false
	seenDigit := false
	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			seenDigit = true
			b.WriteRune(r)
		case r == '.' && !seenDot:
			seenDot = true
			b.WriteRune(r)
		case r == '-' && b.Len() == 0:
			b.WriteRune(r)
		}
	}
	if !seenDigit {
		return ""
	}
	return b.String()
}
