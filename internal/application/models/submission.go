package models

import (
	"net/url"
	"strings"

	"mortgageportal/internal/normalize"
)

// Submission is one raw form post: hundreds of optional, stringly-typed
// fields keyed by their form names (borrowerFirstName, loanAmount4,
// hasLiabilities2c, accountType2c1, ...). It carries no typing policy of its
// own; the builder pulls fields through internal/normalize.
//
// Repeated blocks use a 1-based slot suffix (accountType2c1 .. accountType2c5)
// so the builder can loop over slots instead of enumerating them.
type Submission struct {
	values url.Values
}

// SubmissionFromForm wraps a parsed form body.
func SubmissionFromForm(values url.Values) *Submission {
	return &Submission{values: values}
}

// SubmissionFromMap is a convenience for tests and programmatic callers.
func SubmissionFromMap(fields map[string]string) *Submission {
	values := make(url.Values, len(fields))
	for k, v := range fields {
		values.Set(k, v)
	}
	return &Submission{values: values}
}

// Get returns the trimmed field value, "" when absent.
func (s *Submission) Get(key string) string {
	return strings.TrimSpace(s.values.Get(key))
}

// Slot returns the trimmed value of a repeated field, slot numbering from 1.
func (s *Submission) Slot(key string, slot int) string {
	return s.Get(key + itoa(slot))
}

// Gate evaluates a has-section flag. Absent or unparsable flags never open a
// section.
func (s *Submission) Gate(key string) bool {
	return normalize.TriStateOf(s.Get(key)).IsTrue()
}

// Tri parses a tri-state boolean field.
func (s *Submission) Tri(key string) normalize.TriState {
	return normalize.TriStateOf(s.Get(key))
}

// TriSlot parses a tri-state boolean in a repeated block.
func (s *Submission) TriSlot(key string, slot int) normalize.TriState {
	return normalize.TriStateOf(s.Slot(key, slot))
}

// Has reports whether the field was submitted with non-blank content.
func (s *Submission) Has(key string) bool {
	return s.Get(key) != ""
}

func itoa(n int) string {
	// slots are single digit by construction
	return string(rune('0' + n))
}
