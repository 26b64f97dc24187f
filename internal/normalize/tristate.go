package normalize

import "strings"

// TriState is the single parsing rule for boolean-bearing form fields, which
// arrive as strings and are frequently absent. Unknown means the field was
// missing or unrecognizable, which is distinct from an explicit False.
type TriState int

const (
	Unknown TriState = iota
	True
	False
)

// TriStateOf recognizes the spellings browsers and the portal's form layer
// actually send. Anything else maps to Unknown.
func TriStateOf(s string) TriState {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "y", "on", "1":
		return True
	case "false", "no", "n", "off", "0":
		return False
	default:
		return Unknown
	}
}

// IsTrue reports whether the value is explicitly true. Gate flags use this:
// an absent gate never opens a section.
func (t TriState) IsTrue() bool {
	return t == True
}

// Bool returns the value as a nullable bool, nil for Unknown.
func (t TriState) Bool() *bool {
	switch t {
	case True:
		v := true
		return &v
	case False:
		v := false
		return &v
	default:
		return nil
	}
}

// OrFalse collapses Unknown to false. Declaration flags use this because a
// blank declaration checkbox is recorded as "no".
func (t TriState) OrFalse() bool {
	return t == True
}

func (t TriState) String() string {
	switch t {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "unknown"
	}
}
