package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type NormalizeSuite struct {
	suite.Suite
}

func TestNormalizeSuite(t *testing.T) {
	suite.Run(t, new(NormalizeSuite))
}

func (s *NormalizeSuite) TestNilIfEmpty() {
	s.Run("whitespace collapses to nil", func() {
		s.Nil(NilIfEmpty(""))
		s.Nil(NilIfEmpty("   "))
		s.Nil(NilIfEmpty("\t\n"))
	})

	s.Run("content is trimmed and kept", func() {
		got := NilIfEmpty("  Jane ")
		s.Require().NotNil(got)
		s.Equal("Jane", *got)
	})
}

func (s *NormalizeSuite) TestDecimal() {
	s.Run("plain number parses", func() {
		got := Decimal("350000")
		s.Require().NotNil(got)
		s.Equal(350000.0, *got)
	})

	s.Run("currency formatting is stripped", func() {
		got := Decimal("$1,200.50")
		s.Require().NotNil(got)
		s.Equal(1200.50, *got)
	})

	s.Run("negative values survive", func() {
		got := Decimal("-42.5")
		s.Require().NotNil(got)
		s.Equal(-42.5, *got)
	})

	s.Run("garbage yields nil without panic", func() {
		for _, input := range []string{"", "abc", "$", "N/A", "--", "...", "none"} {
			s.Nil(Decimal(input), "input %q", input)
		}
	})
}

func (s *NormalizeSuite) TestInt() {
	s.Run("integer parses", func() {
		got := Int("12")
		s.Require().NotNil(got)
		s.Equal(12, *got)
	})

	s.Run("fraction truncates toward zero", func() {
		got := Int("3.9")
		s.Require().NotNil(got)
		s.Equal(3, *got)
	})

	s.Run("garbage yields nil", func() {
		s.Nil(Int("abc"))
		s.Nil(Int(""))
	})
}

func (s *NormalizeSuite) TestDate() {
	s.Run("iso layout", func() {
		got := Date("1985-06-15")
		s.Require().NotNil(got)
		s.Equal(time.Date(1985, 6, 15, 0, 0, 0, 0, time.UTC), *got)
	})

	s.Run("us layout", func() {
		got := Date("06/15/1985")
		s.Require().NotNil(got)
		s.Equal(1985, got.Year())
	})

	s.Run("short us layout", func() {
		got := Date("6/5/1985")
		s.Require().NotNil(got)
		s.Equal(time.June, got.Month())
	})

	s.Run("garbage yields nil", func() {
		s.Nil(Date("yesterday"))
		s.Nil(Date(""))
		s.Nil(Date("13/45/9999"))
	})
}

func (s *NormalizeSuite) TestLast4() {
	s.Run("formatted ssn reduces to last four", func() {
		got := Last4("123-45-6789")
		s.Require().NotNil(got)
		s.Equal("6789", *got)
	})

	s.Run("bare digits work", func() {
		got := Last4("123456789")
		s.Require().NotNil(got)
		s.Equal("6789", *got)
	})

	s.Run("too few digits yields nil", func() {
		s.Nil(Last4("123"))
		s.Nil(Last4(""))
		s.Nil(Last4("ab-cd"))
	})
}

func (s *NormalizeSuite) TestTriStateOf() {
	s.Run("truthy spellings", func() {
		for _, input := range []string{"true", "TRUE", " Yes ", "y", "on", "1"} {
			s.Equal(True, TriStateOf(input), "input %q", input)
		}
	})

	s.Run("falsy spellings", func() {
		for _, input := range []string{"false", "No", "n", "off", "0"} {
			s.Equal(False, TriStateOf(input), "input %q", input)
		}
	})

	s.Run("everything else is unknown", func() {
		for _, input := range []string{"", "maybe", "2", "null", "undefined"} {
			s.Equal(Unknown, TriStateOf(input), "input %q", input)
		}
	})
}

func (s *NormalizeSuite) TestTriStateConversions() {
	s.Run("bool pointer", func() {
		s.Nil(Unknown.Bool())
		s.True(*True.Bool())
		s.False(*False.Bool())
	})

	s.Run("or false collapses unknown", func() {
		s.False(Unknown.OrFalse())
		s.True(True.OrFalse())
		s.False(False.OrFalse())
	})

	s.Run("gate semantics", func() {
		s.True(True.IsTrue())
		s.False(False.IsTrue())
		s.False(Unknown.IsTrue())
	})
}
