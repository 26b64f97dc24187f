package codes

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type CodesSuite struct {
	suite.Suite
}

func TestCodesSuite(t *testing.T) {
	suite.Run(t, new(CodesSuite))
}

func (s *CodesSuite) TestMap() {
	s.Run("case and whitespace insensitive", func() {
		s.Equal("PrimaryResidence", Map("Primary Residence", Occupancy, Other))
		s.Equal("PrimaryResidence", Map("primaryresidence", Occupancy, Other))
		s.Equal("PrimaryResidence", Map("  PRIMARY-RESIDENCE ", Occupancy, Other))
	})

	s.Run("unmapped input takes the fallback", func() {
		s.Equal(Other, Map("houseboat", Occupancy, Other))
		s.Equal(Other, Map("", Occupancy, Other))
	})

	s.Run("synonyms collapse to one code", func() {
		s.Equal("Refinance", Map("refi", LoanPurpose, Other))
		s.Equal("Refinance", Map("Cash-Out Refinance", LoanPurpose, Other))
		s.Equal("Retirement", Map("Pension", OtherIncomeSource, Other))
	})
}

func (s *CodesSuite) TestMapOrEmpty() {
	s.Run("closed sets without a catch-all yield empty", func() {
		s.Equal("", MapOrEmpty("mezzanine", LienType))
		s.Equal("", MapOrEmpty("", DispositionStatus))
		s.Equal("", MapOrEmpty("martian", Citizenship))
	})

	s.Run("known values still map", func() {
		s.Equal(LienFirst, MapOrEmpty("First Lien", LienType))
		s.Equal(LienSubordinate, MapOrEmpty("second", LienType))
		s.Equal(DispositionPendingSale, MapOrEmpty("pending sale", DispositionStatus))
		s.Equal(HousingNoExpense, MapOrEmpty("living rent free", HousingType))
	})
}

func (s *CodesSuite) TestLookup() {
	s.Run("reports whether the value mapped", func() {
		code, ok := Lookup("purchase", LoanPurpose)
		s.True(ok)
		s.Equal(PurposePurchase, code)

		_, ok = Lookup("barter", LoanPurpose)
		s.False(ok)
	})
}
