package models

import "github.com/google/uuid"

// Graph is the fully-built, not-yet-persisted entity set for one save call.
// Slice order inside each collection is insertion order; the writer persists
// collections in the declared field order, which matches parent-before-child
// dependency order.
type Graph struct {
	Application   LoanApplication
	Borrowers     []Borrower
	BorrowerLinks []ApplicationBorrower

	Dependents             []Dependent
	Addresses              []Address
	Employments            []Employment
	IncomeBreakdowns       []IncomeBreakdown
	OtherIncomes           []OtherIncome
	AssetAccounts          []AssetAccount
	AssetCreditOthers      []AssetCreditOther
	Liabilities            []Liability
	OtherLiabilityExpenses []OtherLiabilityExpense
	PropertiesOwned        []PropertyOwned
	PropertyMortgages      []PropertyMortgage

	SubjectProperty     *SubjectProperty
	SubjectNewMortgages []SubjectNewMortgage
	SubjectRental       *SubjectPropertyRental
	GiftsOrGrants       []GiftOrGrant

	Declarations     []Declaration
	MilitaryServices []MilitaryService

	Demographics     *Demographics
	Ethnicities      []EthnicitySelection
	EthnicityDetails []EthnicityDetailSelection
	Races            []RaceSelection
	RaceDetails      []RaceDetailSelection
	Tribes           []AmericanIndianTribe
}

// ApplicationID returns the root identifier of the graph.
func (g *Graph) ApplicationID() uuid.UUID {
	return g.Application.ID
}

// PrimaryBorrowerID returns the primary borrower's id, or uuid.Nil when the
// submission carried no borrower (name absent).
func (g *Graph) PrimaryBorrowerID() uuid.UUID {
	for _, link := range g.BorrowerLinks {
		if link.IsPrimary {
			return link.BorrowerID
		}
	}
	return uuid.Nil
}
