package legacy

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"mortgageportal/internal/application/models"
)

type LegacySuite struct {
	suite.Suite
}

func TestLegacySuite(t *testing.T) {
	suite.Run(t, new(LegacySuite))
}

func ptr[T any](v T) *T { return &v }

// ============================================================
// Projection
// ============================================================

func (s *LegacySuite) TestProjectFullGraph() {
	appID := uuid.New()
	borrowerID := uuid.New()
	savedAt := time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)

	g := &models.Graph{
		Application: models.LoanApplication{
			ID:          appID,
			UserID:      "user-9",
			Status:      "Submitted",
			LoanPurpose: ptr("Purchase"),
			CreatedAt:   savedAt,
		},
		Borrowers: []models.Borrower{{
			ID:        borrowerID,
			FirstName: "Jane",
			LastName:  "Doe",
			Email:     ptr("jane@example.com"),
		}},
		Employments: []models.Employment{
			{BorrowerID: borrowerID, Category: models.EmploymentPrevious, EmployerName: "OldCo"},
			{BorrowerID: borrowerID, Category: models.EmploymentCurrent, EmployerName: "Acme", GrossMonthlyIncome: ptr(8500.0)},
		},
		Liabilities: []models.Liability{
			{BorrowerID: borrowerID, AccountType: "CreditCard", UnpaidBalance: ptr(2000.0)},
			{BorrowerID: borrowerID, AccountType: "Installment", UnpaidBalance: ptr(500.0)},
		},
		AssetAccounts: []models.AssetAccount{
			{BorrowerID: borrowerID, AccountType: "Checking", CashValue: ptr(12000.0)},
		},
		SubjectProperty: &models.SubjectProperty{
			ApplicationID: appID,
			LoanAmount:    ptr(350000.0),
			Street:        ptr("123 Main St"),
			City:          ptr("Springfield"),
			State:         ptr("IL"),
			Value:         ptr(400000.0),
		},
	}

	r := Project(g)

	s.Equal("user-9", r.UserID)
	s.Equal(appID, r.ApplicationID)
	s.Equal("Submitted", r.Status)
	s.Equal("Jane", *r.FirstName)
	s.Equal("jane@example.com", *r.Email)
	s.Equal("Purchase", *r.LoanPurpose)
	s.Equal(350000.0, *r.LoanAmount)
	s.Equal("123 Main St", *r.PropertyStreet)
	s.Equal("Acme", *r.EmployerName, "current employment wins over previous")
	s.Equal(8500.0, *r.MonthlyIncome)
	s.Equal(2, r.LiabilityCount)
	s.Equal(2500.0, *r.TotalLiabilities)
	s.Equal(1, r.AssetAccountCount)
	s.Equal(12000.0, *r.TotalAssets)
	s.Equal(savedAt, r.SavedAt)
}

func (s *LegacySuite) TestProjectWithoutBorrower() {
	g := &models.Graph{
		Application: models.LoanApplication{
			ID:     uuid.New(),
			UserID: "user-2",
			Status: "Submitted",
		},
	}

	r := Project(g)

	s.Nil(r.FirstName)
	s.Nil(r.LastName)
	s.Nil(r.EmployerName)
	s.Equal(0, r.LiabilityCount)
	s.Nil(r.TotalLiabilities, "no liabilities stays NULL, not zero")
	s.Nil(r.TotalAssets)
}

func (s *LegacySuite) TestProjectUnknownBalancesStayNull() {
	borrowerID := uuid.New()
	g := &models.Graph{
		Application: models.LoanApplication{ID: uuid.New(), UserID: "user-3", Status: "Submitted"},
		Liabilities: []models.Liability{
			{BorrowerID: borrowerID, AccountType: "CreditCard"},
			{BorrowerID: borrowerID, AccountType: "Installment"},
		},
	}

	r := Project(g)

	s.Equal(2, r.LiabilityCount)
	s.Nil(r.TotalLiabilities, "count reflects rows, total only known balances")
}
