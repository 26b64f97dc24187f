package store

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"mortgageportal/internal/application/models"
	"mortgageportal/pkg/platform/sentinel"
)

type StoreSuite struct {
	suite.Suite
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func sampleGraph() *models.Graph {
	appID := uuid.New()
	borrowerID := uuid.New()
	empID := uuid.New()
	spID := uuid.New()

	balance := 2000.0
	payment := 75.0
	loanAmount := 350000.0

	return &models.Graph{
		Application: models.LoanApplication{
			ID:        appID,
			UserID:    "user-1",
			Status:    "Submitted",
			CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		},
		Borrowers: []models.Borrower{
			{ID: borrowerID, FirstName: "Jane", LastName: "Doe"},
		},
		BorrowerLinks: []models.ApplicationBorrower{
			{ID: uuid.New(), ApplicationID: appID, BorrowerID: borrowerID, IsPrimary: true},
		},
		Employments: []models.Employment{
			{ID: empID, BorrowerID: borrowerID, Category: models.EmploymentCurrent, EmployerName: "Acme"},
		},
		IncomeBreakdowns: []models.IncomeBreakdown{
			{ID: uuid.New(), EmploymentID: empID, Type: models.IncomeBase, MonthlyAmount: 8000},
		},
		Liabilities: []models.Liability{
			{ID: uuid.New(), BorrowerID: borrowerID, AccountType: "CreditCard", UnpaidBalance: &balance, MonthlyPayment: &payment},
		},
		SubjectProperty: &models.SubjectProperty{
			ID: spID, ApplicationID: appID, LoanAmount: &loanAmount,
		},
		SubjectNewMortgages: []models.SubjectNewMortgage{
			{ID: uuid.New(), SubjectPropertyID: spID},
		},
		Declarations: []models.Declaration{
			{ID: uuid.New(), BorrowerID: borrowerID, OccupyAsPrimary: true},
		},
	}
}

// ============================================================
// Insert statement generation
// ============================================================

func (s *StoreSuite) TestInsertSQL() {
	got := insertSQL("liabilities", []string{"id", "borrower_id", "account_type"})
	s.Equal("INSERT INTO liabilities (id, borrower_id, account_type) VALUES ($1, $2, $3)", got)
}

func (s *StoreSuite) TestRowValuesMatchColumns() {
	for _, r := range graphRows(sampleGraph()) {
		s.Run(r.table, func() {
			s.Len(r.values, len(r.columns))
			s.NotEmpty(r.columns)
		})
	}
}

// ============================================================
// Graph flattening order
// ============================================================

func (s *StoreSuite) TestGraphRowsParentBeforeChild() {
	rows := graphRows(sampleGraph())

	position := make(map[string]int)
	for i, r := range rows {
		if _, seen := position[r.table]; !seen {
			position[r.table] = i
		}
	}

	s.Equal(0, position["loan_applications"], "application root goes first")
	s.Less(position["borrowers"], position["application_borrowers"])
	s.Less(position["borrower_employments"], position["employment_income_breakdowns"])
	s.Less(position["subject_properties"], position["subject_new_mortgages"])
}

func (s *StoreSuite) TestDeclarationRowBindsEmptyChapterList() {
	row := declarationRow(models.Declaration{ID: uuid.New(), BorrowerID: uuid.New()})

	idx := -1
	for i, c := range row.columns {
		if c == "bankruptcy_chapters" {
			idx = i
		}
	}
	s.Require().GreaterOrEqual(idx, 0)

	v, err := row.values[idx].(driver.Valuer).Value()
	s.Require().NoError(err)
	s.NotNil(v, "no bankruptcy history still binds an empty array, never NULL")
}

func (s *StoreSuite) TestGraphRowsSkipsAbsentOptionals() {
	g := sampleGraph()
	g.SubjectProperty = nil
	g.SubjectNewMortgages = nil

	for _, r := range graphRows(g) {
		s.NotEqual("subject_properties", r.table)
		s.NotEqual("subject_new_mortgages", r.table)
	}
}

// ============================================================
// Memory store semantics
// ============================================================

func (s *StoreSuite) TestMemorySaveAndRead() {
	ctx := context.Background()
	mem := NewMemoryStore()
	g := sampleGraph()

	id, err := mem.Save(ctx, g)
	s.Require().NoError(err)
	s.Equal(g.ApplicationID(), id)

	app, err := mem.FindApplication(ctx, id)
	s.Require().NoError(err)
	s.Equal("user-1", app.UserID)

	counts, err := mem.CountEntities(ctx, id)
	s.Require().NoError(err)
	s.Equal(1, counts.Borrowers)
	s.Equal(1, counts.Liabilities)
	s.Equal(1, counts.SubjectProperties)

	liabilities, err := mem.ListLiabilities(ctx, id)
	s.Require().NoError(err)
	s.Require().Len(liabilities, 1)
	s.Equal("CreditCard", liabilities[0].AccountType)
}

func (s *StoreSuite) TestMemoryFindUnknownApplication() {
	mem := NewMemoryStore()
	_, err := mem.FindApplication(context.Background(), uuid.New())
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *StoreSuite) TestMemoryFailOnLeavesNothingBehind() {
	ctx := context.Background()
	mem := NewMemoryStore()
	mem.FailOn("liabilities")

	g := sampleGraph()
	_, err := mem.Save(ctx, g)
	s.Require().Error(err)
	s.Contains(err.Error(), "insert liabilities")

	s.Equal(0, mem.Len(), "no partial graph survives a failed save")
	_, err = mem.FindApplication(ctx, g.ApplicationID())
	s.ErrorIs(err, sentinel.ErrNotFound)

	mem.FailOn("")
	_, err = mem.Save(ctx, g)
	s.Require().NoError(err)
	s.Equal(1, mem.Len())
}

func (s *StoreSuite) TestMemoryRunInTxDiscardsOnError() {
	ctx := context.Background()
	mem := NewMemoryStore()
	g := sampleGraph()
	boom := errors.New("downstream step failed")

	err := mem.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := mem.Save(ctx, g); err != nil {
			return err
		}
		return boom
	})
	s.Require().ErrorIs(err, boom)
	s.Equal(0, mem.Len(), "a save inside a failed transaction does not commit")

	err = mem.RunInTx(ctx, func(ctx context.Context) error {
		_, err := mem.Save(ctx, g)
		return err
	})
	s.Require().NoError(err)
	s.Equal(1, mem.Len())
}
