// Package store persists built entity graphs. The postgres implementation is
// a pure persistence executor: ordering and gating decisions were already
// made by the builder, so the writer only binds rows to tables and keeps the
// whole graph inside one transaction.
package store

import (
	"context"

	"github.com/google/uuid"

	"mortgageportal/internal/application/models"
)

// Writer persists a complete graph atomically. On any failure nothing from
// the graph is visible afterwards.
type Writer interface {
	Save(ctx context.Context, g *models.Graph) (uuid.UUID, error)
}

// EntityCounts reports how many rows of each kind exist for one application.
// Tests use it to assert atomicity; the read-back endpoint uses it for the
// application summary.
type EntityCounts struct {
	Borrowers           int
	Dependents          int
	Addresses           int
	Employments         int
	IncomeBreakdowns    int
	OtherIncomes        int
	AssetAccounts       int
	AssetCreditOthers   int
	Liabilities         int
	OtherLiabilities    int
	PropertiesOwned     int
	PropertyMortgages   int
	SubjectProperties   int
	SubjectNewMortgages int
	GiftsOrGrants       int
	Declarations        int
}

// Reader serves the read-back surface.
type Reader interface {
	FindApplication(ctx context.Context, id uuid.UUID) (models.LoanApplication, error)
	CountEntities(ctx context.Context, applicationID uuid.UUID) (EntityCounts, error)
	ListLiabilities(ctx context.Context, applicationID uuid.UUID) ([]models.Liability, error)
}

// TxRunner provides the transactional boundary the save pipeline runs in.
// The SQL implementation opens a database transaction and carries it through
// context so every store joins it; the memory implementation just runs fn.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
