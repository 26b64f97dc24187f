// Package legacy maintains the wide-row projection that older reporting
// tools still read. The row is one-per-user and carries a flattened summary
// of the latest application. Historically this row was written by a second
// code path and could drift from the normalized tables; it is now derived
// from the same graph, inside the same transaction, so the two can never
// disagree.
package legacy

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"mortgageportal/internal/application/models"
	"mortgageportal/pkg/platform/tx"
)

// Row is the flattened projection of one user's latest application.
type Row struct {
	UserID            string
	ApplicationID     uuid.UUID
	Status            string
	FirstName         *string
	LastName          *string
	Email             *string
	CellPhone         *string
	LoanPurpose       *string
	LoanAmount        *float64
	PropertyStreet    *string
	PropertyCity      *string
	PropertyState     *string
	PropertyZip       *string
	PropertyValue     *float64
	EmployerName      *string
	MonthlyIncome     *float64
	LiabilityCount    int
	TotalLiabilities  *float64
	AssetAccountCount int
	TotalAssets       *float64
	SavedAt           time.Time
}

// Project flattens a graph into the legacy row shape.
func Project(g *models.Graph) Row {
	r := Row{
		UserID:        g.Application.UserID,
		ApplicationID: g.ApplicationID(),
		Status:        g.Application.Status,
		LoanPurpose:   g.Application.LoanPurpose,
		SavedAt:       g.Application.CreatedAt,
	}
	if len(g.Borrowers) > 0 {
		b := g.Borrowers[0]
		r.FirstName = &b.FirstName
		r.LastName = &b.LastName
		r.Email = b.Email
		r.CellPhone = b.CellPhone
	}
	if sp := g.SubjectProperty; sp != nil {
		r.LoanAmount = sp.LoanAmount
		r.PropertyStreet = sp.Street
		r.PropertyCity = sp.City
		r.PropertyState = sp.State
		r.PropertyZip = sp.Zip
		r.PropertyValue = sp.Value
	}
	for _, e := range g.Employments {
		if e.Category == models.EmploymentCurrent {
			name := e.EmployerName
			r.EmployerName = &name
			r.MonthlyIncome = e.GrossMonthlyIncome
			break
		}
	}
	r.LiabilityCount = len(g.Liabilities)
	liabilityTotals := make([]*float64, 0, len(g.Liabilities))
	for _, l := range g.Liabilities {
		liabilityTotals = append(liabilityTotals, l.UnpaidBalance)
	}
	r.TotalLiabilities = sumKnown(liabilityTotals)

	r.AssetAccountCount = len(g.AssetAccounts)
	assetTotals := make([]*float64, 0, len(g.AssetAccounts))
	for _, a := range g.AssetAccounts {
		assetTotals = append(assetTotals, a.CashValue)
	}
	r.TotalAssets = sumKnown(assetTotals)
	return r
}

// sumKnown adds non-nil values, returning nil when none were present so an
// empty section stays NULL rather than becoming zero.
func sumKnown(values []*float64) *float64 {
	var total float64
	found := false
	for _, v := range values {
		if v != nil {
			total += *v
			found = true
		}
	}
	if !found {
		return nil
	}
	return &total
}

// Store upserts legacy rows. It joins the transaction in context when one is
// present, which is how the save pipeline keeps projection and normalized
// tables consistent.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) exec(ctx context.Context) interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
} {
	if t, ok := tx.From(ctx); ok {
		return t
	}
	return s.db
}

// Upsert writes the projection for the graph's user, replacing any prior row.
func (s *Store) Upsert(ctx context.Context, g *models.Graph) error {
	r := Project(g)

	const q = `
		INSERT INTO legacy_application_rows (
			user_id, application_id, status, first_name, last_name, email,
			cell_phone, loan_purpose, loan_amount, property_street, property_city,
			property_state, property_zip, property_value, employer_name,
			monthly_income, liability_count, total_liabilities,
			asset_account_count, total_assets, saved_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21
		)
		ON CONFLICT (user_id) DO UPDATE SET
			application_id = EXCLUDED.application_id,
			status = EXCLUDED.status,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			email = EXCLUDED.email,
			cell_phone = EXCLUDED.cell_phone,
			loan_purpose = EXCLUDED.loan_purpose,
			loan_amount = EXCLUDED.loan_amount,
			property_street = EXCLUDED.property_street,
			property_city = EXCLUDED.property_city,
			property_state = EXCLUDED.property_state,
			property_zip = EXCLUDED.property_zip,
			property_value = EXCLUDED.property_value,
			employer_name = EXCLUDED.employer_name,
			monthly_income = EXCLUDED.monthly_income,
			liability_count = EXCLUDED.liability_count,
			total_liabilities = EXCLUDED.total_liabilities,
			asset_account_count = EXCLUDED.asset_account_count,
			total_assets = EXCLUDED.total_assets,
			saved_at = EXCLUDED.saved_at`

	_, err := s.exec(ctx).ExecContext(ctx, q,
		r.UserID, r.ApplicationID, r.Status, r.FirstName, r.LastName, r.Email,
		r.CellPhone, r.LoanPurpose, r.LoanAmount, r.PropertyStreet, r.PropertyCity,
		r.PropertyState, r.PropertyZip, r.PropertyValue, r.EmployerName,
		r.MonthlyIncome, r.LiabilityCount, r.TotalLiabilities,
		r.AssetAccountCount, r.TotalAssets, r.SavedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert legacy row: %w", err)
	}
	return nil
}
