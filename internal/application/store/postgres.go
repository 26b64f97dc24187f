package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"mortgageportal/internal/application/models"
	"mortgageportal/pkg/platform/sentinel"
	"mortgageportal/pkg/platform/tx"
)

// PostgresStore writes and reads application graphs against Postgres. It is
// constructed with its database handle; nothing here reaches for globals.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// execer is the subset of sql.DB and sql.Tx the writer needs.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// exec returns the ambient transaction when one is in context, otherwise the
// pool. Save called outside a transaction opens its own.
func (s *PostgresStore) exec(ctx context.Context) execer {
	if t, ok := tx.From(ctx); ok {
		return t
	}
	return s.db
}

func (s *PostgresStore) query(ctx context.Context) querier {
	if t, ok := tx.From(ctx); ok {
		return t
	}
	return s.db
}

// Save inserts every row of the graph. When the context already carries a
// transaction the rows join it and the caller owns commit and rollback;
// otherwise Save opens one so the graph still lands atomically.
func (s *PostgresStore) Save(ctx context.Context, g *models.Graph) (uuid.UUID, error) {
	if _, ok := tx.From(ctx); ok {
		if err := s.insertGraph(ctx, g); err != nil {
			return uuid.Nil, err
		}
		return g.ApplicationID(), nil
	}

	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, fmt.Errorf("begin transaction: %w", err)
	}
	if err := s.insertGraph(tx.WithTx(ctx, dbTx), g); err != nil {
		if rbErr := dbTx.Rollback(); rbErr != nil {
			return uuid.Nil, errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return uuid.Nil, err
	}
	if err := dbTx.Commit(); err != nil {
		return uuid.Nil, fmt.Errorf("commit transaction: %w", err)
	}
	return g.ApplicationID(), nil
}

func (s *PostgresStore) insertGraph(ctx context.Context, g *models.Graph) error {
	ex := s.exec(ctx)
	for _, r := range graphRows(g) {
		if _, err := ex.ExecContext(ctx, insertSQL(r.table, r.columns), r.values...); err != nil {
			return fmt.Errorf("insert %s: %w", r.table, err)
		}
	}
	return nil
}

// FindApplication loads a single application row.
func (s *PostgresStore) FindApplication(ctx context.Context, id uuid.UUID) (models.LoanApplication, error) {
	const q = `
		SELECT id, user_id, prior_application_id, credit_type, loan_purpose,
		       loan_term_months, loan_type, status, section_status, created_at
		FROM loan_applications
		WHERE id = $1`

	var a models.LoanApplication
	err := s.query(ctx).QueryRowContext(ctx, q, id).Scan(
		&a.ID, &a.UserID, &a.PriorApplicationID, &a.CreditType, &a.LoanPurpose,
		&a.LoanTermMonths, &a.LoanType, &a.Status, &a.SectionStatus, &a.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.LoanApplication{}, fmt.Errorf("application %s: %w", id, sentinel.ErrNotFound)
	}
	if err != nil {
		return models.LoanApplication{}, fmt.Errorf("query application: %w", err)
	}
	return a, nil
}

// CountEntities tallies child rows for one application across every table.
func (s *PostgresStore) CountEntities(ctx context.Context, applicationID uuid.UUID) (EntityCounts, error) {
	const q = `
		SELECT
			(SELECT COUNT(*) FROM application_borrowers ab WHERE ab.application_id = $1),
			(SELECT COUNT(*) FROM borrower_dependents d
				JOIN application_borrowers ab ON ab.borrower_id = d.borrower_id
				WHERE ab.application_id = $1),
			(SELECT COUNT(*) FROM borrower_addresses a
				JOIN application_borrowers ab ON ab.borrower_id = a.borrower_id
				WHERE ab.application_id = $1),
			(SELECT COUNT(*) FROM borrower_employments e
				JOIN application_borrowers ab ON ab.borrower_id = e.borrower_id
				WHERE ab.application_id = $1),
			(SELECT COUNT(*) FROM employment_income_breakdowns ib
				JOIN borrower_employments e ON e.id = ib.employment_id
				JOIN application_borrowers ab ON ab.borrower_id = e.borrower_id
				WHERE ab.application_id = $1),
			(SELECT COUNT(*) FROM other_incomes o
				JOIN application_borrowers ab ON ab.borrower_id = o.borrower_id
				WHERE ab.application_id = $1),
			(SELECT COUNT(*) FROM asset_accounts a
				JOIN application_borrowers ab ON ab.borrower_id = a.borrower_id
				WHERE ab.application_id = $1),
			(SELECT COUNT(*) FROM asset_credit_others a
				JOIN application_borrowers ab ON ab.borrower_id = a.borrower_id
				WHERE ab.application_id = $1),
			(SELECT COUNT(*) FROM liabilities l
				JOIN application_borrowers ab ON ab.borrower_id = l.borrower_id
				WHERE ab.application_id = $1),
			(SELECT COUNT(*) FROM other_liability_expenses o
				JOIN application_borrowers ab ON ab.borrower_id = o.borrower_id
				WHERE ab.application_id = $1),
			(SELECT COUNT(*) FROM properties_owned p
				JOIN application_borrowers ab ON ab.borrower_id = p.borrower_id
				WHERE ab.application_id = $1),
			(SELECT COUNT(*) FROM property_mortgages pm
				JOIN properties_owned p ON p.id = pm.property_id
				JOIN application_borrowers ab ON ab.borrower_id = p.borrower_id
				WHERE ab.application_id = $1),
			(SELECT COUNT(*) FROM subject_properties sp WHERE sp.application_id = $1),
			(SELECT COUNT(*) FROM subject_new_mortgages m
				JOIN subject_properties sp ON sp.id = m.subject_property_id
				WHERE sp.application_id = $1),
			(SELECT COUNT(*) FROM gifts_or_grants g
				JOIN subject_properties sp ON sp.id = g.subject_property_id
				WHERE sp.application_id = $1),
			(SELECT COUNT(*) FROM borrower_declarations d
				JOIN application_borrowers ab ON ab.borrower_id = d.borrower_id
				WHERE ab.application_id = $1)`

	var c EntityCounts
	err := s.query(ctx).QueryRowContext(ctx, q, applicationID).Scan(
		&c.Borrowers, &c.Dependents, &c.Addresses, &c.Employments,
		&c.IncomeBreakdowns, &c.OtherIncomes, &c.AssetAccounts,
		&c.AssetCreditOthers, &c.Liabilities, &c.OtherLiabilities,
		&c.PropertiesOwned, &c.PropertyMortgages, &c.SubjectProperties,
		&c.SubjectNewMortgages, &c.GiftsOrGrants, &c.Declarations,
	)
	if err != nil {
		return EntityCounts{}, fmt.Errorf("count entities: %w", err)
	}
	return c, nil
}

// ListLiabilities returns the liabilities saved under one application.
func (s *PostgresStore) ListLiabilities(ctx context.Context, applicationID uuid.UUID) ([]models.Liability, error) {
	const q = `
		SELECT l.id, l.borrower_id, l.account_type, l.company, l.account_masked,
		       l.unpaid_balance, l.monthly_payment, l.payoff_at_closing
		FROM liabilities l
		JOIN application_borrowers ab ON ab.borrower_id = l.borrower_id
		WHERE ab.application_id = $1
		ORDER BY l.id`

	rows, err := s.query(ctx).QueryContext(ctx, q, applicationID)
	if err != nil {
		return nil, fmt.Errorf("query liabilities: %w", err)
	}
	defer rows.Close()

	var out []models.Liability
	for rows.Next() {
		var l models.Liability
		if err := rows.Scan(
			&l.ID, &l.BorrowerID, &l.AccountType, &l.Company, &l.AccountMasked,
			&l.UnpaidBalance, &l.MonthlyPayment, &l.PayoffAtClosing,
		); err != nil {
			return nil, fmt.Errorf("scan liability: %w", err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate liabilities: %w", err)
	}
	return out, nil
}

// SQLTxRunner opens a database transaction, stores it in context, runs fn,
// and commits or rolls back. Every store that joins through tx.From writes
// inside the same transaction.
type SQLTxRunner struct {
	db *sql.DB
}

func NewSQLTxRunner(db *sql.DB) *SQLTxRunner {
	return &SQLTxRunner{db: db}
}

func (r *SQLTxRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx.WithTx(ctx, dbTx)); err != nil {
		if rbErr := dbTx.Rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return err
	}
	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
