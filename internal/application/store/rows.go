package store

import (
	"strconv"
	"strings"

	"github.com/lib/pq"

	"mortgageportal/internal/application/models"
)

// entityRow is the declarative entity-to-table binding. Each mapping function
// states its table and column list next to the matching value list, and the
// insert statement is generated from them, so a parameter/column mismatch
// cannot be written.
type entityRow struct {
	table   string
	columns []string
	values  []any
}

// insertSQL renders "INSERT INTO t (c1, c2) VALUES ($1, $2)".
func insertSQL(table string, columns []string) string {
	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = "$" + strconv.Itoa(i+1)
	}
	return "INSERT INTO " + table +
		" (" + strings.Join(columns, ", ") + ") VALUES (" + strings.Join(placeholders, ", ") + ")"
}

// graphRows flattens a graph into insertion order: every collection appears
// after the collection holding its parents.
func graphRows(g *models.Graph) []entityRow {
	rows := []entityRow{applicationRow(g.Application)}
	for _, b := range g.Borrowers {
		rows = append(rows, borrowerRow(b))
	}
	for _, link := range g.BorrowerLinks {
		rows = append(rows, borrowerLinkRow(link))
	}
	for _, d := range g.Dependents {
		rows = append(rows, dependentRow(d))
	}
	for _, a := range g.Addresses {
		rows = append(rows, addressRow(a))
	}
	for _, e := range g.Employments {
		rows = append(rows, employmentRow(e))
	}
	for _, i := range g.IncomeBreakdowns {
		rows = append(rows, incomeBreakdownRow(i))
	}
	for _, o := range g.OtherIncomes {
		rows = append(rows, otherIncomeRow(o))
	}
	for _, a := range g.AssetAccounts {
		rows = append(rows, assetAccountRow(a))
	}
	for _, a := range g.AssetCreditOthers {
		rows = append(rows, assetCreditRow(a))
	}
	for _, l := range g.Liabilities {
		rows = append(rows, liabilityRow(l))
	}
	for _, o := range g.OtherLiabilityExpenses {
		rows = append(rows, otherLiabilityRow(o))
	}
	for _, p := range g.PropertiesOwned {
		rows = append(rows, propertyOwnedRow(p))
	}
	for _, m := range g.PropertyMortgages {
		rows = append(rows, propertyMortgageRow(m))
	}
	if g.SubjectProperty != nil {
		rows = append(rows, subjectPropertyRow(*g.SubjectProperty))
	}
	for _, m := range g.SubjectNewMortgages {
		rows = append(rows, subjectNewMortgageRow(m))
	}
	if g.SubjectRental != nil {
		rows = append(rows, subjectRentalRow(*g.SubjectRental))
	}
	for _, gift := range g.GiftsOrGrants {
		rows = append(rows, giftRow(gift))
	}
	for _, d := range g.Declarations {
		rows = append(rows, declarationRow(d))
	}
	for _, m := range g.MilitaryServices {
		rows = append(rows, militaryServiceRow(m))
	}
	if g.Demographics != nil {
		rows = append(rows, demographicsRow(*g.Demographics))
	}
	for _, e := range g.Ethnicities {
		rows = append(rows, ethnicityRow(e))
	}
	for _, e := range g.EthnicityDetails {
		rows = append(rows, ethnicityDetailRow(e))
	}
	for _, r := range g.Races {
		rows = append(rows, raceRow(r))
	}
	for _, r := range g.RaceDetails {
		rows = append(rows, raceDetailRow(r))
	}
	for _, t := range g.Tribes {
		rows = append(rows, tribeRow(t))
	}
	return rows
}

func applicationRow(a models.LoanApplication) entityRow {
	return entityRow{
		table: "loan_applications",
		columns: []string{
			"id", "user_id", "prior_application_id", "credit_type", "loan_purpose",
			"loan_term_months", "loan_type", "status", "section_status", "created_at",
		},
		values: []any{
			a.ID, a.UserID, a.PriorApplicationID, a.CreditType, a.LoanPurpose,
			a.LoanTermMonths, a.LoanType, a.Status, a.SectionStatus, a.CreatedAt,
		},
	}
}

func borrowerRow(b models.Borrower) entityRow {
	return entityRow{
		table: "borrowers",
		columns: []string{
			"id", "first_name", "middle_name", "last_name", "suffix", "ssn_last4",
			"date_of_birth", "citizenship", "marital_status", "dependent_count",
			"email", "home_phone", "cell_phone", "work_phone",
		},
		values: []any{
			b.ID, b.FirstName, b.MiddleName, b.LastName, b.Suffix, b.SSNLast4,
			b.DateOfBirth, b.Citizenship, b.MaritalStatus, b.DependentCount,
			b.Email, b.HomePhone, b.CellPhone, b.WorkPhone,
		},
	}
}

func borrowerLinkRow(l models.ApplicationBorrower) entityRow {
	return entityRow{
		table:   "application_borrowers",
		columns: []string{"id", "application_id", "borrower_id", "is_primary"},
		values:  []any{l.ID, l.ApplicationID, l.BorrowerID, l.IsPrimary},
	}
}

func dependentRow(d models.Dependent) entityRow {
	return entityRow{
		table:   "borrower_dependents",
		columns: []string{"id", "borrower_id", "age"},
		values:  []any{d.ID, d.BorrowerID, d.Age},
	}
}

func addressRow(a models.Address) entityRow {
	return entityRow{
		table: "borrower_addresses",
		columns: []string{
			"id", "borrower_id", "address_type", "street", "unit", "city", "state",
			"zip", "country", "housing_type", "monthly_rent", "years_at_address",
			"months_at_address",
		},
		values: []any{
			a.ID, a.BorrowerID, a.Type, a.Street, a.Unit, a.City, a.State,
			a.Zip, a.Country, a.HousingType, a.MonthlyRent, a.Years, a.Months,
		},
	}
}

func employmentRow(e models.Employment) entityRow {
	return entityRow{
		table: "borrower_employments",
		columns: []string{
			"id", "borrower_id", "category", "employer_name", "phone", "street",
			"city", "state", "zip", "position", "start_date", "end_date",
			"years_in_profession", "self_employed", "ownership_share_25pct",
			"gross_monthly_income",
		},
		values: []any{
			e.ID, e.BorrowerID, e.Category, e.EmployerName, e.Phone, e.Street,
			e.City, e.State, e.Zip, e.Position, e.StartDate, e.EndDate,
			e.YearsInProfession, e.SelfEmployed, e.OwnershipShare25Pct,
			e.GrossMonthlyIncome,
		},
	}
}

func incomeBreakdownRow(i models.IncomeBreakdown) entityRow {
	return entityRow{
		table:   "employment_income_breakdowns",
		columns: []string{"id", "employment_id", "income_type", "monthly_amount"},
		values:  []any{i.ID, i.EmploymentID, i.Type, i.MonthlyAmount},
	}
}

func otherIncomeRow(o models.OtherIncome) entityRow {
	return entityRow{
		table:   "other_incomes",
		columns: []string{"id", "borrower_id", "source", "monthly_amount"},
		values:  []any{o.ID, o.BorrowerID, o.Source, o.MonthlyAmount},
	}
}

func assetAccountRow(a models.AssetAccount) entityRow {
	return entityRow{
		table: "asset_accounts",
		columns: []string{
			"id", "borrower_id", "account_type", "institution", "account_masked",
			"cash_value",
		},
		values: []any{
			a.ID, a.BorrowerID, a.AccountType, a.Institution, a.AccountMasked,
			a.CashValue,
		},
	}
}

func assetCreditRow(a models.AssetCreditOther) entityRow {
	return entityRow{
		table:   "asset_credit_others",
		columns: []string{"id", "borrower_id", "category", "asset_type", "cash_value"},
		values:  []any{a.ID, a.BorrowerID, a.Category, a.Type, a.CashValue},
	}
}

func liabilityRow(l models.Liability) entityRow {
	return entityRow{
		table: "liabilities",
		columns: []string{
			"id", "borrower_id", "account_type", "company", "account_masked",
			"unpaid_balance", "monthly_payment", "payoff_at_closing",
		},
		values: []any{
			l.ID, l.BorrowerID, l.AccountType, l.Company, l.AccountMasked,
			l.UnpaidBalance, l.MonthlyPayment, l.PayoffAtClosing,
		},
	}
}

func otherLiabilityRow(o models.OtherLiabilityExpense) entityRow {
	return entityRow{
		table:   "other_liability_expenses",
		columns: []string{"id", "borrower_id", "expense_type", "monthly_payment"},
		values:  []any{o.ID, o.BorrowerID, o.Type, o.MonthlyPayment},
	}
}

func propertyOwnedRow(p models.PropertyOwned) entityRow {
	return entityRow{
		table: "properties_owned",
		columns: []string{
			"id", "borrower_id", "street", "unit", "city", "state", "zip",
			"property_value", "disposition_status", "intended_occupancy",
			"monthly_expenses", "rental_income",
		},
		values: []any{
			p.ID, p.BorrowerID, p.Street, p.Unit, p.City, p.State, p.Zip,
			p.Value, p.Status, p.IntendedOccupancy, p.MonthlyExpenses,
			p.RentalIncome,
		},
	}
}

func propertyMortgageRow(m models.PropertyMortgage) entityRow {
	return entityRow{
		table: "property_mortgages",
		columns: []string{
			"id", "property_id", "creditor", "account_masked", "monthly_payment",
			"unpaid_balance", "payoff_at_closing", "mortgage_type",
		},
		values: []any{
			m.ID, m.PropertyID, m.Creditor, m.AccountMasked, m.MonthlyPayment,
			m.UnpaidBalance, m.PayoffAtClosing, m.Type,
		},
	}
}

func subjectPropertyRow(p models.SubjectProperty) entityRow {
	return entityRow{
		table: "subject_properties",
		columns: []string{
			"id", "application_id", "loan_amount", "loan_purpose", "street", "unit",
			"city", "state", "zip", "unit_count", "property_value", "occupancy",
			"fha_secondary_residence", "mixed_use", "manufactured_home",
		},
		values: []any{
			p.ID, p.ApplicationID, p.LoanAmount, p.LoanPurpose, p.Street, p.Unit,
			p.City, p.State, p.Zip, p.UnitCount, p.Value, p.Occupancy,
			p.FHASecondaryResidence, p.MixedUse, p.ManufacturedHome,
		},
	}
}

func subjectNewMortgageRow(m models.SubjectNewMortgage) entityRow {
	return entityRow{
		table: "subject_new_mortgages",
		columns: []string{
			"id", "subject_property_id", "creditor", "lien_type", "monthly_payment",
			"loan_amount", "credit_limit",
		},
		values: []any{
			m.ID, m.SubjectPropertyID, m.Creditor, m.LienType, m.MonthlyPayment,
			m.LoanAmount, m.CreditLimit,
		},
	}
}

func subjectRentalRow(r models.SubjectPropertyRental) entityRow {
	return entityRow{
		table:   "subject_property_rentals",
		columns: []string{"id", "subject_property_id", "expected_monthly_income"},
		values:  []any{r.ID, r.SubjectPropertyID, r.ExpectedMonthly},
	}
}

func giftRow(g models.GiftOrGrant) entityRow {
	return entityRow{
		table: "gifts_or_grants",
		columns: []string{
			"id", "subject_property_id", "asset_type", "deposited", "source", "value",
		},
		values: []any{
			g.ID, g.SubjectPropertyID, g.AssetType, g.Deposited, g.Source, g.Value,
		},
	}
}

func declarationRow(d models.Declaration) entityRow {
	// bankruptcy_chapters is NOT NULL; pq.Array on a nil slice binds SQL NULL,
	// so an absent chapter list must go over the wire as an empty array.
	chapters := d.BankruptcyChapters
	if chapters == nil {
		chapters = []string{}
	}
	return entityRow{
		table: "borrower_declarations",
		columns: []string{
			"id", "borrower_id", "occupy_as_primary", "ownership_interest_past3yrs",
			"property_type_owned", "title_held", "relationship_with_seller",
			"borrowing_undisclosed_money", "undisclosed_money_amount",
			"applying_other_mortgage", "applying_new_credit",
			"property_subject_to_lien", "cosigner_or_guarantor",
			"outstanding_judgments", "delinquent_federal_debt", "party_to_lawsuit",
			"conveyed_title_in_lieu", "pre_foreclosure_sale", "property_foreclosed",
			"declared_bankruptcy", "bankruptcy_chapters",
		},
		values: []any{
			d.ID, d.BorrowerID, d.OccupyAsPrimary, d.OwnershipInterestPast3Yrs,
			d.PropertyTypeOwned, d.TitleHeld, d.RelationshipWithSeller,
			d.BorrowingUndisclosedMoney, d.UndisclosedMoneyAmount,
			d.ApplyingOtherMortgage, d.ApplyingNewCredit,
			d.PropertySubjectToLien, d.CosignerOrGuarantor,
			d.OutstandingJudgments, d.DelinquentFederalDebt, d.PartyToLawsuit,
			d.ConveyedTitleInLieu, d.PreForeclosureSale, d.PropertyForeclosed,
			d.DeclaredBankruptcy, pq.Array(chapters),
		},
	}
}

func militaryServiceRow(m models.MilitaryService) entityRow {
	return entityRow{
		table: "borrower_military_services",
		columns: []string{
			"id", "borrower_id", "currently_serving", "retired",
			"non_activated_reserve", "surviving_spouse", "service_expiration",
		},
		values: []any{
			m.ID, m.BorrowerID, m.CurrentlyServing, m.Retired,
			m.NonActivatedReserve, m.SurvivingSpouse, m.ServiceExpiration,
		},
	}
}

func demographicsRow(d models.Demographics) entityRow {
	return entityRow{
		table:   "borrower_demographics",
		columns: []string{"id", "borrower_id", "sex"},
		values:  []any{d.ID, d.BorrowerID, d.Sex},
	}
}

func ethnicityRow(e models.EthnicitySelection) entityRow {
	return entityRow{
		table:   "ethnicity_selections",
		columns: []string{"id", "demographics_id", "ethnicity"},
		values:  []any{e.ID, e.DemographicsID, e.Ethnicity},
	}
}

func ethnicityDetailRow(e models.EthnicityDetailSelection) entityRow {
	return entityRow{
		table:   "ethnicity_detail_selections",
		columns: []string{"id", "demographics_id", "origin", "description"},
		values:  []any{e.ID, e.DemographicsID, e.Origin, e.Description},
	}
}

func raceRow(r models.RaceSelection) entityRow {
	return entityRow{
		table:   "race_selections",
		columns: []string{"id", "demographics_id", "race"},
		values:  []any{r.ID, r.DemographicsID, r.Race},
	}
}

func raceDetailRow(r models.RaceDetailSelection) entityRow {
	return entityRow{
		table:   "race_detail_selections",
		columns: []string{"id", "demographics_id", "detail", "description"},
		values:  []any{r.ID, r.DemographicsID, r.Detail, r.Description},
	}
}

func tribeRow(t models.AmericanIndianTribe) entityRow {
	return entityRow{
		table:   "american_indian_tribes",
		columns: []string{"id", "demographics_id", "tribe_name"},
		values:  []any{t.ID, t.DemographicsID, t.TribeName},
	}
}
