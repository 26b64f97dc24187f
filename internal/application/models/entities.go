package models

import (
	"time"

	"github.com/google/uuid"
)

// Entity identifiers are generated at graph-build time so every child row
// carries its parent reference before anything touches the database. The
// writer persists parents before children inside one transaction.

// LoanApplication is the aggregate root, one per save call (append-only
// history: saves create new applications, never mutate old ones).
type LoanApplication struct {
	ID                 uuid.UUID
	UserID             string
	PriorApplicationID *uuid.UUID
	CreditType         *string
	LoanPurpose        *string
	LoanTermMonths     *int
	LoanType           *string
	Status             string
	SectionStatus      string // opaque per-section workflow blob, stored as-is
	CreatedAt          time.Time
}

// ApplicationBorrower links an application to its borrowers. Today every save
// carries exactly one primary borrower; the link table keeps co-borrowers
// possible without a schema change.
type ApplicationBorrower struct {
	ID            uuid.UUID
	ApplicationID uuid.UUID
	BorrowerID    uuid.UUID
	IsPrimary     bool
}

type Borrower struct {
	ID             uuid.UUID
	FirstName      string
	MiddleName     *string
	LastName       string
	Suffix         *string
	SSNLast4       *string
	DateOfBirth    *time.Time
	Citizenship    *string
	MaritalStatus  *string
	DependentCount *int
	Email          *string
	HomePhone      *string
	CellPhone      *string
	WorkPhone      *string
}

type Dependent struct {
	ID         uuid.UUID
	BorrowerID uuid.UUID
	Age        int
}

// Address types.
const (
	AddressCurrent = "Current"
	AddressFormer  = "Former"
	AddressMailing = "Mailing"
)

type Address struct {
	ID          uuid.UUID
	BorrowerID  uuid.UUID
	Type        string
	Street      string
	Unit        *string
	City        *string
	State       *string
	Zip         *string
	Country     *string
	HousingType *string
	MonthlyRent *float64
	Years       *int
	Months      *int
}

// Employment categories.
const (
	EmploymentCurrent    = "Current"
	EmploymentAdditional = "Additional"
	EmploymentPrevious   = "Previous"
)

type Employment struct {
	ID                  uuid.UUID
	BorrowerID          uuid.UUID
	Category            string
	EmployerName        string
	Phone               *string
	Street              *string
	City                *string
	State               *string
	Zip                 *string
	Position            *string
	StartDate           *time.Time
	EndDate             *time.Time
	YearsInProfession   *int
	SelfEmployed        *bool
	OwnershipShare25Pct *bool
	GrossMonthlyIncome  *float64
}

// Income breakdown types.
const (
	IncomeBase                 = "Base"
	IncomeOvertime             = "Overtime"
	IncomeBonus                = "Bonus"
	IncomeCommission           = "Commission"
	IncomeMilitaryEntitlements = "MilitaryEntitlements"
	IncomeOther                = "Other"
)

type IncomeBreakdown struct {
	ID            uuid.UUID
	EmploymentID  uuid.UUID
	Type          string
	MonthlyAmount float64
}

type OtherIncome struct {
	ID            uuid.UUID
	BorrowerID    uuid.UUID
	Source        string
	MonthlyAmount *float64
}

type AssetAccount struct {
	ID            uuid.UUID
	BorrowerID    uuid.UUID
	AccountType   string
	Institution   *string
	AccountMasked *string
	CashValue     *float64
}

// AssetCreditOther categories.
const (
	AssetCreditCategoryAsset  = "Asset"
	AssetCreditCategoryCredit = "Credit"
)

type AssetCreditOther struct {
	ID         uuid.UUID
	BorrowerID uuid.UUID
	Category   string
	Type       string
	CashValue  *float64
}

type Liability struct {
	ID              uuid.UUID
	BorrowerID      uuid.UUID
	AccountType     string
	Company         *string
	AccountMasked   *string
	UnpaidBalance   *float64
	MonthlyPayment  *float64
	PayoffAtClosing *bool
}

type OtherLiabilityExpense struct {
	ID             uuid.UUID
	BorrowerID     uuid.UUID
	Type           string
	MonthlyPayment *float64
}

type PropertyOwned struct {
	ID                uuid.UUID
	BorrowerID        uuid.UUID
	Street            string
	Unit              *string
	City              *string
	State             *string
	Zip               *string
	Value             *float64
	Status            *string
	IntendedOccupancy *string
	MonthlyExpenses   *float64 // insurance, taxes, HOA estimate
	RentalIncome      *float64
}

type PropertyMortgage struct {
	ID              uuid.UUID
	PropertyID      uuid.UUID
	Creditor        *string
	AccountMasked   *string
	MonthlyPayment  *float64
	UnpaidBalance   *float64
	PayoffAtClosing *bool
	Type            *string
}

type Declaration struct {
	ID                        uuid.UUID
	BorrowerID                uuid.UUID
	OccupyAsPrimary           bool
	OwnershipInterestPast3Yrs bool
	PropertyTypeOwned         *string
	TitleHeld                 *string
	RelationshipWithSeller    bool
	BorrowingUndisclosedMoney bool
	UndisclosedMoneyAmount    *float64
	ApplyingOtherMortgage     bool
	ApplyingNewCredit         bool
	PropertySubjectToLien     bool
	CosignerOrGuarantor       bool
	OutstandingJudgments      bool
	DelinquentFederalDebt     bool
	PartyToLawsuit            bool
	ConveyedTitleInLieu       bool
	PreForeclosureSale        bool
	PropertyForeclosed        bool
	DeclaredBankruptcy        bool
	BankruptcyChapters        []string
}

type MilitaryService struct {
	ID                  uuid.UUID
	BorrowerID          uuid.UUID
	CurrentlyServing    bool
	Retired             bool
	NonActivatedReserve bool
	SurvivingSpouse     bool
	ServiceExpiration   *time.Time
}

type Demographics struct {
	ID         uuid.UUID
	BorrowerID uuid.UUID
	Sex        *string
}

type EthnicitySelection struct {
	ID             uuid.UUID
	DemographicsID uuid.UUID
	Ethnicity      string
}

type EthnicityDetailSelection struct {
	ID             uuid.UUID
	DemographicsID uuid.UUID
	Origin         string
	Description    *string
}

type RaceSelection struct {
	ID             uuid.UUID
	DemographicsID uuid.UUID
	Race           string
}

type RaceDetailSelection struct {
	ID             uuid.UUID
	DemographicsID uuid.UUID
	Detail         string
	Description    *string
}

type AmericanIndianTribe struct {
	ID             uuid.UUID
	DemographicsID uuid.UUID
	TribeName      string
}

type SubjectProperty struct {
	ID                    uuid.UUID
	ApplicationID         uuid.UUID
	LoanAmount            *float64
	LoanPurpose           *string
	Street                *string
	Unit                  *string
	City                  *string
	State                 *string
	Zip                   *string
	UnitCount             *int
	Value                 *float64
	Occupancy             *string
	FHASecondaryResidence *bool
	MixedUse              *bool
	ManufacturedHome      *bool
}

type SubjectNewMortgage struct {
	ID                uuid.UUID
	SubjectPropertyID uuid.UUID
	Creditor          *string
	LienType          *string
	MonthlyPayment    *float64
	LoanAmount        *float64
	CreditLimit       *float64
}

type SubjectPropertyRental struct {
	ID                uuid.UUID
	SubjectPropertyID uuid.UUID
	ExpectedMonthly   *float64
}

type GiftOrGrant struct {
	ID                uuid.UUID
	SubjectPropertyID uuid.UUID
	AssetType         string
	Deposited         *bool
	Source            string
	Value             *float64
}
