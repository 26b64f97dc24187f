// Package builder assembles the normalized entity graph for one form
// submission. It owns the section gating rules and the parent-before-child
// ordering; it performs no I/O and never fails. A field that cannot be parsed
// is absent downstream, a section whose gate is off is skipped, and a
// repeated row missing its identifying fields is dropped. The only required
// output is the LoanApplication row itself.
package builder

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"mortgageportal/internal/application/models"
	"mortgageportal/internal/codes"
	"mortgageportal/internal/normalize"
	pstrings "mortgageportal/pkg/platform/strings"
)

// Slot counts for the repeated form blocks.
const (
	maxAssetAccounts    = 5
	maxAssetCredits     = 4
	maxLiabilities      = 5
	maxOtherLiabilities = 4
	maxOtherIncomes     = 4
	maxOwnedProperties  = 3
	maxNewMortgages     = 2
	maxGifts            = 2
)

// Builder turns submissions into graphs. It is safe for concurrent use.
type Builder struct {
	observeFallback func(table string)
	now             func() time.Time
}

// Option configures a Builder.
type Option func(*Builder)

// WithFallbackObserver registers a callback invoked whenever a non-empty enum
// value fails to map and the table default is substituted. The service wires
// this to a metrics counter.
func WithFallbackObserver(fn func(table string)) Option {
	return func(b *Builder) {
		if fn != nil {
			b.observeFallback = fn
		}
	}
}

// WithClock overrides the timestamp source for tests.
func WithClock(fn func() time.Time) Option {
	return func(b *Builder) {
		if fn != nil {
			b.now = fn
		}
	}
}

func New(opts ...Option) *Builder {
	b := &Builder{
		observeFallback: func(string) {},
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build runs the fifteen ordered construction steps. Children always follow
// the parent whose id they reference, so the writer can insert the graph's
// collections in declaration order.
func (b *Builder) Build(sub *models.Submission, userID string) *models.Graph {
	g := &models.Graph{}

	b.buildApplication(g, sub, userID)
	borrowerID, hasBorrower := b.buildBorrower(g, sub)
	if hasBorrower {
		b.buildDependents(g, sub, borrowerID)
		b.buildAddresses(g, sub, borrowerID)
		b.buildEmployments(g, sub, borrowerID)
		b.buildOtherIncomes(g, sub, borrowerID)
		b.buildAssetAccounts(g, sub, borrowerID)
		b.buildAssetCredits(g, sub, borrowerID)
		b.buildLiabilities(g, sub, borrowerID)
		b.buildOtherLiabilities(g, sub, borrowerID)
		b.buildPropertiesOwned(g, sub, borrowerID)
	}
	b.buildSubjectProperty(g, sub)
	if hasBorrower {
		b.buildDeclaration(g, sub, borrowerID)
		b.buildMilitaryService(g, sub, borrowerID)
		b.buildDemographics(g, sub, borrowerID)
	}
	return g
}

// Step 1: the application root row always exists.
func (b *Builder) buildApplication(g *models.Graph, sub *models.Submission, userID string) {
	app := models.LoanApplication{
		ID:             uuid.New(),
		UserID:         userID,
		CreditType:     normalize.NilIfEmpty(sub.Get("creditType")),
		LoanTermMonths: normalize.Int(sub.Get("loanTerm")),
		LoanType:       normalize.NilIfEmpty(sub.Get("loanType")),
		Status:         "Submitted",
		SectionStatus:  sub.Get("sectionStatus"),
		CreatedAt:      b.now(),
	}
	if status := sub.Get("status"); status != "" {
		app.Status = status
	}
	if purpose := sub.Get("loanPurpose4"); purpose != "" {
		mapped := b.mapEnum(purpose, codes.LoanPurpose, codes.Other)
		app.LoanPurpose = &mapped
	}
	if prior := sub.Get("continueApplicationId"); prior != "" {
		if parsed, err := uuid.Parse(prior); err == nil {
			app.PriorApplicationID = &parsed
		}
	}
	g.Application = app
}

// Step 2: the borrower exists only when both name parts are present; the
// application itself does not depend on it.
func (b *Builder) buildBorrower(g *models.Graph, sub *models.Submission) (uuid.UUID, bool) {
	first := sub.Get("borrowerFirstName")
	last := sub.Get("borrowerLastName")
	if first == "" || last == "" {
		return uuid.Nil, false
	}

	borrower := models.Borrower{
		ID:             uuid.New(),
		FirstName:      first,
		MiddleName:     normalize.NilIfEmpty(sub.Get("borrowerMiddleName")),
		LastName:       last,
		Suffix:         normalize.NilIfEmpty(sub.Get("borrowerSuffix")),
		SSNLast4:       normalize.Last4(sub.Get("ssn1a")),
		DateOfBirth:    normalize.Date(sub.Get("dob1a")),
		Citizenship:    b.mapEnumOrNil(sub.Get("citizenship1a"), codes.Citizenship),
		MaritalStatus:  normalize.NilIfEmpty(sub.Get("maritalStatus1a")),
		DependentCount: normalize.Int(sub.Get("dependentsCount1a")),
		Email:          normalize.NilIfEmpty(sub.Get("email1a")),
		HomePhone:      normalize.NilIfEmpty(sub.Get("homePhone1a")),
		CellPhone:      normalize.NilIfEmpty(sub.Get("cellPhone1a")),
		WorkPhone:      normalize.NilIfEmpty(sub.Get("workPhone1a")),
	}
	g.Borrowers = append(g.Borrowers, borrower)
	g.BorrowerLinks = append(g.BorrowerLinks, models.ApplicationBorrower{
		ID:            uuid.New(),
		ApplicationID: g.Application.ID,
		BorrowerID:    borrower.ID,
		IsPrimary:     true,
	})
	return borrower.ID, true
}

// Step 3: dependent ages arrive as one comma-separated list.
func (b *Builder) buildDependents(g *models.Graph, sub *models.Submission, borrowerID uuid.UUID) {
	for _, token := range strings.Split(sub.Get("dependentAges1a"), ",") {
		age := normalize.Int(token)
		if age == nil || *age < 0 {
			continue
		}
		g.Dependents = append(g.Dependents, models.Dependent{
			ID:         uuid.New(),
			BorrowerID: borrowerID,
			Age:        *age,
		})
	}
}

// Step 4: the current address is always attempted; former and mailing
// addresses sit behind their own gates.
func (b *Builder) buildAddresses(g *models.Graph, sub *models.Submission, borrowerID uuid.UUID) {
	b.buildAddress(g, sub, borrowerID, models.AddressCurrent, "current")
	if sub.Gate("hasFormerAddress1a") {
		b.buildAddress(g, sub, borrowerID, models.AddressFormer, "former")
	}
	if sub.Gate("hasMailingAddress1a") {
		b.buildAddress(g, sub, borrowerID, models.AddressMailing, "mailing")
	}
}

func (b *Builder) buildAddress(g *models.Graph, sub *models.Submission, borrowerID uuid.UUID, addrType, prefix string) {
	street := sub.Get(prefix + "Street1a")
	if street == "" {
		return
	}
	addr := models.Address{
		ID:          uuid.New(),
		BorrowerID:  borrowerID,
		Type:        addrType,
		Street:      street,
		Unit:        normalize.NilIfEmpty(sub.Get(prefix + "Unit1a")),
		City:        normalize.NilIfEmpty(sub.Get(prefix + "City1a")),
		State:       normalize.NilIfEmpty(sub.Get(prefix + "State1a")),
		Zip:         normalize.NilIfEmpty(sub.Get(prefix + "Zip1a")),
		Country:     normalize.NilIfEmpty(sub.Get(prefix + "Country1a")),
		HousingType: b.mapEnumOrNil(sub.Get(prefix+"Housing1a"), codes.HousingType),
		MonthlyRent: normalize.Decimal(sub.Get(prefix + "Rent1a")),
		Years:       normalize.Int(sub.Get(prefix + "Years1a")),
		Months:      normalize.Int(sub.Get(prefix + "Months1a")),
	}
	g.Addresses = append(g.Addresses, addr)
}

// Step 5: current and additional employment share a field shape and gate
// independently; previous employment has its own reduced shape. Each
// employment row owns its income breakdown children.
func (b *Builder) buildEmployments(g *models.Graph, sub *models.Submission, borrowerID uuid.UUID) {
	if sub.Gate("hasCurrentEmployment1b") {
		b.buildEmployment(g, sub, borrowerID, models.EmploymentCurrent, "1b")
	}
	if sub.Gate("hasAdditionalEmployment1c") {
		b.buildEmployment(g, sub, borrowerID, models.EmploymentAdditional, "1c")
	}
	if sub.Gate("hasPreviousEmployment1d") {
		b.buildPreviousEmployment(g, sub, borrowerID)
	}
}

func (b *Builder) buildEmployment(g *models.Graph, sub *models.Submission, borrowerID uuid.UUID, category, section string) {
	employer := sub.Get("employerName" + section)
	if employer == "" {
		return
	}
	emp := models.Employment{
		ID:                  uuid.New(),
		BorrowerID:          borrowerID,
		Category:            category,
		EmployerName:        employer,
		Phone:               normalize.NilIfEmpty(sub.Get("employerPhone" + section)),
		Street:              normalize.NilIfEmpty(sub.Get("employerStreet" + section)),
		City:                normalize.NilIfEmpty(sub.Get("employerCity" + section)),
		State:               normalize.NilIfEmpty(sub.Get("employerState" + section)),
		Zip:                 normalize.NilIfEmpty(sub.Get("employerZip" + section)),
		Position:            normalize.NilIfEmpty(sub.Get("position" + section)),
		StartDate:           normalize.Date(sub.Get("startDate" + section)),
		YearsInProfession:   normalize.Int(sub.Get("yearsInProfession" + section)),
		SelfEmployed:        sub.Tri("selfEmployed" + section).Bool(),
		OwnershipShare25Pct: sub.Tri("ownershipShare25Plus" + section).Bool(),
		GrossMonthlyIncome:  normalize.Decimal(sub.Get("monthlyIncome" + section)),
	}
	g.Employments = append(g.Employments, emp)
	b.buildIncomeBreakdowns(g, sub, emp.ID, section)
}

func (b *Builder) buildIncomeBreakdowns(g *models.Graph, sub *models.Submission, employmentID uuid.UUID, section string) {
	breakdowns := []struct {
		field string
		kind  string
	}{
		{"baseIncome", models.IncomeBase},
		{"overtime", models.IncomeOvertime},
		{"bonus", models.IncomeBonus},
		{"commission", models.IncomeCommission},
		{"militaryEntitlements", models.IncomeMilitaryEntitlements},
		{"otherIncome", models.IncomeOther},
	}
	for _, entry := range breakdowns {
		amount := normalize.Decimal(sub.Get(entry.field + section))
		if amount == nil {
			continue
		}
		g.IncomeBreakdowns = append(g.IncomeBreakdowns, models.IncomeBreakdown{
			ID:            uuid.New(),
			EmploymentID:  employmentID,
			Type:          entry.kind,
			MonthlyAmount: *amount,
		})
	}
}

func (b *Builder) buildPreviousEmployment(g *models.Graph, sub *models.Submission, borrowerID uuid.UUID) {
	employer := sub.Get("employerName1d")
	if employer == "" {
		return
	}
	g.Employments = append(g.Employments, models.Employment{
		ID:                 uuid.New(),
		BorrowerID:         borrowerID,
		Category:           models.EmploymentPrevious,
		EmployerName:       employer,
		Street:             normalize.NilIfEmpty(sub.Get("employerStreet1d")),
		City:               normalize.NilIfEmpty(sub.Get("employerCity1d")),
		State:              normalize.NilIfEmpty(sub.Get("employerState1d")),
		Zip:                normalize.NilIfEmpty(sub.Get("employerZip1d")),
		Position:           normalize.NilIfEmpty(sub.Get("position1d")),
		StartDate:          normalize.Date(sub.Get("startDate1d")),
		EndDate:            normalize.Date(sub.Get("endDate1d")),
		SelfEmployed:       sub.Tri("selfEmployed1d").Bool(),
		GrossMonthlyIncome: normalize.Decimal(sub.Get("previousGrossMonthlyIncome1d")),
	})
}

// Step 6: other income, up to four source/amount pairs.
func (b *Builder) buildOtherIncomes(g *models.Graph, sub *models.Submission, borrowerID uuid.UUID) {
	if !sub.Gate("hasOtherIncome1e") {
		return
	}
	for i := 1; i <= maxOtherIncomes; i++ {
		source := sub.Slot("incomeSource1e", i)
		amount := normalize.Decimal(sub.Slot("monthlyIncome1e", i))
		if source == "" || amount == nil {
			continue
		}
		g.OtherIncomes = append(g.OtherIncomes, models.OtherIncome{
			ID:            uuid.New(),
			BorrowerID:    borrowerID,
			Source:        b.mapEnum(source, codes.OtherIncomeSource, codes.Other),
			MonthlyAmount: amount,
		})
	}
}

// Step 7: asset accounts have no section gate; each slot is included when its
// type and value are present.
func (b *Builder) buildAssetAccounts(g *models.Graph, sub *models.Submission, borrowerID uuid.UUID) {
	for i := 1; i <= maxAssetAccounts; i++ {
		accountType := sub.Slot("accountType2a", i)
		value := normalize.Decimal(sub.Slot("cashValue2a", i))
		if accountType == "" || value == nil {
			continue
		}
		g.AssetAccounts = append(g.AssetAccounts, models.AssetAccount{
			ID:            uuid.New(),
			BorrowerID:    borrowerID,
			AccountType:   accountType,
			Institution:   normalize.NilIfEmpty(sub.Slot("institution2a", i)),
			AccountMasked: normalize.MaskAccount(sub.Slot("accountNumber2a", i)),
			CashValue:     value,
		})
	}
}

// Step 8: other assets and credits.
func (b *Builder) buildAssetCredits(g *models.Graph, sub *models.Submission, borrowerID uuid.UUID) {
	if !sub.Gate("hasOtherAssets2b") {
		return
	}
	for i := 1; i <= maxAssetCredits; i++ {
		kind := sub.Slot("assetCreditType2b", i)
		value := normalize.Decimal(sub.Slot("cashValue2b", i))
		if kind == "" || value == nil {
			continue
		}
		category := models.AssetCreditCategoryAsset
		if strings.EqualFold(sub.Slot("assetCreditCategory2b", i), "credit") {
			category = models.AssetCreditCategoryCredit
		}
		g.AssetCreditOthers = append(g.AssetCreditOthers, models.AssetCreditOther{
			ID:         uuid.New(),
			BorrowerID: borrowerID,
			Category:   category,
			Type:       b.mapEnum(kind, codes.AssetCreditType, codes.Other),
			CashValue:  value,
		})
	}
}

// Step 9: liabilities. A line needs a type, an unpaid balance, and a monthly
// payment to be included at all.
func (b *Builder) buildLiabilities(g *models.Graph, sub *models.Submission, borrowerID uuid.UUID) {
	if !sub.Gate("hasLiabilities2c") {
		return
	}
	for i := 1; i <= maxLiabilities; i++ {
		accountType := sub.Slot("accountType2c", i)
		balance := normalize.Decimal(sub.Slot("unpaidBalance2c", i))
		payment := normalize.Decimal(sub.Slot("monthlyPayment2c", i))
		if accountType == "" || balance == nil || payment == nil {
			continue
		}
		g.Liabilities = append(g.Liabilities, models.Liability{
			ID:              uuid.New(),
			BorrowerID:      borrowerID,
			AccountType:     accountType,
			Company:         normalize.NilIfEmpty(sub.Slot("companyName2c", i)),
			AccountMasked:   normalize.MaskAccount(sub.Slot("accountNumber2c", i)),
			UnpaidBalance:   balance,
			MonthlyPayment:  payment,
			PayoffAtClosing: sub.TriSlot("payoffAtClosing2c", i).Bool(),
		})
	}
}

// Step 10: other monthly liability expenses.
func (b *Builder) buildOtherLiabilities(g *models.Graph, sub *models.Submission, borrowerID uuid.UUID) {
	if !sub.Gate("hasOtherLiabilities2d") {
		return
	}
	for i := 1; i <= maxOtherLiabilities; i++ {
		kind := sub.Slot("expenseType2d", i)
		payment := normalize.Decimal(sub.Slot("monthlyPayment2d", i))
		if kind == "" || payment == nil {
			continue
		}
		g.OtherLiabilityExpenses = append(g.OtherLiabilityExpenses, models.OtherLiabilityExpense{
			ID:             uuid.New(),
			BorrowerID:     borrowerID,
			Type:           kind,
			MonthlyPayment: payment,
		})
	}
}

// Step 11: real estate owned, each property optionally owning one mortgage
// behind its own per-property gate.
func (b *Builder) buildPropertiesOwned(g *models.Graph, sub *models.Submission, borrowerID uuid.UUID) {
	if !sub.Gate("hasRealEstateOwned3") {
		return
	}
	for i := 1; i <= maxOwnedProperties; i++ {
		street := sub.Slot("street3", i)
		if street == "" {
			continue
		}
		property := models.PropertyOwned{
			ID:                uuid.New(),
			BorrowerID:        borrowerID,
			Street:            street,
			Unit:              normalize.NilIfEmpty(sub.Slot("unit3", i)),
			City:              normalize.NilIfEmpty(sub.Slot("city3", i)),
			State:             normalize.NilIfEmpty(sub.Slot("state3", i)),
			Zip:               normalize.NilIfEmpty(sub.Slot("zip3", i)),
			Value:             normalize.Decimal(sub.Slot("propertyValue3", i)),
			Status:            b.mapEnumOrNil(sub.Slot("status3", i), codes.DispositionStatus),
			IntendedOccupancy: b.mapEnumOrNil(sub.Slot("intendedOccupancy3", i), codes.Occupancy),
			MonthlyExpenses:   normalize.Decimal(sub.Slot("monthlyExpenses3", i)),
			RentalIncome:      normalize.Decimal(sub.Slot("monthlyRentalIncome3", i)),
		}
		g.PropertiesOwned = append(g.PropertiesOwned, property)

		if sub.TriSlot("hasMortgage3", i).IsTrue() {
			g.PropertyMortgages = append(g.PropertyMortgages, models.PropertyMortgage{
				ID:              uuid.New(),
				PropertyID:      property.ID,
				Creditor:        normalize.NilIfEmpty(sub.Slot("creditor3", i)),
				AccountMasked:   normalize.MaskAccount(sub.Slot("mortgageAccountNumber3", i)),
				MonthlyPayment:  normalize.Decimal(sub.Slot("mortgagePayment3", i)),
				UnpaidBalance:   normalize.Decimal(sub.Slot("mortgageBalance3", i)),
				PayoffAtClosing: sub.TriSlot("mortgagePayoffAtClosing3", i).Bool(),
				Type:            b.mapEnumOrNil(sub.Slot("mortgageType3", i), codes.LienType),
			})
		}
	}
}

// Step 12: the subject property exists whenever a loan amount or subject
// address was submitted, independent of any borrower.
func (b *Builder) buildSubjectProperty(g *models.Graph, sub *models.Submission) {
	loanAmount := normalize.Decimal(sub.Get("loanAmount4"))
	street := sub.Get("propertyStreet4")
	if loanAmount == nil && street == "" {
		return
	}

	subject := &models.SubjectProperty{
		ID:                    uuid.New(),
		ApplicationID:         g.Application.ID,
		LoanAmount:            loanAmount,
		LoanPurpose:           g.Application.LoanPurpose,
		Street:                normalize.NilIfEmpty(street),
		Unit:                  normalize.NilIfEmpty(sub.Get("propertyUnit4")),
		City:                  normalize.NilIfEmpty(sub.Get("propertyCity4")),
		State:                 normalize.NilIfEmpty(sub.Get("propertyState4")),
		Zip:                   normalize.NilIfEmpty(sub.Get("propertyZip4")),
		UnitCount:             normalize.Int(sub.Get("unitsCount4")),
		Value:                 normalize.Decimal(sub.Get("propertyValue4")),
		Occupancy:             b.mapEnumOrNil(sub.Get("occupancy4"), codes.Occupancy),
		FHASecondaryResidence: sub.Tri("fhaSecondaryResidence4").Bool(),
		MixedUse:              sub.Tri("mixedUse4").Bool(),
		ManufacturedHome:      sub.Tri("manufacturedHome4").Bool(),
	}
	g.SubjectProperty = subject

	if sub.Gate("hasOtherNewMortgages4b") {
		for i := 1; i <= maxNewMortgages; i++ {
			creditor := sub.Slot("creditor4b", i)
			amount := normalize.Decimal(sub.Slot("loanAmount4b", i))
			if creditor == "" && amount == nil {
				continue
			}
			g.SubjectNewMortgages = append(g.SubjectNewMortgages, models.SubjectNewMortgage{
				ID:                uuid.New(),
				SubjectPropertyID: subject.ID,
				Creditor:          normalize.NilIfEmpty(creditor),
				LienType:          b.mapEnumOrNil(sub.Slot("lienType4b", i), codes.LienType),
				MonthlyPayment:    normalize.Decimal(sub.Slot("monthlyPayment4b", i)),
				LoanAmount:        amount,
				CreditLimit:       normalize.Decimal(sub.Slot("creditLimit4b", i)),
			})
		}
	}

	if sub.Gate("hasRentalIncome4c") {
		g.SubjectRental = &models.SubjectPropertyRental{
			ID:                uuid.New(),
			SubjectPropertyID: subject.ID,
			ExpectedMonthly:   normalize.Decimal(sub.Get("expectedMonthlyRentalIncome4c")),
		}
	}

	if sub.Gate("hasGiftsOrGrants4d") {
		for i := 1; i <= maxGifts; i++ {
			assetType := sub.Slot("giftAssetType4d", i)
			value := normalize.Decimal(sub.Slot("giftValue4d", i))
			if assetType == "" && value == nil {
				continue
			}
			g.GiftsOrGrants = append(g.GiftsOrGrants, models.GiftOrGrant{
				ID:                uuid.New(),
				SubjectPropertyID: subject.ID,
				AssetType:         b.mapEnum(assetType, codes.GiftAssetType, codes.Other),
				Deposited:         sub.TriSlot("deposited4d", i).Bool(),
				Source:            b.mapEnum(sub.Slot("giftSource4d", i), codes.GiftSource, codes.Other),
				Value:             value,
			})
		}
	}
}

// Step 13: declarations are always attempted for an existing borrower; blank
// checkboxes are recorded as explicit "no" answers.
func (b *Builder) buildDeclaration(g *models.Graph, sub *models.Submission, borrowerID uuid.UUID) {
	decl := models.Declaration{
		ID:                        uuid.New(),
		BorrowerID:                borrowerID,
		OccupyAsPrimary:           sub.Tri("occupyAsPrimary5a").OrFalse(),
		OwnershipInterestPast3Yrs: sub.Tri("ownershipInterestPast3Years5a").OrFalse(),
		PropertyTypeOwned:         normalize.NilIfEmpty(sub.Get("propertyTypeOwned5a")),
		TitleHeld:                 normalize.NilIfEmpty(sub.Get("howTitleHeld5a")),
		RelationshipWithSeller:    sub.Tri("relationshipWithSeller5a").OrFalse(),
		BorrowingUndisclosedMoney: sub.Tri("borrowingUndisclosedMoney5b").OrFalse(),
		UndisclosedMoneyAmount:    normalize.Decimal(sub.Get("undisclosedMoneyAmount5b")),
		ApplyingOtherMortgage:     sub.Tri("applyingOtherMortgage5b").OrFalse(),
		ApplyingNewCredit:         sub.Tri("applyingNewCredit5b").OrFalse(),
		PropertySubjectToLien:     sub.Tri("propertySubjectToLien5b").OrFalse(),
		CosignerOrGuarantor:       sub.Tri("cosignerOrGuarantor5c").OrFalse(),
		OutstandingJudgments:      sub.Tri("outstandingJudgments5c").OrFalse(),
		DelinquentFederalDebt:     sub.Tri("delinquentFederalDebt5c").OrFalse(),
		PartyToLawsuit:            sub.Tri("partyToLawsuit5c").OrFalse(),
		ConveyedTitleInLieu:       sub.Tri("conveyedTitleInLieu5c").OrFalse(),
		PreForeclosureSale:        sub.Tri("preForeclosureSale5c").OrFalse(),
		PropertyForeclosed:        sub.Tri("propertyForeclosed5c").OrFalse(),
		DeclaredBankruptcy:        sub.Tri("declaredBankruptcy5c").OrFalse(),
		BankruptcyChapters:        parseChapters(sub.Get("bankruptcyChapters5c")),
	}
	g.Declarations = append(g.Declarations, decl)
}

// Step 14: military service appears when any service-related flag is set.
func (b *Builder) buildMilitaryService(g *models.Graph, sub *models.Submission, borrowerID uuid.UUID) {
	serving := sub.Tri("currentlyServing7")
	retired := sub.Tri("retired7")
	reserve := sub.Tri("nonActivatedReserve7")
	spouse := sub.Tri("survivingSpouse7")
	if !serving.IsTrue() && !retired.IsTrue() && !reserve.IsTrue() && !spouse.IsTrue() {
		return
	}
	g.MilitaryServices = append(g.MilitaryServices, models.MilitaryService{
		ID:                  uuid.New(),
		BorrowerID:          borrowerID,
		CurrentlyServing:    serving.OrFalse(),
		Retired:             retired.OrFalse(),
		NonActivatedReserve: reserve.OrFalse(),
		SurvivingSpouse:     spouse.OrFalse(),
		ServiceExpiration:   normalize.Date(sub.Get("serviceExpirationDate7")),
	})
}

// Step 15: demographics, built when sex or any ethnicity/race checkbox is
// present; each checkbox becomes its own selection child row.
func (b *Builder) buildDemographics(g *models.Graph, sub *models.Submission, borrowerID uuid.UUID) {
	sexRaw := sub.Get("sex8")

	ethnicityFlags := []struct {
		field string
		code  string
	}{
		{"ethnicityHispanic8", "HispanicOrLatino"},
		{"ethnicityNotHispanic8", "NotHispanicOrLatino"},
		{"ethnicityNotProvided8", "NotProvided"},
	}
	ethnicityDetailFlags := []struct {
		field string
		code  string
	}{
		{"mexican8", "Mexican"},
		{"puertoRican8", "PuertoRican"},
		{"cuban8", "Cuban"},
		{"otherHispanic8", "OtherHispanicOrLatino"},
	}
	raceFlags := []struct {
		field string
		code  string
	}{
		{"raceAmericanIndian8", "AmericanIndianOrAlaskaNative"},
		{"raceAsian8", "Asian"},
		{"raceBlack8", "BlackOrAfricanAmerican"},
		{"racePacificIslander8", "NativeHawaiianOrOtherPacificIslander"},
		{"raceWhite8", "White"},
		{"raceNotProvided8", "NotProvided"},
	}
	raceDetailFlags := []struct {
		field string
		code  string
	}{
		{"asianIndian8", "AsianIndian"},
		{"chinese8", "Chinese"},
		{"filipino8", "Filipino"},
		{"japanese8", "Japanese"},
		{"korean8", "Korean"},
		{"vietnamese8", "Vietnamese"},
		{"otherAsian8", "OtherAsian"},
		{"nativeHawaiian8", "NativeHawaiian"},
		{"guamanian8", "GuamanianOrChamorro"},
		{"samoan8", "Samoan"},
		{"otherPacific8", "OtherPacificIslander"},
	}

	anyFlag := false
	for _, f := range ethnicityFlags {
		anyFlag = anyFlag || sub.Tri(f.field).IsTrue()
	}
	for _, f := range raceFlags {
		anyFlag = anyFlag || sub.Tri(f.field).IsTrue()
	}
	if sexRaw == "" && !anyFlag {
		return
	}

	demo := &models.Demographics{
		ID:         uuid.New(),
		BorrowerID: borrowerID,
		Sex:        b.mapEnumOrNil(sexRaw, codes.Sex),
	}
	g.Demographics = demo

	for _, f := range ethnicityFlags {
		if sub.Tri(f.field).IsTrue() {
			g.Ethnicities = append(g.Ethnicities, models.EthnicitySelection{
				ID:             uuid.New(),
				DemographicsID: demo.ID,
				Ethnicity:      f.code,
			})
		}
	}
	for _, f := range ethnicityDetailFlags {
		if sub.Tri(f.field).IsTrue() {
			detail := models.EthnicityDetailSelection{
				ID:             uuid.New(),
				DemographicsID: demo.ID,
				Origin:         f.code,
			}
			if f.code == "OtherHispanicOrLatino" {
				detail.Description = normalize.NilIfEmpty(sub.Get("otherHispanicOrigin8"))
			}
			g.EthnicityDetails = append(g.EthnicityDetails, detail)
		}
	}
	for _, f := range raceFlags {
		if sub.Tri(f.field).IsTrue() {
			g.Races = append(g.Races, models.RaceSelection{
				ID:             uuid.New(),
				DemographicsID: demo.ID,
				Race:           f.code,
			})
			if f.code == "AmericanIndianOrAlaskaNative" {
				if tribe := sub.Get("tribeName8"); tribe != "" {
					g.Tribes = append(g.Tribes, models.AmericanIndianTribe{
						ID:             uuid.New(),
						DemographicsID: demo.ID,
						TribeName:      tribe,
					})
				}
			}
		}
	}
	for _, f := range raceDetailFlags {
		if sub.Tri(f.field).IsTrue() {
			detail := models.RaceDetailSelection{
				ID:             uuid.New(),
				DemographicsID: demo.ID,
				Detail:         f.code,
			}
			switch f.code {
			case "OtherAsian":
				detail.Description = normalize.NilIfEmpty(sub.Get("otherAsianRace8"))
			case "OtherPacificIslander":
				detail.Description = normalize.NilIfEmpty(sub.Get("otherPacificRace8"))
			}
			g.RaceDetails = append(g.RaceDetails, detail)
		}
	}
}

// mapEnum canonicalizes against a table with a safe catch-all, reporting
// fallback substitutions for non-empty input.
func (b *Builder) mapEnum(raw string, table codes.Table, fallback string) string {
	if raw == "" {
		return fallback
	}
	if code, ok := codes.Lookup(raw, table); ok {
		return code
	}
	b.observeFallback(table.Name)
	return fallback
}

// mapEnumOrNil canonicalizes against a closed table with no catch-all;
// unmapped input stays NULL rather than being misclassified.
func (b *Builder) mapEnumOrNil(raw string, table codes.Table) *string {
	if raw == "" {
		return nil
	}
	code, ok := codes.Lookup(raw, table)
	if !ok {
		b.observeFallback(table.Name)
		return nil
	}
	return &code
}

// parseChapters splits the bankruptcy chapter list ("7, 13" or
// "Chapter 7,Chapter 13") into canonical Chapter tokens. Repeated chapters
// collapse to one.
func parseChapters(raw string) []string {
	var chapters []string
	for _, token := range pstrings.DedupeAndTrim(strings.Split(raw, ",")) {
		n := normalize.Int(token)
		if n == nil {
			continue
		}
		switch *n {
		case 7, 11, 12, 13:
			chapters = append(chapters, "Chapter"+strconv.Itoa(*n))
		}
	}
	return pstrings.DedupeAndTrim(chapters)
}
