// Package status derives per-section progress from a submission. The portal
// UI renders a checklist from it; the serialized report is also stored on the
// application row so progress survives as part of the saved record.
package status

import (
	"encoding/json"

	"mortgageportal/internal/application/models"
)

// Section progress states.
const (
	NotStarted = "NotStarted"
	InProgress = "InProgress"
	Completed  = "Completed"
)

// Section names, in display order.
const (
	SectionBorrower     = "borrower"
	SectionEmployment   = "employment"
	SectionAssets       = "assets"
	SectionLiabilities  = "liabilities"
	SectionRealEstate   = "realEstate"
	SectionLoanProperty = "loanProperty"
	SectionDeclarations = "declarations"
	SectionMilitary     = "military"
	SectionDemographics = "demographics"
)

var sectionOrder = []string{
	SectionBorrower, SectionEmployment, SectionAssets, SectionLiabilities,
	SectionRealEstate, SectionLoanProperty, SectionDeclarations,
	SectionMilitary, SectionDemographics,
}

// Report maps section name to progress state.
type Report map[string]string

// JSON serializes the report; the empty string is never returned so the
// stored blob is always parseable.
func (r Report) JSON() string {
	b, err := json.Marshal(r)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// Sections returns section names in display order.
func Sections() []string {
	return append([]string(nil), sectionOrder...)
}

// sectionFields declares, per section, which fields count as touched and
// which are required for completion. A gated-off section with its gate
// explicitly answered counts as completed: declining a section is an answer.
type sectionFields struct {
	gate     string
	touched  []string
	required []string
}

var sections = map[string]sectionFields{
	SectionBorrower: {
		touched:  []string{"borrowerFirstName", "borrowerLastName", "dob1a", "ssn1a", "email1a", "cellPhone1a"},
		required: []string{"borrowerFirstName", "borrowerLastName", "dob1a", "email1a"},
	},
	SectionEmployment: {
		gate:     "hasCurrentEmployment1b",
		touched:  []string{"employerName1b", "position1b", "startDate1b", "monthlyIncome1b"},
		required: []string{"employerName1b", "monthlyIncome1b"},
	},
	SectionAssets: {
		touched:  []string{"accountType2a1", "institution2a1", "cashValue2a1"},
		required: []string{"accountType2a1", "cashValue2a1"},
	},
	SectionLiabilities: {
		gate:     "hasLiabilities2c",
		touched:  []string{"accountType2c1", "companyName2c1", "monthlyPayment2c1"},
		required: []string{"accountType2c1", "monthlyPayment2c1"},
	},
	SectionRealEstate: {
		gate:     "hasRealEstateOwned3",
		touched:  []string{"street31", "propertyValue31"},
		required: []string{"street31"},
	},
	SectionLoanProperty: {
		touched:  []string{"loanAmount4", "loanPurpose4", "propertyStreet4", "propertyValue4"},
		required: []string{"loanAmount4", "loanPurpose4", "propertyStreet4"},
	},
	SectionDeclarations: {
		touched:  []string{"occupyAsPrimary5a", "declaredBankruptcy5c", "outstandingJudgments5c"},
		required: []string{"occupyAsPrimary5a"},
	},
	SectionMilitary: {
		touched:  []string{"currentlyServing7", "retired7", "nonActivatedReserve7", "survivingSpouse7"},
		required: []string{},
	},
	SectionDemographics: {
		touched:  []string{"sex8", "ethnicityHispanic8", "raceWhite8", "raceAsian8", "raceBlack8"},
		required: []string{"sex8"},
	},
}

// Evaluate derives a progress report from the raw submission.
func Evaluate(sub *models.Submission) Report {
	report := make(Report, len(sectionOrder))
	for _, name := range sectionOrder {
		report[name] = evaluateSection(sub, sections[name])
	}
	return report
}

func evaluateSection(sub *models.Submission, sf sectionFields) string {
	if sf.gate != "" && sub.Has(sf.gate) && !sub.Gate(sf.gate) {
		return Completed
	}

	touched := 0
	for _, f := range sf.touched {
		if sub.Has(f) {
			touched++
		}
	}
	if touched == 0 {
		return NotStarted
	}

	for _, f := range sf.required {
		if !sub.Has(f) {
			return InProgress
		}
	}
	return Completed
}
