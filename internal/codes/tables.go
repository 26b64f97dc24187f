package codes

// Canonical codes referenced by the builder and tests. Grouped by table.
const (
	Other = "Other"

	OccupancyPrimaryResidence = "PrimaryResidence"
	OccupancySecondHome       = "SecondHome"
	OccupancyInvestment       = "Investment"

	SexFemale             = "Female"
	SexMale               = "Male"
	SexPreferNotToProvide = "PreferNotToProvide"

	PurposePurchase  = "Purchase"
	PurposeRefinance = "Refinance"

	LienFirst       = "FirstLien"
	LienSubordinate = "SubordinateLien"

	DispositionSold        = "Sold"
	DispositionPendingSale = "PendingSale"
	DispositionRetained    = "Retained"

	CitizenshipUSCitizen                 = "USCitizen"
	CitizenshipPermanentResidentAlien    = "PermanentResidentAlien"
	CitizenshipNonPermanentResidentAlien = "NonPermanentResidentAlien"

	HousingOwn       = "Own"
	HousingRent      = "Rent"
	HousingNoExpense = "NoPrimaryHousingExpense"
)

// Occupancy is how the borrower intends to use a property.
var Occupancy = Table{Name: "occupancy", Values: map[string]string{
	"primaryresidence":   OccupancyPrimaryResidence,
	"primary":            OccupancyPrimaryResidence,
	"owneroccupied":      OccupancyPrimaryResidence,
	"secondhome":         OccupancySecondHome,
	"secondaryhome":      OccupancySecondHome,
	"vacation":           OccupancySecondHome,
	"investment":         OccupancyInvestment,
	"investmentproperty": OccupancyInvestment,
	"rental":             OccupancyInvestment,
	"other":              Other,
}}

// Sex follows the demographic reporting choices offered on the form.
var Sex = Table{Name: "sex", Values: map[string]string{
	"female":              SexFemale,
	"f":                   SexFemale,
	"male":                SexMale,
	"m":                   SexMale,
	"prefernottoprovide":  SexPreferNotToProvide,
	"idonotwishtoprovide": SexPreferNotToProvide,
	"declinetoanswer":     SexPreferNotToProvide,
}}

// LoanPurpose distinguishes purchase from refinance money.
var LoanPurpose = Table{Name: "loan_purpose", Values: map[string]string{
	"purchase":         PurposePurchase,
	"buy":              PurposePurchase,
	"refinance":        PurposeRefinance,
	"refi":             PurposeRefinance,
	"cashoutrefinance": PurposeRefinance,
	"other":            Other,
}}

// LienType has no safe catch-all: a mortgage is first-lien, subordinate, or
// unspecified, never "other".
var LienType = Table{Name: "lien_type", Values: map[string]string{
	"firstlien":       LienFirst,
	"first":           LienFirst,
	"subordinatelien": LienSubordinate,
	"subordinate":     LienSubordinate,
	"second":          LienSubordinate,
}}

// DispositionStatus is what the borrower plans to do with an owned property.
// No catch-all.
var DispositionStatus = Table{Name: "disposition_status", Values: map[string]string{
	"sold":        DispositionSold,
	"pendingsale": DispositionPendingSale,
	"pending":     DispositionPendingSale,
	"retained":    DispositionRetained,
	"keep":        DispositionRetained,
}}

// GiftAssetType classifies gifts and grants applied to the transaction.
var GiftAssetType = Table{Name: "gift_asset_type", Values: map[string]string{
	"cashgift":     "CashGift",
	"cash":         "CashGift",
	"giftofequity": "GiftOfEquity",
	"equity":       "GiftOfEquity",
	"grant":        "Grant",
	"other":        Other,
}}

// GiftSource identifies who the gift came from.
var GiftSource = Table{Name: "gift_source", Values: map[string]string{
	"relative":           "Relative",
	"family":             "Relative",
	"unmarriedpartner":   "UnmarriedPartner",
	"employer":           "Employer",
	"religiousnonprofit": "ReligiousNonprofit",
	"communitynonprofit": "CommunityNonprofit",
	"federalagency":      "FederalAgency",
	"stateagency":        "StateAgency",
	"localagency":        "LocalAgency",
	"lender":             "Lender",
	"other":              Other,
}}

// AssetCreditType covers the "other assets and credits" section.
var AssetCreditType = Table{Name: "asset_credit_type", Values: map[string]string{
	"proceedsfromsaleofrealestate": "ProceedsFromRealEstate",
	"proceedsfromrealestate":       "ProceedsFromRealEstate",
	"earnestmoney":                 "EarnestMoney",
	"employerassistance":           "EmployerAssistance",
	"lotequity":                    "LotEquity",
	"relocationfunds":              "RelocationFunds",
	"rentcredit":                   "RentCredit",
	"sweatequity":                  "SweatEquity",
	"tradeequity":                  "TradeEquity",
	"unsecuredborrowedfunds":       "UnsecuredBorrowedFunds",
	"other":                        Other,
}}

// OtherIncomeSource covers income outside employment.
var OtherIncomeSource = Table{Name: "other_income_source", Values: map[string]string{
	"alimony":                   "Alimony",
	"automobileallowance":       "AutomobileAllowance",
	"boarderincome":             "BoarderIncome",
	"capitalgains":              "CapitalGains",
	"childsupport":              "ChildSupport",
	"disability":                "Disability",
	"fostercare":                "FosterCare",
	"housingorparsonage":        "HousingOrParsonage",
	"interestanddividends":      "InterestAndDividends",
	"mortgagecreditcertificate": "MortgageCreditCertificate",
	"mortgagedifferential":      "MortgageDifferential",
	"notesreceivable":           "NotesReceivable",
	"publicassistance":          "PublicAssistance",
	"retirement":                "Retirement",
	"pension":                   "Retirement",
	"royalties":                 "Royalties",
	"separatemaintenance":       "SeparateMaintenance",
	"socialsecurity":            "SocialSecurity",
	"trust":                     "Trust",
	"unemployment":              "Unemployment",
	"vacompensation":            "VACompensation",
	"other":                     Other,
}}

// Citizenship has no catch-all: an unrecognized answer stays unspecified.
var Citizenship = Table{Name: "citizenship", Values: map[string]string{
	"uscitizen":                 CitizenshipUSCitizen,
	"citizen":                   CitizenshipUSCitizen,
	"permanentresidentalien":    CitizenshipPermanentResidentAlien,
	"permanentresident":         CitizenshipPermanentResidentAlien,
	"nonpermanentresidentalien": CitizenshipNonPermanentResidentAlien,
	"nonpermanentresident":      CitizenshipNonPermanentResidentAlien,
}}

// HousingType is the borrower's current housing arrangement. No catch-all.
var HousingType = Table{Name: "housing_type", Values: map[string]string{
	"own":                     HousingOwn,
	"rent":                    HousingRent,
	"noprimaryhousingexpense": HousingNoExpense,
	"livingrentfree":          HousingNoExpense,
	"rentfree":                HousingNoExpense,
}}
