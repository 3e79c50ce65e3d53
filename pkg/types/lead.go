package types

import (
	"errors"
	"time"
)

var ErrLeadNotFound = errors.New("lead not found")

type ServiceType string

const (
	ServiceTypeGeneral         ServiceType = "general"
	ServiceTypeCreditRepair    ServiceType = "credit_repair"
	ServiceTypeFunding         ServiceType = "funding"
	ServiceTypeBusinessFunding ServiceType = "business_funding"
)

var serviceTypeLabels = map[ServiceType]string{
	ServiceTypeGeneral:         "General Inquiry",
	ServiceTypeCreditRepair:    "Credit Repair",
	ServiceTypeFunding:         "Funding",
	ServiceTypeBusinessFunding: "Business Funding",
}

// Label returns the display label used on the site and in the spreadsheet.
// Unknown values are returned as-is.
func (s ServiceType) Label() string {
	if label, ok := serviceTypeLabels[s]; ok {
		return label
	}
	return string(s)
}

type ApplicantType string

const (
	ApplicantTypeIndividual ApplicantType = "individual"
	ApplicantTypeBusiness   ApplicantType = "business"
)

type CreditScore string

const (
	CreditScorePoor      CreditScore = "300_579"
	CreditScoreFair      CreditScore = "580_669"
	CreditScoreGood      CreditScore = "670_739"
	CreditScoreVeryGood  CreditScore = "740_799"
	CreditScoreExcellent CreditScore = "800_850"
	CreditScoreUnknown   CreditScore = "unknown"
)

type CreditProfileFlag string

const (
	CreditProfileLatePayments2Years CreditProfileFlag = "late_payments_2_years"
	CreditProfileLatePayments5Years CreditProfileFlag = "late_payments_5_years"
	CreditProfileCollections        CreditProfileFlag = "collections"
	CreditProfileBankruptcy         CreditProfileFlag = "bankruptcy"
	CreditProfileClean              CreditProfileFlag = "clean"
)

const (
	LocaleEnglish = "en"
	LocaleSpanish = "es"
)

// Lead is a row of the leads table.
type Lead struct {
	ID             string    `db:"id" json:"id"`
	FirstName      string    `db:"first_name" json:"first_name"`
	LastName       string    `db:"last_name" json:"last_name"`
	Email          string    `db:"email" json:"email"`
	Phone          string    `db:"phone" json:"phone"`
	FundingGoal    *int64    `db:"funding_goal" json:"funding_goal"`
	ApplicantType  *string   `db:"applicant_type" json:"applicant_type"`
	YearlyRevenue  *string   `db:"yearly_revenue" json:"yearly_revenue"`
	BusinessName   *string   `db:"business_name" json:"business_name"`
	TimeInBusiness *string   `db:"time_in_business" json:"time_in_business"`
	CreditScore    *string   `db:"credit_score" json:"credit_score"`
	CreditProfile  []string  `db:"credit_profile" json:"credit_profile"`
	TermsAccepted  bool      `db:"terms_accepted" json:"terms_accepted"`
	ServiceType    *string   `db:"service_type" json:"service_type"`
	Locale         string    `db:"locale" json:"locale"`
	SubmissionKey  *string   `db:"submission_key" json:"submission_key"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// LeadPatch holds the columns of a single insert or update. Nil fields are
// left untouched; a non-nil empty CreditProfile clears the column.
type LeadPatch struct {
	ID             *string  `db:"id"`
	FirstName      *string  `db:"first_name"`
	LastName       *string  `db:"last_name"`
	Email          *string  `db:"email"`
	Phone          *string  `db:"phone"`
	FundingGoal    *int64   `db:"funding_goal"`
	ApplicantType  *string  `db:"applicant_type"`
	YearlyRevenue  *string  `db:"yearly_revenue"`
	BusinessName   *string  `db:"business_name"`
	TimeInBusiness *string  `db:"time_in_business"`
	CreditScore    *string  `db:"credit_score"`
	CreditProfile  []string `db:"credit_profile"`
	TermsAccepted  *bool    `db:"terms_accepted"`
	ServiceType    *string  `db:"service_type"`
	Locale         *string  `db:"locale"`
	SubmissionKey  *string  `db:"submission_key"`
}
