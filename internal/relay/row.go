package relay

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"fundpath/pkg/types"
)

const (
	DefaultTimeZone = "America/New_York"

	rowTimestampLayout = "1/2/2006, 3:04:05 PM"
)

// SheetHeader names the columns written by FormatRow, in order.
var SheetHeader = []string{
	"Timestamp",
	"Service",
	"First Name",
	"Last Name",
	"Email",
	"Phone",
	"Credit Score",
	"Credit Profile",
	"Funding Goal",
	"Applicant Type",
	"Yearly Revenue",
	"Terms Accepted",
}

// Record is a leads row as delivered by the database webhook. Optional
// columns may be null or missing.
type Record struct {
	ID            string       `json:"id"`
	CreatedAt     string       `json:"created_at"`
	ServiceType   *string      `json:"service_type"`
	FirstName     string       `json:"first_name"`
	LastName      string       `json:"last_name"`
	Email         string       `json:"email"`
	Phone         string       `json:"phone"`
	CreditScore   *string      `json:"credit_score"`
	CreditProfile []string     `json:"credit_profile"`
	FundingGoal   *json.Number `json:"funding_goal"`
	ApplicantType *string      `json:"applicant_type"`
	YearlyRevenue *string      `json:"yearly_revenue"`
	TermsAccepted bool         `json:"terms_accepted"`
}

// RecordFromLead converts a stored lead into the webhook shape.
func RecordFromLead(lead *types.Lead) Record {

	record := Record{
		ID:            lead.ID,
		ServiceType:   lead.ServiceType,
		FirstName:     lead.FirstName,
		LastName:      lead.LastName,
		Email:         lead.Email,
		Phone:         lead.Phone,
		CreditScore:   lead.CreditScore,
		CreditProfile: lead.CreditProfile,
		ApplicantType: lead.ApplicantType,
		YearlyRevenue: lead.YearlyRevenue,
		TermsAccepted: lead.TermsAccepted,
	}

	if !lead.CreatedAt.IsZero() {
		record.CreatedAt = lead.CreatedAt.Format(time.RFC3339Nano)
	}

	if lead.FundingGoal != nil {
		goal := json.Number(strconv.FormatInt(*lead.FundingGoal, 10))
		record.FundingGoal = &goal
	}

	return record
}

var createdAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z07",
	"2006-01-02 15:04:05.999999999",
}

// FormatRow flattens record into the twelve spreadsheet columns. A missing
// or unparseable created_at falls back to fallback.
func FormatRow(record Record, loc *time.Location, fallback time.Time) []string {

	if loc == nil {
		loc = time.UTC
	}

	created := parseCreatedAt(record.CreatedAt)
	if created.IsZero() {
		created = fallback
	}

	service := ""
	if record.ServiceType != nil {
		service = types.ServiceType(*record.ServiceType).Label()
	}

	fundingGoal := ""
	if record.FundingGoal != nil {
		fundingGoal = record.FundingGoal.String()
	}

	terms := "No"
	if record.TermsAccepted {
		terms = "Yes"
	}

	return []string{
		created.In(loc).Format(rowTimestampLayout),
		service,
		record.FirstName,
		record.LastName,
		record.Email,
		record.Phone,
		deref(record.CreditScore),
		strings.Join(record.CreditProfile, ", "),
		fundingGoal,
		deref(record.ApplicantType),
		deref(record.YearlyRevenue),
		terms,
	}
}

func parseCreatedAt(value string) time.Time {
	if value == "" {
		return time.Time{}
	}

	for _, layout := range createdAtLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}

	return time.Time{}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
