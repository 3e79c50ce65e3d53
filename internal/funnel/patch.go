package funnel

import (
	"strings"

	"fundpath/internal/schema"
	"fundpath/internal/utils"
	"fundpath/pkg/types"
)

// patchFor copies the named fields of values into a LeadPatch. Values are
// assumed to have passed validation for those fields.
func patchFor(values types.LeadForm, fields []string) types.LeadPatch {
	var p types.LeadPatch

	for _, field := range fields {
		switch field {
		case "first_name":
			p.FirstName = utils.StringPtr(strings.TrimSpace(values.FirstName))
		case "last_name":
			p.LastName = utils.StringPtr(strings.TrimSpace(values.LastName))
		case "email":
			p.Email = utils.StringPtr(strings.ToLower(strings.TrimSpace(values.Email)))
		case "phone":
			p.Phone = utils.StringPtr(schema.DigitsOnly(values.Phone))
		case "service_type":
			p.ServiceType = utils.StringPtrOrNil(values.ServiceType)
		case "funding_goal":
			if n, ok := schema.NormalizeFundingGoal(values.FundingGoal); ok {
				p.FundingGoal = utils.Int64Ptr(n)
			}
		case "applicant_type":
			p.ApplicantType = utils.StringPtrOrNil(values.ApplicantType)
		case "yearly_revenue":
			p.YearlyRevenue = utils.StringPtrOrNil(values.YearlyRevenue)
		case "business_name":
			p.BusinessName = utils.StringPtrOrNil(strings.TrimSpace(values.BusinessName))
		case "time_in_business":
			p.TimeInBusiness = utils.StringPtrOrNil(values.TimeInBusiness)
		case "credit_score":
			p.CreditScore = utils.StringPtrOrNil(values.CreditScore)
		case "credit_profile":
			p.CreditProfile = append([]string{}, values.CreditProfile...)
		case "terms_accepted":
			p.TermsAccepted = utils.BoolPtr(values.TermsAccepted)
		}
	}

	return p
}

// normalize trims free text so validation sees what will be stored.
func normalize(values *types.LeadForm) {
	values.FirstName = strings.TrimSpace(values.FirstName)
	values.LastName = strings.TrimSpace(values.LastName)
	values.Email = strings.TrimSpace(values.Email)
	values.Phone = strings.TrimSpace(values.Phone)
	values.FundingGoal = strings.TrimSpace(values.FundingGoal)
	values.BusinessName = strings.TrimSpace(values.BusinessName)
}
