package seed

import (
	"context"
	"fmt"

	"fundpath/internal/funnel"
	"fundpath/internal/schema"
	"fundpath/pkg/types"

	"github.com/sirupsen/logrus"
)

// DemoLead is one seeded lead and the funnel it enters through.
type DemoLead struct {
	Key    string
	Flow   *funnel.Flow
	Values types.LeadForm
}

// DemoLeads are written with fixed submission keys, so seeding twice does
// not duplicate rows.
//
// To add a lead: append it with a new key and run `fundpath seed`.
func DemoLeads() []DemoLead {
	return []DemoLead{
		{
			Key:  "seed-credit-repair-maria",
			Flow: funnel.CreditRepairFlow,
			Values: types.LeadForm{
				FirstName:     "Maria",
				LastName:      "Lopez",
				Email:         "maria.lopez@example.com",
				Phone:         "(704) 555-0142",
				CreditScore:   string(types.CreditScoreFair),
				CreditProfile: []string{string(types.CreditProfileLatePayments2Years), string(types.CreditProfileCollections)},
				TermsAccepted: true,
			},
		},
		{
			Key:  "seed-funding-james",
			Flow: funnel.FundingFlow,
			Values: types.LeadForm{
				FirstName:     "James",
				LastName:      "Turner",
				Email:         "james.turner@example.com",
				Phone:         "704-555-0199",
				FundingGoal:   "$25,000",
				ApplicantType: string(types.ApplicantTypeIndividual),
				CreditScore:   string(types.CreditScoreGood),
				CreditProfile: []string{string(types.CreditProfileClean)},
				TermsAccepted: true,
			},
		},
		{
			Key:  "seed-business-funding-sarah",
			Flow: funnel.ApplyFlow,
			Values: types.LeadForm{
				FirstName:      "Sarah",
				LastName:       "Kim",
				Email:          "sarah@kimbakery.example.com",
				Phone:          "9805550123",
				ServiceType:    string(types.ServiceTypeBusinessFunding),
				FundingGoal:    "150000",
				ApplicantType:  string(types.ApplicantTypeBusiness),
				BusinessName:   "Kim's Bakery",
				TimeInBusiness: "2_5_years",
				YearlyRevenue:  "250k_500k",
				CreditScore:    string(types.CreditScoreVeryGood),
				CreditProfile:  []string{string(types.CreditProfileClean)},
				TermsAccepted:  true,
			},
		},
		{
			Key:  "seed-es-david",
			Flow: funnel.SpanishFlow,
			Values: types.LeadForm{
				FirstName:   "David",
				LastName:    "Martinez",
				Email:       "david.martinez@example.com",
				Phone:       "704 555 0177",
				ServiceType: string(types.ServiceTypeCreditRepair),
			},
		},
	}
}

// SeedLeads submits every demo lead through the same validation the site
// uses and returns the ids written.
func SeedLeads(ctx context.Context, logger *logrus.Logger, submitter funnel.Submitter) ([]string, error) {
	validator := schema.New(types.LocaleEnglish)

	ids := make([]string, 0, len(DemoLeads()))
	for _, lead := range DemoLeads() {
		result := funnel.SubmitAll(ctx, lead.Flow, validator, submitter, lead.Values, lead.Key)
		switch result.Status {
		case funnel.StatusInvalid:
			return ids, fmt.Errorf("demo lead %s is invalid: %v", lead.Key, result.Errors)
		case funnel.StatusFailed:
			return ids, fmt.Errorf("failed to seed lead %s: %w", lead.Key, result.Err)
		}

		logger.WithFields(logrus.Fields{
			"key":     lead.Key,
			"flow":    lead.Flow.ID,
			"lead_id": result.LeadID,
		}).Info("seeded lead")

		ids = append(ids, result.LeadID)
	}

	return ids, nil
}
