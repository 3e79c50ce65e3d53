package funnel

import (
	"fundpath/pkg/types"
)

// Step is one page of a lead form. Steps of a flow own disjoint field sets.
type Step struct {
	ID     string
	Title  string
	Fields []string
}

var (
	stepService  = Step{ID: "service", Title: "What can we help you with?", Fields: []string{"service_type"}}
	stepContact  = Step{ID: "contact", Title: "Tell us about yourself", Fields: []string{"first_name", "last_name", "email", "phone"}}
	stepFunding  = Step{ID: "funding", Title: "Your funding goal", Fields: []string{"funding_goal", "applicant_type"}}
	stepBusiness = Step{ID: "business", Title: "About your business", Fields: []string{"business_name", "time_in_business", "yearly_revenue"}}
	stepCredit   = Step{ID: "credit", Title: "Your credit profile", Fields: []string{"credit_score", "credit_profile"}}
	stepConsent  = Step{ID: "consent", Title: "Review and submit", Fields: []string{"terms_accepted"}}

	stepContactES = Step{ID: "contact", Title: "Cuéntenos sobre usted", Fields: []string{"first_name", "last_name", "email", "phone"}}
	stepServiceES = Step{ID: "service", Title: "¿Cómo podemos ayudarle?", Fields: []string{"service_type"}}
)

// Flow is a funnel definition. Steps is a pure function of the answers given
// so far; the controller recomputes it instead of mutating a step list.
type Flow struct {
	ID     string
	Title  string
	Locale string

	// Preset answers fixed by the funnel the lead entered through.
	ServiceType types.ServiceType

	// Progressive flows write each completed step to the backend instead of
	// submitting once from the last step.
	Progressive bool

	Steps func(values types.LeadForm) []Step
}

// StepsFor returns the ordered steps for the given answers, after applying
// the flow presets.
func (f *Flow) StepsFor(values types.LeadForm) []Step {
	return f.Steps(f.withPresets(values))
}

func (f *Flow) withPresets(values types.LeadForm) types.LeadForm {
	if f.ServiceType != "" {
		values.ServiceType = string(f.ServiceType)
	}
	return values
}

func wantsFunding(values types.LeadForm) bool {
	switch types.ServiceType(values.ServiceType) {
	case types.ServiceTypeFunding, types.ServiceTypeBusinessFunding:
		return true
	}
	return false
}

func wantsBusinessDetails(values types.LeadForm) bool {
	return types.ServiceType(values.ServiceType) == types.ServiceTypeBusinessFunding ||
		types.ApplicantType(values.ApplicantType) == types.ApplicantTypeBusiness
}

var ApplyFlow = &Flow{
	ID:     "apply",
	Title:  "Get started",
	Locale: types.LocaleEnglish,
	Steps: func(values types.LeadForm) []Step {
		steps := []Step{stepService, stepContact}
		if wantsFunding(values) {
			steps = append(steps, stepFunding)
			if wantsBusinessDetails(values) {
				steps = append(steps, stepBusiness)
			}
		}
		return append(steps, stepCredit, stepConsent)
	},
}

var CreditRepairFlow = &Flow{
	ID:          "credit-repair",
	Title:       "Start your credit repair",
	Locale:      types.LocaleEnglish,
	ServiceType: types.ServiceTypeCreditRepair,
	Steps: func(values types.LeadForm) []Step {
		return []Step{stepContact, stepCredit, stepConsent}
	},
}

var FundingFlow = &Flow{
	ID:          "funding",
	Title:       "See what you qualify for",
	Locale:      types.LocaleEnglish,
	ServiceType: types.ServiceTypeFunding,
	Steps: func(values types.LeadForm) []Step {
		steps := []Step{stepContact, stepFunding}
		if wantsBusinessDetails(values) {
			steps = append(steps, stepBusiness)
		}
		return append(steps, stepCredit, stepConsent)
	},
}

// SpanishFlow captures contact details first and creates the lead right
// away; the service answer is patched onto the same row afterwards.
var SpanishFlow = &Flow{
	ID:          "es",
	Title:       "Comience hoy",
	Locale:      types.LocaleSpanish,
	Progressive: true,
	Steps: func(values types.LeadForm) []Step {
		return []Step{stepContactES, stepServiceES}
	},
}

var flows = map[string]*Flow{
	ApplyFlow.ID:        ApplyFlow,
	CreditRepairFlow.ID: CreditRepairFlow,
	FundingFlow.ID:      FundingFlow,
	SpanishFlow.ID:      SpanishFlow,
}

// FlowByID looks up a registered flow.
func FlowByID(id string) (*Flow, bool) {
	f, ok := flows[id]
	return f, ok
}
