package server

import "fundpath/pkg/types"

var formLabels = map[string]map[string]string{
	types.LocaleEnglish: {
		"first_name":       "First name",
		"last_name":        "Last name",
		"email":            "Email",
		"phone":            "Phone",
		"service_type":     "Service",
		"funding_goal":     "How much funding do you need?",
		"applicant_type":   "Applying as",
		"yearly_revenue":   "Yearly revenue",
		"business_name":    "Business name",
		"time_in_business": "Time in business",
		"credit_score":     "Estimated credit score",
		"credit_profile":   "Anything on your report? Select all that apply",
		"terms_accepted":   "I agree to be contacted about my request and accept the terms of service.",
		"back":             "Back",
		"next":             "Continue",
		"submit":           "Submit",
		"step":             "Step",
		"of":               "of",
		"thank_you":        "Thank you",
		"thank_you_body":   "We received your information. A specialist will contact you within one business day.",
		"home":             "Back to home",
	},
	types.LocaleSpanish: {
		"first_name":     "Nombre",
		"last_name":      "Apellido",
		"email":          "Correo electrónico",
		"phone":          "Teléfono",
		"service_type":   "Servicio",
		"back":           "Atrás",
		"next":           "Continuar",
		"submit":         "Enviar",
		"step":           "Paso",
		"of":             "de",
		"thank_you":      "Gracias",
		"thank_you_body": "Recibimos su información. Un especialista se comunicará con usted en un día hábil.",
		"home":           "Volver al inicio",
		"consent_notice": "Al continuar, acepta ser contactado sobre su solicitud y los términos del servicio.",
	},
}

var spanishServiceOptions = []types.Option{
	{Value: string(types.ServiceTypeGeneral), Label: "Todavía no estoy seguro"},
	{Value: string(types.ServiceTypeCreditRepair), Label: "Reparar mi crédito"},
	{Value: string(types.ServiceTypeFunding), Label: "Financiamiento personal"},
	{Value: string(types.ServiceTypeBusinessFunding), Label: "Financiamiento para negocios"},
}

func labelsFor(locale string) map[string]string {
	if labels, ok := formLabels[locale]; ok {
		return labels
	}
	return formLabels[types.LocaleEnglish]
}

func optionsFor(locale string) types.FormOptions {
	options := types.FormOptions{
		ServiceTypes:   types.ServiceTypeOptions,
		ApplicantTypes: types.ApplicantTypeOptions,
		YearlyRevenue:  types.YearlyRevenueOptions,
		TimeInBusiness: types.TimeInBusinessOptions,
		CreditScores:   types.CreditScoreOptions,
		CreditProfile:  types.CreditProfileOptions,
	}

	if locale == types.LocaleSpanish {
		options.ServiceTypes = spanishServiceOptions
	}

	return options
}
