package server

import (
	"net/http"

	"fundpath/pkg/types"
)

func (s *Service) handleHome(w http.ResponseWriter, r *http.Request) {
	data := &types.HomePageData{
		BasePageData: types.BasePageData{Title: "Fix your credit. Fund your goals.", Lang: types.LocaleEnglish},
		Notice:       r.URL.Query().Get("notice"),
		Error:        r.URL.Query().Get("error"),
		Services:     serviceCards(),
		Steps:        getSteps(),
	}

	if err := s.renderTemplate(w, r, "page.home", data); err != nil {
		s.logger.WithError(err).Error("failed to render home page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handleCreditRepair(w http.ResponseWriter, r *http.Request) {
	data := &types.ProductPageData{
		BasePageData: types.BasePageData{Title: "Credit Repair", Lang: types.LocaleEnglish},
		Headline:     "Dispute what doesn't belong on your report",
		Summary:      "We review your reports from all three bureaus and challenge inaccurate late payments, collections and charge-offs.",
		Bullets: []string{
			"Free review of your current credit profile",
			"Disputes prepared and tracked for you",
			"Monthly progress updates",
		},
		ApplyURL: "/apply/credit-repair",
	}

	if err := s.renderTemplate(w, r, "page.product", data); err != nil {
		s.logger.WithError(err).Error("failed to render credit repair page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handleFunding(w http.ResponseWriter, r *http.Request) {
	data := &types.ProductPageData{
		BasePageData: types.BasePageData{Title: "Funding", Lang: types.LocaleEnglish},
		Headline:     "Personal and business funding options",
		Summary:      "Tell us how much you need and we'll match you with lending partners that fit your profile.",
		Bullets: []string{
			"Personal loans and lines of credit",
			"Business funding for new and established companies",
			"No impact to your score to see options",
		},
		ApplyURL: "/apply/funding",
	}

	if err := s.renderTemplate(w, r, "page.product", data); err != nil {
		s.logger.WithError(err).Error("failed to render funding page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handlePricing(w http.ResponseWriter, r *http.Request) {
	data := &types.PricingPageData{
		BasePageData: types.BasePageData{Title: "Pricing", Lang: types.LocaleEnglish},
		Plans: []types.PricingPlan{
			{
				Name:     "Essentials",
				Price:    "$79",
				Cadence:  "per month",
				Features: []string{"Three-bureau review", "Up to 5 disputes a month"},
				ApplyURL: "/apply/credit-repair",
			},
			{
				Name:     "Complete",
				Price:    "$129",
				Cadence:  "per month",
				Features: []string{"Unlimited disputes", "Creditor interventions", "Funding readiness review"},
				ApplyURL: "/apply/credit-repair",
			},
			{
				Name:     "Funding",
				Price:    "Free",
				Cadence:  "to apply",
				Features: []string{"Matched with lending partners", "Business and personal options"},
				ApplyURL: "/apply/funding",
			},
		},
	}

	if err := s.renderTemplate(w, r, "page.pricing", data); err != nil {
		s.logger.WithError(err).Error("failed to render pricing page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handleAbout(w http.ResponseWriter, r *http.Request) {
	data := &types.ProductPageData{
		BasePageData: types.BasePageData{Title: "About", Lang: types.LocaleEnglish},
		Headline:     "About us",
		Summary:      "We help families and small businesses rebuild credit and find the funding they need.",
		ApplyURL:     "/apply",
	}

	if err := s.renderTemplate(w, r, "page.product", data); err != nil {
		s.logger.WithError(err).Error("failed to render about page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handleNotFound(w http.ResponseWriter, r *http.Request) {
	data := &types.NotFoundPageData{
		BasePageData: types.BasePageData{Title: "Page not found", Lang: types.LocaleEnglish},
		Path:         r.URL.Path,
	}

	if err := s.renderTemplateStatus(w, r, http.StatusNotFound, "page.notfound", data); err != nil {
		s.logger.WithError(err).Error("failed to render not found page")
		http.NotFound(w, r)
		return
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func serviceCards() []types.ServiceCard {
	return []types.ServiceCard{
		{
			Title:       "Credit Repair",
			Description: "Challenge inaccurate items and rebuild your score.",
			Href:        "/credit-repair",
		},
		{
			Title:       "Funding",
			Description: "Personal and business funding matched to your profile.",
			Href:        "/funding",
		},
	}
}

func getSteps() []types.StepData {
	return []types.StepData{
		{
			Number:      1,
			Title:       "Tell us where you are",
			Description: "Answer a few questions about your goals and your credit.",
		},
		{
			Number:      2,
			Title:       "Talk with a specialist",
			Description: "We review your profile and explain your options.",
		},
		{
			Number:      3,
			Title:       "Get to work",
			Description: "Start disputes or get matched with lending partners.",
		},
	}
}
