package server

import (
	"fmt"
	"math"
	"net/http"

	"fundpath/internal/funnel"
	"fundpath/pkg/types"

	"github.com/sirupsen/logrus"
)

const localizedApplyPath = "/es/aplicar"

// flowFromRequest resolves the funnel served at the request path.
func (s *Service) flowFromRequest(r *http.Request) (*funnel.Flow, bool) {
	switch r.URL.Path {
	case "/apply":
		return funnel.ApplyFlow, true
	case localizedApplyPath:
		return funnel.SpanishFlow, true
	}

	return funnel.FlowByID(r.PathValue("flow"))
}

func (s *Service) newForm(flow *funnel.Flow) *funnel.Form {
	submitter := &meteredSubmitter{flow: flow.ID, next: s.leads}

	return funnel.NewForm(flow, s.validator, submitter, funnel.WithCompletion(func(leadID string, values types.LeadForm) {
		s.logger.WithFields(logrus.Fields{
			"flow":    flow.ID,
			"lead_id": leadID,
		}).Info("lead form completed")
	}))
}

func thankYouPath(flow *funnel.Flow) string {
	return fmt.Sprintf("/apply/%s/thank-you", flow.ID)
}

func (s *Service) handleGetApply(w http.ResponseWriter, r *http.Request) {

	flow, ok := s.flowFromRequest(r)
	if !ok {
		s.handleNotFound(w, r)
		return
	}

	sessionID := s.sessionID(w, r)

	form := s.sessions.Form(sessionID, flow, func() *funnel.Form { return s.newForm(flow) })
	if form.Complete() {
		s.sessions.Reset(sessionID, flow)
		form = s.sessions.Form(sessionID, flow, func() *funnel.Form { return s.newForm(flow) })
	}

	data := s.formPageData(r, form, "")
	if err := s.renderTemplate(w, r, "page.form", data); err != nil {
		s.logger.WithError(err).Error("failed to render form page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handlePostApply(w http.ResponseWriter, r *http.Request) {

	var ctx = r.Context()

	flow, ok := s.flowFromRequest(r)
	if !ok {
		s.handleNotFound(w, r)
		return
	}

	err := r.ParseForm()
	if err != nil {
		s.logger.WithError(err).Error("failed to parse form")
		http.Error(w, "invalid form payload", http.StatusBadRequest)
		return
	}

	var input = new(types.LeadForm)
	err = decoder.Decode(input, r.PostForm)
	if err != nil {
		s.logger.WithError(err).Error("failed to decode form")
		http.Error(w, "invalid form payload", http.StatusBadRequest)
		return
	}

	sessionID := s.sessionID(w, r)
	form := s.sessions.Form(sessionID, flow, func() *funnel.Form { return s.newForm(flow) })

	if form.Complete() {
		http.Redirect(w, r, thankYouPath(flow), http.StatusSeeOther)
		return
	}

	if r.PostForm.Get("nav") == "back" {
		form.Retreat()
		http.Redirect(w, r, r.URL.Path, http.StatusSeeOther)
		return
	}

	if !form.Set(*input) {
		// another request from this session is submitting
		http.Redirect(w, r, r.URL.Path, http.StatusSeeOther)
		return
	}

	var result funnel.Result
	switch {
	case flow.Progressive:
		result = form.SubmitStep(ctx)
	case form.IsLast():
		result = form.Submit(ctx)
	default:
		if !form.Advance() {
			result = funnel.Result{Status: funnel.StatusInvalid}
		}
	}

	switch result.Status {
	case funnel.StatusInvalid:
		s.renderForm(w, r, form, http.StatusUnprocessableEntity, "")
		return
	case funnel.StatusFailed:
		s.logger.WithError(result.Err).WithField("flow", flow.ID).Error("failed to submit lead")
		s.renderForm(w, r, form, http.StatusBadGateway, result.Message)
		return
	}

	if form.Complete() {
		http.Redirect(w, r, thankYouPath(flow), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, r.URL.Path, http.StatusSeeOther)
}

func (s *Service) renderForm(w http.ResponseWriter, r *http.Request, form *funnel.Form, status int, banner string) {
	data := s.formPageData(r, form, banner)
	if err := s.renderTemplateStatus(w, r, status, "page.form", data); err != nil {
		s.logger.WithError(err).Error("failed to render form page")
		s.internalServerError(w)
	}
}

func (s *Service) formPageData(r *http.Request, form *funnel.Form, banner string) *types.FormPageData {
	flow := form.Flow()
	step := form.Step()
	index := form.Index()
	values := form.Values()

	selected := make(map[string]bool, len(values.CreditProfile))
	for _, v := range values.CreditProfile {
		selected[v] = true
	}

	return &types.FormPageData{
		BasePageData: types.BasePageData{Title: flow.Title, Lang: flow.Locale},
		FlowID:       flow.ID,
		FlowTitle:    flow.Title,
		Action:       r.URL.Path,
		StepID:       step.ID,
		StepTitle:    step.Title,
		StepNumber:   index + 1,
		TotalSteps:   form.Total(),
		Progress:     int(math.Round(form.Progress())),
		IsFirst:      index == 0,
		IsLast:       form.IsLast(),
		Values:       values,
		Selected:     selected,
		FieldErrors:  form.Errors(),
		Error:        banner,
		Options:      optionsFor(flow.Locale),
		Labels:       labelsFor(flow.Locale),
	}
}

func (s *Service) handleThankYou(w http.ResponseWriter, r *http.Request) {

	flow, ok := funnel.FlowByID(r.PathValue("flow"))
	if !ok {
		s.handleNotFound(w, r)
		return
	}

	start := "/apply/" + flow.ID
	if flow == funnel.ApplyFlow {
		start = "/apply"
	} else if flow == funnel.SpanishFlow {
		start = localizedApplyPath
	}

	sessionID := s.sessionID(w, r)

	form, ok := s.sessions.Lookup(sessionID, flow)
	if !ok || !form.Complete() {
		http.Redirect(w, r, start, http.StatusSeeOther)
		return
	}

	data := &types.ThankYouPageData{
		BasePageData: types.BasePageData{Title: labelsFor(flow.Locale)["thank_you"], Lang: flow.Locale},
		FirstName:    form.Values().FirstName,
		HomeURL:      "/",
		Labels:       labelsFor(flow.Locale),
	}

	if err := s.renderTemplate(w, r, "page.thankyou", data); err != nil {
		s.logger.WithError(err).Error("failed to render thank you page")
		s.internalServerError(w)
		return
	}
}
