package funnel

import (
	"context"

	"fundpath/internal/schema"
	"fundpath/internal/utils"
	"fundpath/pkg/types"
)

// KnownField reports whether name is a form field of types.LeadForm.
func KnownField(name string) bool {
	_, ok := formFieldIndex[name]
	return ok
}

// SubmitAll validates values against every step flow would show for them
// and creates the lead in a single call. It serves clients that post a
// complete lead at once instead of walking the steps.
func SubmitAll(ctx context.Context, flow *Flow, validator *schema.Validator, submitter Submitter, values types.LeadForm, key string) Result {

	values = flow.withPresets(values)
	normalize(&values)

	fields := allFields(flow.StepsFor(values))
	errs := validator.WithLocale(flow.Locale).Fields(&values, fields...)
	if len(errs) > 0 {
		return Result{Status: StatusInvalid, Errors: errs}
	}

	patch := patchFor(values, fields)
	if flow.ServiceType != "" {
		patch.ServiceType = utils.StringPtr(string(flow.ServiceType))
	}
	if flow.Progressive {
		patch.TermsAccepted = utils.BoolPtr(true)
	}
	patch.Locale = utils.StringPtr(flow.Locale)
	patch.SubmissionKey = utils.StringPtrOrNil(key)

	id, err := submitter.Create(ctx, patch)
	if err != nil {
		return Result{Status: StatusFailed, Message: failureMessage(flow.Locale), Err: err}
	}

	return Result{Status: StatusOK, LeadID: id}
}

// PatchFields validates only fields of values and writes them onto an
// existing lead. Unknown field names are dropped.
func PatchFields(ctx context.Context, validator *schema.Validator, submitter Submitter, leadID string, values types.LeadForm, fields []string) Result {

	known := make([]string, 0, len(fields))
	for _, field := range fields {
		if KnownField(field) {
			known = append(known, field)
		}
	}

	if len(known) == 0 {
		return Result{Status: StatusSkipped, Message: "no known fields to update"}
	}

	normalize(&values)

	errs := validator.Fields(&values, known...)
	if len(errs) > 0 {
		return Result{Status: StatusInvalid, Errors: errs}
	}

	err := submitter.Update(ctx, leadID, patchFor(values, known))
	if err != nil {
		return Result{Status: StatusFailed, Message: failureMessage(types.LocaleEnglish), LeadID: leadID, Err: err}
	}

	return Result{Status: StatusOK, LeadID: leadID}
}
