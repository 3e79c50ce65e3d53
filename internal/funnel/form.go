// Package funnel drives the multi-step lead forms: which steps a flow has
// for the answers given so far, which step is active, whether it may be
// left, and when the accumulated answers are handed to the lead backend.
package funnel

import (
	"context"
	"reflect"
	"sync"

	"fundpath/internal/schema"
	"fundpath/internal/utils"
	"fundpath/pkg/types"

	"github.com/google/uuid"
)

// Submitter persists lead answers. leads.Client is the production
// implementation.
type Submitter interface {
	Create(ctx context.Context, patch types.LeadPatch) (string, error)
	Update(ctx context.Context, id string, patch types.LeadPatch) error
}

type Status int

const (
	StatusOK Status = iota
	StatusInvalid
	StatusFailed
	StatusSkipped
)

// Result is the outcome of a submission. The caller decides how to present
// it; the form keeps no notification state of its own.
type Result struct {
	Status  Status
	Message string
	LeadID  string
	Errors  schema.FieldErrors
	Err     error
}

func (r Result) OK() bool {
	return r.Status == StatusOK
}

var failureMessages = map[string]string{
	types.LocaleEnglish: "Something went wrong while sending your information. Please try again.",
	types.LocaleSpanish: "Ocurrió un error al enviar su información. Por favor, inténtelo de nuevo.",
}

type CompletionFunc func(leadID string, values types.LeadForm)

type FormOption func(*Form)

// WithCompletion registers a callback fired once after the lead is fully
// submitted.
func WithCompletion(fn CompletionFunc) FormOption {
	return func(f *Form) {
		f.onComplete = fn
	}
}

// Form is one user's pass through a flow. It is safe for concurrent use;
// at most one submission is in flight at a time.
type Form struct {
	mu sync.Mutex

	flow      *Flow
	validator *schema.Validator
	submitter Submitter

	index    int
	values   types.LeadForm
	errors   schema.FieldErrors
	leadID   string
	key      string
	inFlight bool
	complete bool

	onComplete CompletionFunc
}

func NewForm(flow *Flow, validator *schema.Validator, submitter Submitter, opts ...FormOption) *Form {
	f := &Form{
		flow:      flow,
		validator: validator.WithLocale(flow.Locale),
		submitter: submitter,
		values:    flow.withPresets(types.LeadForm{}),
		errors:    schema.FieldErrors{},
		key:       uuid.NewString(),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

func (f *Form) Flow() *Flow {
	return f.flow
}

func (f *Form) Steps() []Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.steps()
}

func (f *Form) Step() Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.steps()[f.index]
}

func (f *Form) Index() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.index
}

func (f *Form) Total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.steps())
}

// Progress is the completion percentage shown above the form,
// (index+1) / total * 100 for the current step set.
func (f *Form) Progress() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return float64(f.index+1) / float64(len(f.steps())) * 100
}

func (f *Form) IsLast() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.index == len(f.steps())-1
}

func (f *Form) Values() types.LeadForm {
	f.mu.Lock()
	defer f.mu.Unlock()
	values := f.values
	values.CreditProfile = append([]string(nil), f.values.CreditProfile...)
	return values
}

func (f *Form) Errors() schema.FieldErrors {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(schema.FieldErrors, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

func (f *Form) LeadID() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.leadID
}

// SubmissionKey is the idempotency token sent with the create call. It is
// fixed for the lifetime of the form, so a resubmission after a timeout
// resolves to the row that was already written.
func (f *Form) SubmissionKey() string {
	return f.key
}

func (f *Form) InFlight() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.inFlight
}

func (f *Form) Complete() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.complete
}

// Set copies the active step's fields from input into the form. Fields of
// other steps are left alone. Returns false while a submission is in
// flight or after completion.
func (f *Form) Set(input types.LeadForm) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.inFlight || f.complete {
		return false
	}

	copyFields(&f.values, input, f.steps()[f.index].Fields)
	f.values = f.flow.withPresets(f.values)
	f.clamp()

	return true
}

// ValidateCurrentStep validates only the fields of the active step and
// records their messages.
func (f *Form) ValidateCurrentStep() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.validateCurrentStep()
}

// Advance moves to the next step when the active one validates. It never
// talks to the backend.
func (f *Form) Advance() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.complete || !f.validateCurrentStep() {
		return false
	}

	if f.index >= len(f.steps())-1 {
		return false
	}

	f.index++
	return true
}

// Retreat moves back one step without validating the step being left.
func (f *Form) Retreat() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.index > 0 {
		f.index--
	}
	f.errors = schema.FieldErrors{}
	f.clamp()
}

// Submit validates every field of every current step and creates the lead.
// It is only valid from the last step. A call made while another
// submission is in flight, or after completion, is skipped.
func (f *Form) Submit(ctx context.Context) Result {
	f.mu.Lock()

	if f.inFlight || f.complete {
		f.mu.Unlock()
		return Result{Status: StatusSkipped}
	}

	steps := f.steps()
	if f.index != len(steps)-1 {
		f.mu.Unlock()
		return Result{Status: StatusSkipped, Message: "submit is only available on the last step"}
	}

	normalize(&f.values)

	fields := allFields(steps)
	f.errors = f.validator.Fields(&f.values, fields...)
	if len(f.errors) > 0 {
		f.index = firstInvalidStep(steps, f.errors)
		errs := f.errors
		f.mu.Unlock()
		return Result{Status: StatusInvalid, Errors: errs}
	}

	patch := patchFor(f.values, fields)
	f.applyFlowColumns(&patch)

	f.inFlight = true
	f.mu.Unlock()

	id, err := f.submitter.Create(ctx, patch)

	return f.finish(id, err, true)
}

// SubmitStep is the progressive variant: the active step is validated and
// written on its own. The first step creates the row, later steps patch
// only their own columns on it.
func (f *Form) SubmitStep(ctx context.Context) Result {
	f.mu.Lock()

	if f.inFlight || f.complete {
		f.mu.Unlock()
		return Result{Status: StatusSkipped}
	}

	if !f.validateCurrentStep() {
		errs := f.errors
		f.mu.Unlock()
		return Result{Status: StatusInvalid, Errors: errs}
	}

	steps := f.steps()
	last := f.index == len(steps)-1
	patch := patchFor(f.values, steps[f.index].Fields)
	leadID := f.leadID

	if leadID == "" {
		// the contact step carries the consent notice
		patch.TermsAccepted = utils.BoolPtr(true)
		f.applyFlowColumns(&patch)
	}

	f.inFlight = true
	f.mu.Unlock()

	var err error
	if leadID == "" {
		leadID, err = f.submitter.Create(ctx, patch)
	} else {
		err = f.submitter.Update(ctx, leadID, patch)
	}

	return f.finish(leadID, err, last)
}

func (f *Form) finish(leadID string, err error, last bool) Result {
	f.mu.Lock()

	f.inFlight = false

	if err != nil {
		f.mu.Unlock()
		return Result{Status: StatusFailed, Message: failureMessage(f.flow.Locale), Err: err}
	}

	f.leadID = leadID
	f.errors = schema.FieldErrors{}

	if !last {
		f.index++
		f.clamp()
		f.mu.Unlock()
		return Result{Status: StatusOK, LeadID: leadID}
	}

	f.complete = true
	callback := f.onComplete
	values := f.values
	f.mu.Unlock()

	if callback != nil {
		callback(leadID, values)
	}

	return Result{Status: StatusOK, LeadID: leadID}
}

func (f *Form) applyFlowColumns(patch *types.LeadPatch) {
	if f.flow.ServiceType != "" {
		patch.ServiceType = utils.StringPtr(string(f.flow.ServiceType))
	}
	patch.Locale = utils.StringPtr(f.flow.Locale)
	patch.SubmissionKey = utils.StringPtr(f.key)
}

func (f *Form) steps() []Step {
	return f.flow.StepsFor(f.values)
}

func (f *Form) validateCurrentStep() bool {
	normalize(&f.values)
	f.errors = f.validator.Fields(&f.values, f.steps()[f.index].Fields...)
	return len(f.errors) == 0
}

// clamp keeps the index inside the current step set after a branch change.
func (f *Form) clamp() {
	total := len(f.steps())
	if f.index > total-1 {
		f.index = total - 1
	}
	if f.index < 0 {
		f.index = 0
	}
}

func allFields(steps []Step) []string {
	var fields []string
	for _, step := range steps {
		fields = append(fields, step.Fields...)
	}
	return fields
}

func firstInvalidStep(steps []Step, errs schema.FieldErrors) int {
	for i, step := range steps {
		for _, field := range step.Fields {
			if _, ok := errs[field]; ok {
				return i
			}
		}
	}
	return len(steps) - 1
}

func failureMessage(locale string) string {
	if msg, ok := failureMessages[locale]; ok {
		return msg
	}
	return failureMessages[types.LocaleEnglish]
}

var formFieldIndex = func() map[string]int {
	index := map[string]int{}
	t := reflect.TypeOf(types.LeadForm{})
	for i := 0; i < t.NumField(); i++ {
		if name := t.Field(i).Tag.Get("form"); name != "" && name != "-" {
			index[name] = i
		}
	}
	return index
}()

func copyFields(dst *types.LeadForm, src types.LeadForm, fields []string) {
	dv := reflect.ValueOf(dst).Elem()
	sv := reflect.ValueOf(src)
	for _, name := range fields {
		if i, ok := formFieldIndex[name]; ok {
			dv.Field(i).Set(sv.Field(i))
		}
	}
}
