package funnel

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"fundpath/internal/schema"
	"fundpath/internal/utils"
	"fundpath/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSubmitter struct {
	mock.Mock
}

func (m *MockSubmitter) Create(ctx context.Context, patch types.LeadPatch) (string, error) {
	args := m.Called(ctx, patch)
	return args.String(0), args.Error(1)
}

func (m *MockSubmitter) Update(ctx context.Context, id string, patch types.LeadPatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

var contact = types.LeadForm{
	FirstName: "Maria",
	LastName:  "Gomez",
	Email:     "maria@x.com",
	Phone:     "5551234567",
}

func newForm(flow *Flow, s Submitter, opts ...FormOption) *Form {
	return NewForm(flow, schema.New(types.LocaleEnglish), s, opts...)
}

// fillCreditRepair walks the credit repair flow to its last step.
func fillCreditRepair(t *testing.T, f *Form) {
	t.Helper()

	require.True(t, f.Set(contact))
	require.True(t, f.Advance())
	require.True(t, f.Set(types.LeadForm{CreditScore: "580_669", CreditProfile: []string{"late_payments_2_years", "collections"}}))
	require.True(t, f.Advance())
	require.True(t, f.Set(types.LeadForm{TermsAccepted: true}))
}

func TestAdvanceWithInvalidStepKeepsIndex(t *testing.T) {
	f := newForm(CreditRepairFlow, new(MockSubmitter))

	f.Set(types.LeadForm{FirstName: "Maria", Email: "maria@"})
	assert.False(t, f.Advance())
	assert.Equal(t, 0, f.Index())

	errs := f.Errors()
	assert.Contains(t, errs, "last_name")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "phone")
	assert.NotContains(t, errs, "credit_score")
}

func TestAdvanceStopsAtLastStep(t *testing.T) {
	f := newForm(CreditRepairFlow, new(MockSubmitter))
	fillCreditRepair(t, f)

	assert.Equal(t, 2, f.Index())
	assert.True(t, f.IsLast())
	assert.False(t, f.Advance())
	assert.Equal(t, 2, f.Index())
}

func TestRetreat(t *testing.T) {
	f := newForm(CreditRepairFlow, new(MockSubmitter))

	f.Retreat()
	assert.Equal(t, 0, f.Index())

	f.Set(contact)
	require.True(t, f.Advance())

	// leaving an invalid step is allowed
	f.Set(types.LeadForm{CreditScore: "bogus"})
	f.Retreat()
	assert.Equal(t, 0, f.Index())
	assert.Empty(t, f.Errors())
}

func TestProgress(t *testing.T) {
	f := newForm(CreditRepairFlow, new(MockSubmitter))

	assert.InDelta(t, 100.0/3, f.Progress(), 0.001)
	f.Set(contact)
	f.Advance()
	assert.InDelta(t, 200.0/3, f.Progress(), 0.001)
}

func TestDynamicStepsRecomputeProgress(t *testing.T) {
	f := newForm(ApplyFlow, new(MockSubmitter))
	assert.Equal(t, 4, f.Total())

	f.Set(types.LeadForm{ServiceType: "business_funding"})
	assert.Equal(t, []string{"service", "contact", "funding", "business", "credit", "consent"}, stepIDs(f.Steps()))
	assert.InDelta(t, 100.0/6, f.Progress(), 0.001)

	require.True(t, f.Advance())
	assert.InDelta(t, 200.0/6, f.Progress(), 0.001)

	f.Retreat()
	f.Set(types.LeadForm{ServiceType: "credit_repair"})
	assert.Equal(t, []string{"service", "contact", "credit", "consent"}, stepIDs(f.Steps()))
	assert.InDelta(t, 25.0, f.Progress(), 0.001)
}

func TestBranchChangeClampsIndex(t *testing.T) {
	f := newForm(FundingFlow, new(MockSubmitter))

	f.Set(contact)
	require.True(t, f.Advance())
	f.Set(types.LeadForm{FundingGoal: "$50,000", ApplicantType: "business"})
	require.True(t, f.Advance())
	f.Set(types.LeadForm{BusinessName: "Gomez LLC", TimeInBusiness: "2_5_years", YearlyRevenue: "250k_500k"})
	require.True(t, f.Advance())
	f.Set(types.LeadForm{CreditScore: "unknown", CreditProfile: []string{"clean"}})
	require.True(t, f.Advance())
	require.Equal(t, 4, f.Index())
	require.Equal(t, 5, f.Total())

	// shrink the flow out from under the index
	f.mu.Lock()
	f.values.ApplicantType = "individual"
	f.clamp()
	f.mu.Unlock()

	assert.Equal(t, 4, f.Total())
	assert.Equal(t, 3, f.Index())
	assert.InDelta(t, 100.0, f.Progress(), 0.001)
}

func TestSetOnlyTouchesActiveStep(t *testing.T) {
	f := newForm(CreditRepairFlow, new(MockSubmitter))

	f.Set(types.LeadForm{FirstName: "Maria", CreditScore: "580_669"})

	values := f.Values()
	assert.Equal(t, "Maria", values.FirstName)
	assert.Empty(t, values.CreditScore)
	assert.Equal(t, "credit_repair", values.ServiceType)
}

func TestSubmitCreatesLead(t *testing.T) {
	s := new(MockSubmitter)

	var completed string
	f := newForm(CreditRepairFlow, s, WithCompletion(func(leadID string, values types.LeadForm) {
		completed = leadID
	}))
	fillCreditRepair(t, f)

	s.On("Create", mock.Anything, mock.MatchedBy(func(p types.LeadPatch) bool {
		return utils.PtrString(p.FirstName) == "Maria" &&
			utils.PtrString(p.Phone) == "5551234567" &&
			utils.PtrString(p.ServiceType) == "credit_repair" &&
			utils.PtrString(p.SubmissionKey) == f.SubmissionKey() &&
			utils.PtrString(p.Locale) == "en" &&
			*p.TermsAccepted &&
			assert.ElementsMatch(t, []string{"collections", "late_payments_2_years"}, p.CreditProfile) &&
			p.FundingGoal == nil
	})).Return("lead-1", nil).Once()

	res := f.Submit(context.Background())

	require.True(t, res.OK())
	assert.Equal(t, "lead-1", res.LeadID)
	assert.Equal(t, "lead-1", completed)
	assert.True(t, f.Complete())
	assert.False(t, f.InFlight())

	// a second submit after completion does nothing
	assert.Equal(t, StatusSkipped, f.Submit(context.Background()).Status)
	s.AssertNumberOfCalls(t, "Create", 1)
}

func TestSubmitOnlyFromLastStep(t *testing.T) {
	s := new(MockSubmitter)
	f := newForm(CreditRepairFlow, s)
	f.Set(contact)

	res := f.Submit(context.Background())

	assert.Equal(t, StatusSkipped, res.Status)
	s.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmitRevalidatesAllSteps(t *testing.T) {
	s := new(MockSubmitter)
	f := newForm(CreditRepairFlow, s)
	fillCreditRepair(t, f)

	f.mu.Lock()
	f.values.Email = "broken"
	f.mu.Unlock()

	res := f.Submit(context.Background())

	assert.Equal(t, StatusInvalid, res.Status)
	assert.Equal(t, 0, f.Index())
	assert.Contains(t, f.Errors(), "email")
	s.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmitFailureStaysResubmittable(t *testing.T) {
	s := new(MockSubmitter)
	f := newForm(CreditRepairFlow, s)
	fillCreditRepair(t, f)

	s.On("Create", mock.Anything, mock.Anything).Return("", errors.New("connection reset")).Once()
	s.On("Create", mock.Anything, mock.Anything).Return("lead-2", nil).Once()

	res := f.Submit(context.Background())
	assert.Equal(t, StatusFailed, res.Status)
	assert.NotEmpty(t, res.Message)
	assert.EqualError(t, res.Err, "connection reset")
	assert.False(t, f.Complete())
	assert.False(t, f.InFlight())

	res = f.Submit(context.Background())
	assert.True(t, res.OK())
	assert.Equal(t, "lead-2", f.LeadID())
}

type blockingSubmitter struct {
	started chan struct{}
	release chan struct{}

	mu    sync.Mutex
	calls int
}

func (b *blockingSubmitter) Create(ctx context.Context, patch types.LeadPatch) (string, error) {
	b.mu.Lock()
	b.calls++
	b.mu.Unlock()

	close(b.started)
	<-b.release
	return "lead-3", nil
}

func (b *blockingSubmitter) Update(ctx context.Context, id string, patch types.LeadPatch) error {
	return nil
}

func TestSubmitWhileInFlightIsNoop(t *testing.T) {
	b := &blockingSubmitter{started: make(chan struct{}), release: make(chan struct{})}
	f := newForm(CreditRepairFlow, b)
	fillCreditRepair(t, f)

	done := make(chan Result)
	go func() {
		done <- f.Submit(context.Background())
	}()

	select {
	case <-b.started:
	case <-time.After(2 * time.Second):
		t.Fatal("submission never started")
	}

	assert.True(t, f.InFlight())
	assert.Equal(t, StatusSkipped, f.Submit(context.Background()).Status)
	assert.False(t, f.Set(types.LeadForm{TermsAccepted: false}))

	close(b.release)
	res := <-done

	assert.True(t, res.OK())
	assert.Equal(t, 1, b.calls)
}

func TestProgressiveFlowCreatesThenPatches(t *testing.T) {
	s := new(MockSubmitter)
	f := newForm(SpanishFlow, s)

	s.On("Create", mock.Anything, mock.MatchedBy(func(p types.LeadPatch) bool {
		return utils.PtrString(p.FirstName) == "Maria" &&
			utils.PtrString(p.LastName) == "Gomez" &&
			utils.PtrString(p.Email) == "maria@x.com" &&
			utils.PtrString(p.Phone) == "5551234567" &&
			p.TermsAccepted != nil && *p.TermsAccepted &&
			p.ServiceType == nil &&
			utils.PtrString(p.Locale) == "es"
	})).Return("lead-es", nil).Once()

	s.On("Update", mock.Anything, "lead-es", types.LeadPatch{
		ServiceType: utils.StringPtr("funding"),
	}).Return(nil).Once()

	f.Set(contact)
	res := f.SubmitStep(context.Background())
	require.True(t, res.OK())
	assert.Equal(t, 1, f.Index())
	assert.False(t, f.Complete())

	f.Set(types.LeadForm{ServiceType: "funding"})
	res = f.SubmitStep(context.Background())
	require.True(t, res.OK())
	assert.True(t, f.Complete())

	s.AssertExpectations(t)
}

func TestProgressiveStepValidation(t *testing.T) {
	s := new(MockSubmitter)
	f := newForm(SpanishFlow, s)

	f.Set(types.LeadForm{FirstName: "Maria"})
	res := f.SubmitStep(context.Background())

	assert.Equal(t, StatusInvalid, res.Status)
	assert.Equal(t, "Este campo es obligatorio.", f.Errors()["last_name"])
	s.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func stepIDs(steps []Step) []string {
	ids := make([]string, len(steps))
	for i, s := range steps {
		ids[i] = s.ID
	}
	return ids
}
