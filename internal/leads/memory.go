package leads

import (
	"context"
	"sync"
	"time"

	"fundpath/pkg/types"

	"github.com/google/uuid"
)

// MemoryBackend keeps leads in process. It backs LEAD_BACKEND=memory for
// local development and stands in for a database in tests.
type MemoryBackend struct {
	mu   sync.Mutex
	rows map[string]*types.Lead
	keys map[string]string
	now  func() time.Time
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		rows: make(map[string]*types.Lead),
		keys: make(map[string]string),
		now:  time.Now,
	}
}

func (m *MemoryBackend) InsertLead(_ context.Context, patch types.LeadPatch) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if patch.SubmissionKey != nil {
		if id, ok := m.keys[*patch.SubmissionKey]; ok {
			return id, nil
		}
	}

	id := uuid.NewString()
	if patch.ID != nil {
		id = *patch.ID
	}

	lead := &types.Lead{ID: id, Locale: types.LocaleEnglish, CreatedAt: m.now().UTC()}
	ApplyPatch(lead, patch)
	lead.ID = id

	m.rows[id] = lead
	if lead.SubmissionKey != nil {
		m.keys[*lead.SubmissionKey] = id
	}

	return id, nil
}

func (m *MemoryBackend) UpdateLead(_ context.Context, id string, patch types.LeadPatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	lead, ok := m.rows[id]
	if !ok {
		return types.ErrLeadNotFound
	}

	patch.ID = nil
	patch.SubmissionKey = nil
	ApplyPatch(lead, patch)

	return nil
}

func (m *MemoryBackend) Lead(_ context.Context, id string) (*types.Lead, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	lead, ok := m.rows[id]
	if !ok {
		return nil, types.ErrLeadNotFound
	}

	out := *lead
	out.CreditProfile = append([]string(nil), lead.CreditProfile...)
	return &out, nil
}

// Leads returns a copy of every stored row.
func (m *MemoryBackend) Leads() []types.Lead {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]types.Lead, 0, len(m.rows))
	for _, lead := range m.rows {
		out = append(out, *lead)
	}
	return out
}

// ApplyPatch copies the non-nil columns of patch onto lead.
func ApplyPatch(lead *types.Lead, patch types.LeadPatch) {
	if patch.ID != nil {
		lead.ID = *patch.ID
	}
	if patch.FirstName != nil {
		lead.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		lead.LastName = *patch.LastName
	}
	if patch.Email != nil {
		lead.Email = *patch.Email
	}
	if patch.Phone != nil {
		lead.Phone = *patch.Phone
	}
	if patch.FundingGoal != nil {
		lead.FundingGoal = patch.FundingGoal
	}
	if patch.ApplicantType != nil {
		lead.ApplicantType = patch.ApplicantType
	}
	if patch.YearlyRevenue != nil {
		lead.YearlyRevenue = patch.YearlyRevenue
	}
	if patch.BusinessName != nil {
		lead.BusinessName = patch.BusinessName
	}
	if patch.TimeInBusiness != nil {
		lead.TimeInBusiness = patch.TimeInBusiness
	}
	if patch.CreditScore != nil {
		lead.CreditScore = patch.CreditScore
	}
	if patch.CreditProfile != nil {
		lead.CreditProfile = append([]string{}, patch.CreditProfile...)
	}
	if patch.TermsAccepted != nil {
		lead.TermsAccepted = *patch.TermsAccepted
	}
	if patch.ServiceType != nil {
		lead.ServiceType = patch.ServiceType
	}
	if patch.Locale != nil {
		lead.Locale = *patch.Locale
	}
	if patch.SubmissionKey != nil {
		lead.SubmissionKey = patch.SubmissionKey
	}
}
