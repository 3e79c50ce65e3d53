package server

import (
	"context"

	"fundpath/internal/funnel"
	"fundpath/internal/metrics"
	"fundpath/pkg/types"
)

// meteredSubmitter counts lead writes per flow before handing them on.
type meteredSubmitter struct {
	flow string
	next funnel.Submitter
}

func (m *meteredSubmitter) Create(ctx context.Context, patch types.LeadPatch) (string, error) {
	id, err := m.next.Create(ctx, patch)
	metrics.RecordSubmission(m.flow, "create", outcome(err))
	return id, err
}

func (m *meteredSubmitter) Update(ctx context.Context, id string, patch types.LeadPatch) error {
	err := m.next.Update(ctx, id, patch)
	metrics.RecordSubmission(m.flow, "update", outcome(err))
	return err
}

func outcome(err error) string {
	if err != nil {
		return "failed"
	}
	return "ok"
}
