package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"fundpath/internal/funnel"
	"fundpath/pkg/types"

	"github.com/sirupsen/logrus"
)

const maxAPIBodyBytes = 64 << 10

type createLeadRequest struct {
	Flow string `json:"flow"`
	types.LeadForm
}

type leadResponse struct {
	ID      string            `json:"id,omitempty"`
	Error   string            `json:"error,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
	Skipped bool              `json:"skipped,omitempty"`
}

// handleCreateLead accepts a complete lead in one request. The flow named in
// the body decides which fields are required; the Idempotency-Key header is
// used as the submission key when present.
func (s *Service) handleCreateLead(w http.ResponseWriter, r *http.Request) {

	var ctx = r.Context()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxAPIBodyBytes))
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, leadResponse{Error: "unable to read request body"})
		return
	}

	var req createLeadRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, leadResponse{Error: "invalid json payload"})
		return
	}

	if req.Flow == "" {
		req.Flow = funnel.ApplyFlow.ID
	}

	flow, ok := funnel.FlowByID(req.Flow)
	if !ok {
		s.writeJSON(w, http.StatusBadRequest, leadResponse{Error: "unknown flow " + req.Flow})
		return
	}

	submitter := &meteredSubmitter{flow: flow.ID, next: s.leads}

	result := funnel.SubmitAll(ctx, flow, s.validator, submitter, req.LeadForm, r.Header.Get("Idempotency-Key"))

	switch result.Status {
	case funnel.StatusInvalid:
		s.writeJSON(w, http.StatusUnprocessableEntity, leadResponse{Errors: result.Errors})
	case funnel.StatusFailed:
		s.logger.WithError(result.Err).WithField("flow", flow.ID).Error("failed to create lead from api")
		s.writeJSON(w, http.StatusBadGateway, leadResponse{Error: result.Message})
	default:
		s.writeJSON(w, http.StatusCreated, leadResponse{ID: result.LeadID})
	}
}

// handlePatchLead updates only the fields present in the JSON body.
func (s *Service) handlePatchLead(w http.ResponseWriter, r *http.Request) {

	var ctx = r.Context()
	leadID := r.PathValue("id")

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxAPIBodyBytes))
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, leadResponse{Error: "unable to read request body"})
		return
	}

	var present map[string]json.RawMessage
	if err := json.Unmarshal(body, &present); err != nil {
		s.writeJSON(w, http.StatusBadRequest, leadResponse{Error: "invalid json payload"})
		return
	}

	var values types.LeadForm
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&values); err != nil {
		s.writeJSON(w, http.StatusBadRequest, leadResponse{Error: "invalid json payload"})
		return
	}

	fields := make([]string, 0, len(present))
	for name := range present {
		fields = append(fields, name)
	}

	submitter := &meteredSubmitter{flow: "api", next: s.leads}

	result := funnel.PatchFields(ctx, s.validator, submitter, leadID, values, fields)

	switch result.Status {
	case funnel.StatusSkipped:
		s.writeJSON(w, http.StatusBadRequest, leadResponse{Error: result.Message})
	case funnel.StatusInvalid:
		s.writeJSON(w, http.StatusUnprocessableEntity, leadResponse{Errors: result.Errors})
	case funnel.StatusFailed:
		if errors.Is(result.Err, types.ErrLeadNotFound) {
			s.writeJSON(w, http.StatusNotFound, leadResponse{Error: "lead not found"})
			return
		}
		s.logger.WithError(result.Err).WithField("lead_id", leadID).Error("failed to patch lead from api")
		s.writeJSON(w, http.StatusBadGateway, leadResponse{Error: result.Message})
	default:
		s.writeJSON(w, http.StatusOK, leadResponse{ID: leadID})
	}
}

func (s *Service) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{"status": status}).Error("failed to write json response")
	}
}
