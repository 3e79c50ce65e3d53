package relay

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"fundpath/internal/metrics"

	"github.com/alexedwards/flow"
	"github.com/sirupsen/logrus"
)

const maxEventBytes = 1 << 20

type response struct {
	Success bool   `json:"success"`
	Skipped bool   `json:"skipped,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    Code   `json:"code,omitempty"`
}

// Handler serves the webhook endpoint plus health and metrics.
type Handler struct {
	relay  *Relay
	secret string
	logger *logrus.Logger
}

func NewHandler(relay *Relay, secret string, logger *logrus.Logger) *Handler {
	return &Handler{relay: relay, secret: secret, logger: logger}
}

func (h *Handler) Routes() http.Handler {
	mux := flow.New()

	mux.Use(h.loggingMiddleware)
	mux.Use(metrics.Middleware)

	mux.HandleFunc("/webhooks/leads", h.handleLeadWebhook, http.MethodPost)
	mux.HandleFunc("/healthz", h.handleHealth, http.MethodGet)
	mux.Handle("/metrics", metrics.Handler(), http.MethodGet)

	return mux
}

func (h *Handler) handleLeadWebhook(w http.ResponseWriter, r *http.Request) {

	if !h.authorized(r) {
		h.writeJSON(w, http.StatusUnauthorized, response{Error: "Unauthorized", Code: "unauthorized"})
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxEventBytes))
	if err != nil {
		metrics.RecordRelay(string(CodeInvalidPayload))
		h.fail(w, &Error{Code: CodeInvalidPayload, Err: fmt.Errorf("failed to read body: %w", err)})
		return
	}

	var event Event
	if err := json.Unmarshal(body, &event); err != nil {
		metrics.RecordRelay(string(CodeInvalidPayload))
		h.fail(w, &Error{Code: CodeInvalidPayload, Err: fmt.Errorf("failed to decode event: %w", err)})
		return
	}

	skipped, err := h.relay.HandleEvent(r.Context(), event)
	if err != nil {
		h.fail(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, response{Success: true, Skipped: skipped})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, response{Success: true})
}

func (h *Handler) authorized(r *http.Request) bool {
	if h.secret == "" {
		return true
	}

	expected := "Bearer " + h.secret
	return subtle.ConstantTimeCompare([]byte(r.Header.Get("Authorization")), []byte(expected)) == 1
}

const failureMessage = "Failed to relay lead"

// fail reports every relay failure with the same status and message; the
// code tells them apart. Upstream response bodies only reach the log.
func (h *Handler) fail(w http.ResponseWriter, err error) {

	res := response{Error: failureMessage, Code: CodeAppendFailed}

	var relayErr *Error
	if errors.As(err, &relayErr) {
		res.Code = relayErr.Code
	}

	h.logger.WithError(err).WithField("code", res.Code).Error("lead relay failed")
	h.writeJSON(w, http.StatusInternalServerError, res)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.WithError(err).Error("failed to write response")
	}
}
