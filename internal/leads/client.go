// Package leads translates validated form answers into single insert or
// update calls against the leads table.
package leads

import (
	"context"
	"errors"
	"fmt"

	"fundpath/pkg/types"

	"github.com/sirupsen/logrus"
)

// Backend is a store for the leads table. store.LeadRepository (Postgres)
// and storage.SupabaseTable (hosted REST) implement it.
type Backend interface {
	InsertLead(ctx context.Context, patch types.LeadPatch) (string, error)
	UpdateLead(ctx context.Context, id string, patch types.LeadPatch) error
	Lead(ctx context.Context, id string) (*types.Lead, error)
}

// SubmissionError is returned for any failed create or update. Message is
// safe to show to the visitor; the cause is kept for logging.
type SubmissionError struct {
	Op      string
	Message string
	Err     error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("%s lead: %s: %v", e.Op, e.Message, e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// Client performs exactly one backend call per Create or Update. It does not
// retry; a failed attempt is surfaced to the caller immediately.
type Client struct {
	backend Backend
	logger  *logrus.Logger
}

func NewClient(backend Backend, logger *logrus.Logger) *Client {
	return &Client{backend: backend, logger: logger}
}

// Create inserts a new lead row and returns its identifier.
func (c *Client) Create(ctx context.Context, patch types.LeadPatch) (string, error) {
	id, err := c.backend.InsertLead(ctx, patch)
	if err != nil {
		c.logger.WithError(err).Error("failed to create lead")
		return "", &SubmissionError{
			Op:      "create",
			Message: "We couldn't save your information. Please try again.",
			Err:     err,
		}
	}

	c.logger.WithField("lead_id", id).Info("lead created")

	return id, nil
}

// Update patches only the columns set on patch.
func (c *Client) Update(ctx context.Context, id string, patch types.LeadPatch) error {
	if id == "" {
		return &SubmissionError{Op: "update", Message: "This application could not be found.", Err: types.ErrLeadNotFound}
	}

	err := c.backend.UpdateLead(ctx, id, patch)
	if err != nil {
		c.logger.WithError(err).WithField("lead_id", id).Error("failed to update lead")

		msg := "We couldn't save your information. Please try again."
		if errors.Is(err, types.ErrLeadNotFound) {
			msg = "This application could not be found."
		}

		return &SubmissionError{Op: "update", Message: msg, Err: err}
	}

	c.logger.WithField("lead_id", id).Info("lead updated")

	return nil
}

func (c *Client) Lead(ctx context.Context, id string) (*types.Lead, error) {
	lead, err := c.backend.Lead(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch lead %s: %w", id, err)
	}
	return lead, nil
}
