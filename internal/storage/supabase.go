package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"fundpath/internal/utils"
	"fundpath/pkg/types"

	"github.com/google/uuid"
)

// SupabaseTable reads and writes lead rows through Supabase's PostgREST API
type SupabaseTable struct {
	baseURL    string
	apiKey     string
	table      string
	httpClient *http.Client
}

// NewSupabaseTable creates a client for table under baseURL (https://<project>.supabase.co)
func NewSupabaseTable(baseURL, apiKey, table string, httpClient *http.Client) *SupabaseTable {
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &SupabaseTable{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		table:      table,
		httpClient: httpClient,
	}
}

// InsertLead creates a row and returns its id. A repeated submission key
// returns the id of the row created first.
func (s *SupabaseTable) InsertLead(ctx context.Context, patch types.LeadPatch) (string, error) {

	if patch.ID == nil {
		patch.ID = utils.StringPtr(uuid.NewString())
	}

	query := url.Values{}
	prefer := "return=representation"
	if patch.SubmissionKey != nil {
		query.Set("on_conflict", "submission_key")
		prefer += ",resolution=ignore-duplicates"
	}

	var rows []types.Lead
	err := s.do(ctx, http.MethodPost, query, prefer, utils.StructToMapOmitNil(patch), &rows)
	if err != nil {
		return "", fmt.Errorf("failed to insert lead: %w", err)
	}

	if len(rows) > 0 {
		return rows[0].ID, nil
	}

	if patch.SubmissionKey == nil {
		return "", fmt.Errorf("insert returned no rows")
	}

	lead, err := s.first(ctx, "submission_key", *patch.SubmissionKey)
	if err != nil {
		return "", err
	}

	return lead.ID, nil
}

// UpdateLead patches only the columns set on patch
func (s *SupabaseTable) UpdateLead(ctx context.Context, leadID string, patch types.LeadPatch) error {

	patch.ID = nil
	patch.SubmissionKey = nil

	columns := utils.StructToMapOmitNil(patch)
	if len(columns) == 0 {
		return nil
	}

	query := url.Values{}
	query.Set("id", "eq."+leadID)

	var rows []types.Lead
	err := s.do(ctx, http.MethodPatch, query, "return=representation", columns, &rows)
	if err != nil {
		return fmt.Errorf("failed to update lead %s: %w", leadID, err)
	}

	if len(rows) == 0 {
		return types.ErrLeadNotFound
	}

	return nil
}

func (s *SupabaseTable) Lead(ctx context.Context, leadID string) (*types.Lead, error) {
	return s.first(ctx, "id", leadID)
}

func (s *SupabaseTable) first(ctx context.Context, column, value string) (*types.Lead, error) {

	query := url.Values{}
	query.Set("select", "*")
	query.Set(column, "eq."+value)
	query.Set("limit", "1")

	var rows []types.Lead
	err := s.do(ctx, http.MethodGet, query, "", nil, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch lead by %s: %w", column, err)
	}

	if len(rows) == 0 {
		return nil, types.ErrLeadNotFound
	}

	return &rows[0], nil
}

func (s *SupabaseTable) do(ctx context.Context, method string, query url.Values, prefer string, body any, out any) error {

	endpoint := fmt.Sprintf("%s/rest/v1/%s", s.baseURL, url.PathEscape(s.table))
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("apikey", s.apiKey)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.apiKey))
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s %s failed with status %d: %s", method, s.table, resp.StatusCode, string(data))
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
