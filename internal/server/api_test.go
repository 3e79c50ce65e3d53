package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *testSite) sendJSON(t *testing.T, method, path, body string, headers map[string]string) (*http.Response, leadResponse) {
	t.Helper()

	req, err := http.NewRequest(method, s.srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := s.client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out leadResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))

	return resp, out
}

const fundingLead = `{
	"flow": "funding",
	"first_name": "Luis",
	"last_name": "Garcia",
	"email": "luis@example.com",
	"phone": "555-000-1234",
	"funding_goal": "$50,000",
	"applicant_type": "individual",
	"credit_score": "670_739",
	"credit_profile": ["clean"],
	"terms_accepted": true
}`

func TestAPICreateLead(t *testing.T) {
	site := newTestSite(t)

	resp, out := site.sendJSON(t, http.MethodPost, "/api/leads", fundingLead, nil)

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotEmpty(t, out.ID)

	rows := site.backend.Leads()
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].FundingGoal)
	assert.Equal(t, int64(50000), *rows[0].FundingGoal)
	require.NotNil(t, rows[0].ServiceType)
	assert.Equal(t, "funding", *rows[0].ServiceType)
	assert.Nil(t, rows[0].BusinessName)
}

func TestAPICreateLeadIdempotencyKey(t *testing.T) {
	site := newTestSite(t)
	headers := map[string]string{"Idempotency-Key": "retry-1"}

	_, first := site.sendJSON(t, http.MethodPost, "/api/leads", fundingLead, headers)
	_, second := site.sendJSON(t, http.MethodPost, "/api/leads", fundingLead, headers)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, site.backend.Leads(), 1)
}

func TestAPICreateLeadInvalid(t *testing.T) {
	site := newTestSite(t)

	resp, out := site.sendJSON(t, http.MethodPost, "/api/leads", `{"flow":"credit-repair","first_name":"L"}`, nil)

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, out.Errors, "first_name")
	assert.Contains(t, out.Errors, "credit_profile")
	assert.Contains(t, out.Errors, "terms_accepted")
	assert.NotContains(t, out.Errors, "funding_goal")
}

func TestAPICreateLeadBadRequests(t *testing.T) {
	site := newTestSite(t)

	resp, _ := site.sendJSON(t, http.MethodPost, "/api/leads", `{"flow":"mortgage"}`, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = site.sendJSON(t, http.MethodPost, "/api/leads", `{`, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPIPatchLead(t *testing.T) {
	site := newTestSite(t)

	_, created := site.sendJSON(t, http.MethodPost, "/api/leads", fundingLead, nil)

	resp, out := site.sendJSON(t, http.MethodPatch, "/api/leads/"+created.ID, `{"service_type":"business_funding","business_name":"Garcia Tacos"}`, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, created.ID, out.ID)

	rows := site.backend.Leads()
	require.Len(t, rows, 1)
	assert.Equal(t, "business_funding", *rows[0].ServiceType)
	assert.Equal(t, "Garcia Tacos", *rows[0].BusinessName)
	assert.Equal(t, "Luis", rows[0].FirstName)
	assert.Equal(t, int64(50000), *rows[0].FundingGoal)
}

func TestAPIPatchLeadErrors(t *testing.T) {
	site := newTestSite(t)

	resp, _ := site.sendJSON(t, http.MethodPatch, "/api/leads/missing", `{"service_type":"general"}`, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, out := site.sendJSON(t, http.MethodPatch, "/api/leads/missing", `{"phone":"12"}`, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, out.Errors, "phone")

	resp, _ = site.sendJSON(t, http.MethodPatch, "/api/leads/missing", `{"id":"x"}`, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
