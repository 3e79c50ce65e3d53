package metrics

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRouteLabel(t *testing.T) {
	tests := []struct {
		path   string
		status int
		want   string
	}{
		{path: "/", status: http.StatusOK, want: "/"},
		{path: "/pricing", status: http.StatusOK, want: "/pricing"},
		{path: "/api/leads/0d6a7a51", status: http.StatusOK, want: "/api/leads/:id"},
		{path: "/api/leads/0d6a7a51/extra", status: http.StatusMethodNotAllowed, want: "other"},
		{path: "/static/site.css", status: http.StatusOK, want: "/static/..."},
		{path: "/apply/funding", status: http.StatusOK, want: "/apply/:flow"},
		{path: "/apply/funding/thank-you", status: http.StatusOK, want: "/apply/:flow/thank-you"},
		{path: "/apply/funding/other", status: http.StatusMethodNotAllowed, want: "other"},
		{path: "/wp-login.php", status: http.StatusNotFound, want: "not_found"},
		{path: "/pricing/", status: http.StatusMovedPermanently, want: "other"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, routeLabel(tt.path, tt.status))
		})
	}
}

func TestMiddlewareCountsStatus(t *testing.T) {
	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/pricing", "418"))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/pricing", nil))
	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/pricing", "418"))

	assert.Equal(t, before+1, after)
}

func TestUnmatchedPathsShareOneSeries(t *testing.T) {
	handler := Middleware(http.NotFoundHandler())

	_ = httpRequestsTotal.WithLabelValues(http.MethodGet, "not_found", "404")
	series := testutil.CollectAndCount(httpRequestsTotal)
	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "not_found", "404"))

	for i := 0; i < 50; i++ {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, fmt.Sprintf("/scan-%d", i), nil))
	}

	assert.Equal(t, series, testutil.CollectAndCount(httpRequestsTotal))
	assert.Equal(t, before+50, testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "not_found", "404")))
}

func TestMethodLabel(t *testing.T) {
	assert.Equal(t, http.MethodPatch, methodLabel(http.MethodPatch))
	assert.Equal(t, "other", methodLabel("PROPFIND"))
}

func TestHandlerExposesRelayCounter(t *testing.T) {
	RecordRelay("appended")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `relay_events_total{result="appended"}`))
}
