package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	leadSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_submissions_total",
			Help: "Total number of lead create and update calls",
		},
		[]string{"flow", "op", "status"},
	)

	relayEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_events_total",
			Help: "Total number of webhook events handled by the relay",
		},
		[]string{"result"},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)
		path := routeLabel(r.URL.Path, rw.statusCode)
		method := methodLabel(r.Method)

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(duration)
	})
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

func RecordSubmission(flow, op, status string) {
	leadSubmissions.WithLabelValues(flow, op, status).Inc()
}

func RecordRelay(result string) {
	relayEvents.WithLabelValues(result).Inc()
}

const (
	labelNotFound = "not_found"
	labelOther    = "other"
)

// exactRoutes are the fixed paths served by the site and the relay.
var exactRoutes = map[string]bool{
	"/":               true,
	"/credit-repair":  true,
	"/funding":        true,
	"/pricing":        true,
	"/about":          true,
	"/apply":          true,
	"/es/aplicar":     true,
	"/api/leads":      true,
	"/healthz":        true,
	"/metrics":        true,
	"/webhooks/leads": true,
}

// routeLabel maps a request path onto a bounded set of route patterns so
// ids, asset names and scanned URLs never become label values.
func routeLabel(path string, status int) string {
	if status == http.StatusNotFound {
		return labelNotFound
	}

	if exactRoutes[path] {
		return path
	}

	switch {
	case strings.HasPrefix(path, "/static/"):
		return "/static/..."
	case strings.HasPrefix(path, "/api/leads/") && !strings.Contains(strings.TrimPrefix(path, "/api/leads/"), "/"):
		return "/api/leads/:id"
	case strings.HasPrefix(path, "/apply/"):
		switch rest := strings.TrimPrefix(path, "/apply/"); strings.Count(rest, "/") {
		case 0:
			return "/apply/:flow"
		case 1:
			if strings.HasSuffix(rest, "/thank-you") {
				return "/apply/:flow/thank-you"
			}
		}
	}

	return labelOther
}

func methodLabel(method string) string {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
		http.MethodPatch, http.MethodDelete, http.MethodOptions:
		return method
	}
	return labelOther
}
