package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type observation struct {
	method string
	route  string
	status int
}

type fakeMetrics struct {
	observed []observation
}

func (m *fakeMetrics) ObserveHTTPRequest(method, route string, status int, _ float64) {
	m.observed = append(m.observed, observation{method: method, route: route, status: status})
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	metrics := &fakeMetrics{}
	r := mux.NewRouter()
	r.Use(MetricsMiddleware(metrics))
	r.HandleFunc("/api/v1/users/{platform_user_id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	for _, path := range []string{"/api/v1/users/42", "/api/v1/users/43", "/health"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	require.Len(t, metrics.observed, 3)
	assert.Equal(t, observation{http.MethodGet, "/api/v1/users/{platform_user_id}", http.StatusNotFound}, metrics.observed[0])
	assert.Equal(t, metrics.observed[0], metrics.observed[1])
	assert.Equal(t, observation{http.MethodGet, "/health", http.StatusOK}, metrics.observed[2])
}
