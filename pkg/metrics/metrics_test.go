package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegisterer("clinic-bot", reg)

	m.ObserveHTTPRequest("GET", "/health", 200, 0.01)
	m.ObserveBotUpdate("callback", "ok")
	m.ObserveBotUpdate("callback", "ok")
	m.ObserveClinicRequest("filial", 200, 0.2)
	m.ObserveDBQuery("select", "ok", 0.002)
	m.SetDBConnections(5, 2, 3)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("clinic-bot", "GET", "/health", "200")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.botUpdates.WithLabelValues("clinic-bot", "callback", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.clinicRequests.WithLabelValues("clinic-bot", "filial", "200")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.dbConnections.WithLabelValues("clinic-bot", "in_use")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveHTTPRequest("GET", "/", 200, 0)
		m.ObserveBotUpdate("text", "error")
		m.ObserveClinicRequest("login", 500, 1)
		m.ObserveDBQuery("insert", "error", 0)
		m.SetDBConnections(0, 0, 0)
	})
}
