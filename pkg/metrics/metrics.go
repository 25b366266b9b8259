package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "smc"

// Metrics набор prometheus-коллекторов сервиса.
// Все методы безопасны для nil-получателя, поэтому компоненты
// работают одинаково при выключенных метриках.
type Metrics struct {
	serviceName string

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	botUpdates *prometheus.CounterVec

	clinicRequests *prometheus.CounterVec
	clinicDuration *prometheus.HistogramVec

	dbQueryDuration *prometheus.HistogramVec
	dbConnections   *prometheus.GaugeVec
}

// New регистрирует метрики в default registry
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		serviceName: serviceName,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests",
		}, []string{"service", "method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"service", "method", "route"}),
		botUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "bot",
			Name:      "updates_total",
			Help:      "Processed chat updates",
		}, []string{"service", "kind", "status"}),
		clinicRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "clinic_api",
			Name:      "requests_total",
			Help:      "Outbound requests to the clinic API",
		}, []string{"service", "endpoint", "status"}),
		clinicDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "clinic_api",
			Name:      "request_duration_seconds",
			Help:      "Latency of clinic API requests",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		}, []string{"service", "endpoint"}),
		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "db",
			Name:      "query_duration_seconds",
			Help:      "Database query latency",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"service", "operation", "status"}),
		dbConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "db",
			Name:      "connections",
			Help:      "Database pool connections by state",
		}, []string{"service", "state"}),
	}

	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.botUpdates,
		m.clinicRequests,
		m.clinicDuration,
		m.dbQueryDuration,
		m.dbConnections,
	)

	return m
}

func (m *Metrics) ObserveHTTPRequest(method, route string, status int, seconds float64) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(m.serviceName, method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(m.serviceName, method, route).Observe(seconds)
}

// ObserveBotUpdate kind: command, text, callback
func (m *Metrics) ObserveBotUpdate(kind, status string) {
	if m == nil {
		return
	}
	m.botUpdates.WithLabelValues(m.serviceName, kind, status).Inc()
}

func (m *Metrics) ObserveClinicRequest(endpoint string, status int, seconds float64) {
	if m == nil {
		return
	}
	m.clinicRequests.WithLabelValues(m.serviceName, endpoint, strconv.Itoa(status)).Inc()
	m.clinicDuration.WithLabelValues(m.serviceName, endpoint).Observe(seconds)
}

func (m *Metrics) ObserveDBQuery(operation, status string, seconds float64) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(m.serviceName, operation, status).Observe(seconds)
}

func (m *Metrics) SetDBConnections(open, inUse, idle int) {
	if m == nil {
		return
	}
	m.dbConnections.WithLabelValues(m.serviceName, "open").Set(float64(open))
	m.dbConnections.WithLabelValues(m.serviceName, "in_use").Set(float64(inUse))
	m.dbConnections.WithLabelValues(m.serviceName, "idle").Set(float64(idle))
}
