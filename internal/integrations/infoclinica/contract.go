package infoclinica

// MetricsCollector метрики исходящих запросов (pkg/metrics)
type MetricsCollector interface {
	ObserveClinicRequest(endpoint string, status int, seconds float64)
}
