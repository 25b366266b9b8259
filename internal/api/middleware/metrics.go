package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// MetricsCollector учёт HTTP-запросов
type MetricsCollector interface {
	ObserveHTTPRequest(method, route string, status int, seconds float64)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// MetricsMiddleware считает запросы по шаблону маршрута mux ("/api/v1/users/{platform_user_id}"),
// чтобы ID из пути не раздували кардинальность
func MetricsMiddleware(metrics MetricsCollector) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			metrics.ObserveHTTPRequest(r.Method, routeOf(r), rec.status, time.Since(start).Seconds())
		})
	}
}

func routeOf(r *http.Request) string {
	route := mux.CurrentRoute(r)
	if route == nil {
		return "unknown"
	}
	tpl, err := route.GetPathTemplate()
	if err != nil {
		return "unknown"
	}
	return tpl
}
