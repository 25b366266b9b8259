package health

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/m04kA/SMC-ClinicBot/internal/api/handlers"
)

const checkTimeout = 2 * time.Second

// Check проверка зависимости (postgres, redis)
type Check func(ctx context.Context) error

type Response struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

type Handler struct {
	checks map[string]Check
	logger Logger
}

// NewHandler checks может быть nil: тогда сервис всегда healthy
func NewHandler(checks map[string]Check, logger Logger) *Handler {
	return &Handler{
		checks: checks,
		logger: logger,
	}
}

func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	response := Response{Status: "healthy"}
	status := http.StatusOK
	for _, name := range names {
		if response.Checks == nil {
			response.Checks = make(map[string]string, len(names))
		}
		if err := h.checks[name](ctx); err != nil {
			h.logger.Warn("Health check %s failed: %v", name, err)
			response.Checks[name] = "unavailable"
			response.Status = "unhealthy"
			status = http.StatusServiceUnavailable
			continue
		}
		response.Checks[name] = "ok"
	}

	handlers.RespondJSON(w, status, response)
}
