package list_branches

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ClinicBot/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicBot/internal/domain"
	"github.com/m04kA/SMC-ClinicBot/internal/service/clinic"
)

const msgClinicUnavailable = "МИС недоступна"

type Response struct {
	Branches []domain.Branch `json:"branches"`
	Total    int             `json:"total"`
}

type Handler struct {
	service ClinicService
	logger  Logger
}

func NewHandler(service ClinicService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle филиалы из кэша справочников (при промахе из МИС)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	branches, err := h.service.Branches(r.Context())
	if err != nil {
		h.logger.Error("Failed to list branches: %v", err)
		if errors.Is(err, clinic.ErrUnavailable) || errors.Is(err, clinic.ErrUnexpectedResponse) {
			handlers.RespondServiceUnavailable(w, msgClinicUnavailable)
			return
		}
		handlers.RespondInternalError(w)
		return
	}

	if branches == nil {
		branches = []domain.Branch{}
	}
	handlers.RespondJSON(w, http.StatusOK, Response{Branches: branches, Total: len(branches)})
}
