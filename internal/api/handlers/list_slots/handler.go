package list_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-ClinicBot/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicBot/internal/api/handlers/list_slots/models"
	"github.com/m04kA/SMC-ClinicBot/internal/domain"
	"github.com/m04kA/SMC-ClinicBot/internal/service/clinic"
)

const msgClinicUnavailable = "МИС недоступна"

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

func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query, err := parseQuery(r)
	if err != nil {
		h.logger.Warn("Invalid slots query: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	slots, err := h.service.FreeSlots(r.Context(), query.DoctorCode, query.Date)
	if err != nil {
		h.logger.Error("Failed to get free slots of doctor %d on %s: %v", query.DoctorCode, query.Date, err)
		if errors.Is(err, clinic.ErrUnavailable) || errors.Is(err, clinic.ErrUnexpectedResponse) {
			handlers.RespondServiceUnavailable(w, msgClinicUnavailable)
			return
		}
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, models.FromDomain(query, slots))
}

// parseQuery ?doctor=<dcode>&date=<YYYYMMDD>
func parseQuery(r *http.Request) (models.SlotsQuery, error) {
	params := r.URL.Query()

	doctor, err := strconv.ParseInt(params.Get("doctor"), 10, 64)
	if err != nil || doctor <= 0 {
		return models.SlotsQuery{}, errors.New("параметр doctor должен быть положительным числом")
	}

	date := params.Get("date")
	if _, err := domain.ParseDate(date); err != nil {
		return models.SlotsQuery{}, errors.New("параметр date должен быть в формате YYYYMMDD")
	}

	return models.SlotsQuery{DoctorCode: doctor, Date: date}, nil
}
