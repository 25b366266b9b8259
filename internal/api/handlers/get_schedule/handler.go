package get_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-ClinicBot/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicBot/internal/api/handlers/get_schedule/models"
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
		h.logger.Warn("Invalid schedule query: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	schedule, err := h.service.Schedule(r.Context(), query.DoctorCode, query.FilialID, query.Date)
	if err != nil {
		h.logger.Error("Failed to get schedule of doctor %d on %s: %v", query.DoctorCode, query.Date, err)
		if errors.Is(err, clinic.ErrUnavailable) || errors.Is(err, clinic.ErrUnexpectedResponse) {
			handlers.RespondServiceUnavailable(w, msgClinicUnavailable)
			return
		}
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, models.ScheduleResponse{
		DoctorCode: query.DoctorCode,
		FilialID:   query.FilialID,
		Date:       query.Date,
		Schedule:   schedule,
	})
}

// parseQuery ?doctor=<dcode>&date=<YYYYMMDD>[&filial=<id>]
func parseQuery(r *http.Request) (models.ScheduleQuery, error) {
	params := r.URL.Query()

	doctor, err := strconv.ParseInt(params.Get("doctor"), 10, 64)
	if err != nil || doctor <= 0 {
		return models.ScheduleQuery{}, errors.New("параметр doctor должен быть положительным числом")
	}

	date := params.Get("date")
	if _, err := domain.ParseDate(date); err != nil {
		return models.ScheduleQuery{}, errors.New("параметр date должен быть в формате YYYYMMDD")
	}

	q := models.ScheduleQuery{DoctorCode: doctor, Date: date}
	if raw := params.Get("filial"); raw != "" {
		filial, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || filial <= 0 {
			return models.ScheduleQuery{}, errors.New("параметр filial должен быть положительным числом")
		}
		q.FilialID = &filial
	}
	return q, nil
}
