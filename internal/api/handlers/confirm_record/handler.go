package confirm_record

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ClinicBot/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicBot/internal/api/handlers/confirm_record/models"
	"github.com/m04kA/SMC-ClinicBot/internal/service/clinic"
	"github.com/m04kA/SMC-ClinicBot/internal/service/users"
)

const (
	msgInvalidID         = "неверный ID пользователя"
	msgInvalidRecord     = "неверный идентификатор записи или филиала"
	msgUserNotFound      = "пользователь не зарегистрирован"
	msgCredentialsDenied = "МИС не приняла сохранённые логин и пароль"
	msgConfirmRejected   = "МИС отклонила подтверждение записи"
	msgClinicUnavailable = "МИС недоступна"
)

// Handler POST /api/v1/users/{platform_user_id}/records/{schedid}/confirm?filial=<id>
type Handler struct {
	users  UserService
	clinic ClinicService
	logger Logger
}

func NewHandler(userService UserService, clinicService ClinicService, logger Logger) *Handler {
	return &Handler{
		users:  userService,
		clinic: clinicService,
		logger: logger,
	}
}

func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	userID, err := strconv.ParseInt(vars["platform_user_id"], 10, 64)
	if err != nil || userID <= 0 {
		h.logger.Warn("Invalid platform user ID: %s", vars["platform_user_id"])
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	schedID, errSched := strconv.ParseInt(vars["schedid"], 10, 64)
	filialID, errFilial := strconv.ParseInt(r.URL.Query().Get("filial"), 10, 64)
	if errSched != nil || errFilial != nil || schedID <= 0 || filialID <= 0 {
		h.logger.Warn("Invalid record to confirm: schedid=%s filial=%s", vars["schedid"], r.URL.Query().Get("filial"))
		handlers.RespondBadRequest(w, msgInvalidRecord)
		return
	}

	user, err := h.users.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, users.ErrNotRegistered) {
			handlers.RespondNotFound(w, msgUserNotFound)
			return
		}
		h.logger.Error("Failed to get user %d: %v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	err = h.clinic.ConfirmRecord(r.Context(), user, schedID, filialID)
	var rejected *clinic.RejectedError
	switch {
	case err == nil:
	case errors.As(err, &rejected):
		h.logger.Warn("Confirmation of record %d for user %d rejected: %v", schedID, userID, err)
		message := msgConfirmRejected
		if rejected.Message != "" {
			message = rejected.Message
		}
		handlers.RespondError(w, http.StatusConflict, message)
		return
	case errors.Is(err, clinic.ErrAuthFailed):
		h.logger.Warn("Stored credentials of user %d rejected: %v", userID, err)
		handlers.RespondError(w, http.StatusForbidden, msgCredentialsDenied)
		return
	case errors.Is(err, clinic.ErrUnavailable), errors.Is(err, clinic.ErrUnexpectedResponse):
		h.logger.Error("Failed to confirm record %d for user %d: %v", schedID, userID, err)
		handlers.RespondServiceUnavailable(w, msgClinicUnavailable)
		return
	default:
		h.logger.Error("Failed to confirm record %d for user %d: %v", schedID, userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("Record %d confirmed for user %d", schedID, userID)
	handlers.RespondJSON(w, http.StatusOK, models.ConfirmResponse{
		ScheduleID: schedID,
		FilialID:   filialID,
		Confirmed:  true,
	})
}
