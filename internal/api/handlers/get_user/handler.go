package get_user

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ClinicBot/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicBot/internal/api/handlers/get_user/models"
	"github.com/m04kA/SMC-ClinicBot/internal/service/users"
)

const (
	msgInvalidID    = "неверный ID пользователя"
	msgUserNotFound = "пользователь не зарегистрирован"
)

type Handler struct {
	service UserService
	logger  Logger
}

func NewHandler(service UserService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["platform_user_id"]

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		h.logger.Warn("Invalid platform user ID: %s", idStr)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	user, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, users.ErrNotRegistered) {
			handlers.RespondNotFound(w, msgUserNotFound)
			return
		}

		h.logger.Error("Failed to get user %d: %v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, models.FromDomain(user))
}
