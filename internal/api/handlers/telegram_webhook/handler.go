package telegram_webhook

import (
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/m04kA/SMC-ClinicBot/internal/api/handlers"
)

const msgInvalidRequestBody = "неверный формат тела запроса"

type Handler struct {
	conversation ConversationUseCase
	logger       Logger
}

func NewHandler(conversation ConversationUseCase, logger Logger) *Handler {
	return &Handler{
		conversation: conversation,
		logger:       logger,
	}
}

func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Парсим webhook update от Telegram
	var update tgbotapi.Update
	if err := handlers.DecodeJSON(r, &update); err != nil {
		h.logger.Warn("Failed to decode telegram webhook: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Ошибка уже показана пользователю в чате. Telegram повторяет доставку при ответе не 2xx,
	// повтор того же обновления только задублирует сообщение.
	if err := h.conversation.HandleUpdate(r.Context(), update); err != nil {
		h.logger.Error("Failed to handle update %d: %v", update.UpdateID, err)
	}

	w.WriteHeader(http.StatusOK)
}
