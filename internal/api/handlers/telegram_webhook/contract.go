package telegram_webhook

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// ConversationUseCase обработка обновлений бота
type ConversationUseCase interface {
	HandleUpdate(ctx context.Context, update tgbotapi.Update) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
