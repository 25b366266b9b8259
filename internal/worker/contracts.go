package worker

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/m04kA/SMC-ClinicBot/internal/domain"
)

// ConversationUseCase обработка обновлений бота
type ConversationUseCase interface {
	HandleUpdate(ctx context.Context, update tgbotapi.Update) error
}

// DirectoryService обновление кэша справочников МИС
type DirectoryService interface {
	RefreshBranches(ctx context.Context) ([]domain.Branch, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
