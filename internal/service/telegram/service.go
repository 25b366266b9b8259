package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/m04kA/SMC-ClinicBot/internal/domain"
)

// Telegram отвечает этой ошибкой, если текст и клавиатура не изменились
const notModifiedMarker = "message is not modified"

// Command команда бота для меню Telegram
type Command struct {
	Name        string
	Description string
}

// Service сервис для отправки сообщений через Telegram Bot API
type Service struct {
	bot BotAPI
}

// NewService создает новый экземпляр Telegram сервиса
func NewService(bot BotAPI) *Service {
	return &Service{
		bot: bot,
	}
}

// SendMessage отправляет новое сообщение с inline-клавиатурой
func (s *Service) SendMessage(chatID int64, msg domain.OutgoingMessage) error {
	if err := validate(chatID, msg); err != nil {
		return err
	}

	tgMsg := tgbotapi.NewMessage(chatID, msg.Text)
	if msg.HasButtons() {
		tgMsg.ReplyMarkup = buildInlineKeyboard(msg.Keyboard)
	}

	if _, err := s.bot.Send(tgMsg); err != nil {
		return fmt.Errorf("%w: %v", ErrSendMessage, err)
	}
	return nil
}

// EditMessage заменяет текст и клавиатуру сообщения, под которым нажали кнопку
func (s *Service) EditMessage(chatID int64, messageID int, msg domain.OutgoingMessage) error {
	if err := validate(chatID, msg); err != nil {
		return err
	}

	var edit tgbotapi.Chattable
	if msg.HasButtons() {
		edit = tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, msg.Text, buildInlineKeyboard(msg.Keyboard))
	} else {
		edit = tgbotapi.NewEditMessageText(chatID, messageID, msg.Text)
	}

	if _, err := s.bot.Send(edit); err != nil {
		// повторное нажатие той же кнопки
		if strings.Contains(err.Error(), notModifiedMarker) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrEditMessage, err)
	}
	return nil
}

// AnswerCallback убирает "часики" с нажатой кнопки; text показывается всплывающим уведомлением
func (s *Service) AnswerCallback(callbackID, text string) error {
	if _, err := s.bot.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		return fmt.Errorf("%w: %v", ErrAnswerCallback, err)
	}
	return nil
}

// SetCommands регистрирует команды в меню бота
func (s *Service) SetCommands(commands []Command) error {
	botCommands := make([]tgbotapi.BotCommand, 0, len(commands))
	for _, c := range commands {
		botCommands = append(botCommands, tgbotapi.BotCommand{Command: c.Name, Description: c.Description})
	}

	if _, err := s.bot.Request(tgbotapi.NewSetMyCommands(botCommands...)); err != nil {
		return fmt.Errorf("%w: %v", ErrSetCommands, err)
	}
	return nil
}

// SetWebhook устанавливает webhook URL для получения обновлений от Telegram
func (s *Service) SetWebhook(webhookURL string) error {
	webhook, err := tgbotapi.NewWebhook(webhookURL)
	if err != nil {
		return fmt.Errorf("%w: failed to create webhook config: %v", ErrSetWebhook, err)
	}

	_, err = s.bot.Request(webhook)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSetWebhook, err)
	}

	return nil
}

// DeleteWebhook удаляет webhook (переключает на long polling)
func (s *Service) DeleteWebhook() error {
	deleteWebhook := tgbotapi.DeleteWebhookConfig{
		DropPendingUpdates: false, // Сохраняем необработанные сообщения
	}

	_, err := s.bot.Request(deleteWebhook)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeleteWebhook, err)
	}

	return nil
}

// GetUpdatesChan возвращает канал для получения обновлений в режиме long polling
func (s *Service) GetUpdatesChan(offset int) tgbotapi.UpdatesChannel {
	updateConfig := tgbotapi.NewUpdate(offset)
	updateConfig.Timeout = 60 // Long polling timeout
	updateConfig.AllowedUpdates = []string{"message", "callback_query"}

	return s.bot.GetUpdatesChan(updateConfig)
}

func validate(chatID int64, msg domain.OutgoingMessage) error {
	if chatID == 0 {
		return ErrInvalidChatID
	}
	if msg.Text == "" {
		return ErrEmptyMessage
	}
	return nil
}

// buildInlineKeyboard ряды domain.Keyboard -> inline-клавиатура с callback data
func buildInlineKeyboard(kb domain.Keyboard) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(kb))
	for _, row := range kb {
		if len(row) == 0 {
			continue
		}
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, btn := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(btn.Text, btn.Payload))
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(buttons...))
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
