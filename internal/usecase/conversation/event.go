package conversation

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// EventKind тип входящего события
type EventKind string

const (
	EventCommand  EventKind = "command"
	EventText     EventKind = "text"
	EventCallback EventKind = "callback"
)

// Event входящее событие, не зависящее от формата Update
type Event struct {
	Kind   EventKind
	UserID int64
	ChatID int64

	// MessageID сообщение с нажатой кнопкой, его и редактируем
	MessageID  int
	CallbackID string

	Command string
	Text    string
	Payload string
}

// EventFromUpdate false для обновлений, которые бот не обрабатывает
func EventFromUpdate(update tgbotapi.Update) (Event, bool) {
	if cb := update.CallbackQuery; cb != nil {
		if cb.From == nil || cb.Message == nil || cb.Message.Chat == nil {
			return Event{}, false
		}
		return Event{
			Kind:       EventCallback,
			UserID:     cb.From.ID,
			ChatID:     cb.Message.Chat.ID,
			MessageID:  cb.Message.MessageID,
			CallbackID: cb.ID,
			Payload:    cb.Data,
		}, true
	}

	msg := update.Message
	if msg == nil || msg.From == nil || msg.Chat == nil {
		return Event{}, false
	}
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return Event{}, false
	}

	ev := Event{
		Kind:   EventText,
		UserID: msg.From.ID,
		ChatID: msg.Chat.ID,
		Text:   text,
	}
	if msg.IsCommand() {
		ev.Kind = EventCommand
		ev.Command = msg.Command()
	}
	return ev, true
}
