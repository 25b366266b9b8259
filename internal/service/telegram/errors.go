package telegram

import "errors"

var (
	// ErrSendMessage возвращается при ошибке отправки сообщения
	ErrSendMessage = errors.New("service.telegram: failed to send message")

	// ErrEditMessage возвращается при ошибке редактирования сообщения
	ErrEditMessage = errors.New("service.telegram: failed to edit message")

	// ErrAnswerCallback возвращается при ошибке ответа на callback query
	ErrAnswerCallback = errors.New("service.telegram: failed to answer callback query")

	// ErrSetCommands возвращается при ошибке регистрации команд бота
	ErrSetCommands = errors.New("service.telegram: failed to set bot commands")

	// ErrInvalidChatID возвращается при некорректном chat_id
	ErrInvalidChatID = errors.New("service.telegram: invalid chat_id")

	// ErrEmptyMessage возвращается при пустом тексте сообщения
	ErrEmptyMessage = errors.New("service.telegram: message text is empty")

	// ErrSetWebhook возвращается при ошибке установки webhook
	ErrSetWebhook = errors.New("service.telegram: failed to set webhook")

	// ErrDeleteWebhook возвращается при ошибке удаления webhook
	ErrDeleteWebhook = errors.New("service.telegram: failed to delete webhook")
)
