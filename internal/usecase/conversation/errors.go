package conversation

import "errors"

var (
	// ErrLoadSession не удалось прочитать состояние диалога
	ErrLoadSession = errors.New("usecase.conversation: load session")

	// ErrSaveSession не удалось сохранить состояние диалога
	ErrSaveSession = errors.New("usecase.conversation: save session")

	// ErrReply ответ не доставлен
	ErrReply = errors.New("usecase.conversation: deliver reply")
)
