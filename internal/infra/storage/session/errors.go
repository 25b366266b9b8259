package session

import "errors"

var (
	// ErrStorage ошибка обращения к Redis
	ErrStorage = errors.New("session store: storage error")

	// ErrEncode не удалось сериализовать сессию
	ErrEncode = errors.New("session store: failed to encode session")
)
