package infoclinica

import "errors"

var (
	// ErrInternal ошибка подготовки запроса
	ErrInternal = errors.New("infoclinica client: internal error")

	// ErrTimeout МИС не ответила за отведённое время
	ErrTimeout = errors.New("infoclinica client: request timeout")

	// ErrUnavailable ошибка соединения с МИС
	ErrUnavailable = errors.New("infoclinica client: service unavailable")

	// ErrSessionBootstrap МИС не выдала cookie PLAY_SESSION
	ErrSessionBootstrap = errors.New("infoclinica client: failed to obtain initial session")

	// ErrAuthFailed неверный логин/пароль или МИС отказала во входе
	ErrAuthFailed = errors.New("infoclinica client: authorization failed")

	// ErrNotAuthorized метод требует авторизованную сессию
	ErrNotAuthorized = errors.New("infoclinica client: authorized session required")
)
