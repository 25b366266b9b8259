package patientsapi

import "errors"

var (
	// ErrInternal ошибка подготовки запроса
	ErrInternal = errors.New("patients api: internal error")

	// ErrUnavailable сервис недоступен (сеть, таймаут)
	ErrUnavailable = errors.New("patients api: service unavailable")

	// ErrTokenRequest не удалось получить access_token
	ErrTokenRequest = errors.New("patients api: failed to obtain token")

	// ErrRejected сервис ответил ошибкой (4xx/5xx)
	ErrRejected = errors.New("patients api: request rejected")

	// ErrInvalidResponse ответ не содержит ожидаемых данных
	ErrInvalidResponse = errors.New("patients api: invalid response")
)
