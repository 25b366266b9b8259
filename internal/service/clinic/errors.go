package clinic

import "errors"

var (
	// ErrUnavailable МИС недоступна или не ответила вовремя
	ErrUnavailable = errors.New("service.clinic: clinic system unavailable")

	// ErrUnexpectedResponse МИС ответила не 2xx
	ErrUnexpectedResponse = errors.New("service.clinic: unexpected response from clinic system")

	// ErrAuthFailed вход в личный кабинет МИС не удался
	ErrAuthFailed = errors.New("service.clinic: clinic authorization failed")

	// ErrReservationRejected МИС отклонила запись
	ErrReservationRejected = errors.New("service.clinic: reservation rejected")

	// ErrCancelRejected МИС отклонила отмену записи
	ErrCancelRejected = errors.New("service.clinic: cancellation rejected")

	// ErrConfirmRejected МИС отклонила подтверждение записи
	ErrConfirmRejected = errors.New("service.clinic: confirmation rejected")

	// ErrInvalidBooking не хватает данных для записи
	ErrInvalidBooking = errors.New("service.clinic: invalid booking")
)

// RejectedError отказ МИС с текстом для пользователя
type RejectedError struct {
	Kind    error
	Message string
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + e.Message
}

func (e *RejectedError) Unwrap() error {
	return e.Kind
}
