package users

import "errors"

var (
	// ErrNotRegistered пользователь не зарегистрирован в боте
	ErrNotRegistered = errors.New("service.users: user is not registered")

	// ErrAlreadyRegistered пользователь уже зарегистрирован
	ErrAlreadyRegistered = errors.New("service.users: user is already registered")

	// ErrPatientsAPI МИС не приняла данные пациента
	ErrPatientsAPI = errors.New("service.users: patients api request failed")

	// ErrInvalidInput пустые обязательные поля
	ErrInvalidInput = errors.New("service.users: invalid input data")

	// ErrInternal ошибка хранилища
	ErrInternal = errors.New("service.users: internal error")
)
