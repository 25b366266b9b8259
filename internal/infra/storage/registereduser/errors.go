package registereduser

import "errors"

var (
	// ErrUserNotFound пользователь не зарегистрирован
	ErrUserNotFound = errors.New("repository: registered user not found")

	// ErrUserAlreadyExists пользователь с таким platform_user_id уже есть
	ErrUserAlreadyExists = errors.New("repository: registered user already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("repository: failed to build SQL query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("repository: failed to execute SQL query")

	// ErrScanRow возвращается при ошибке сканирования строки результата
	ErrScanRow = errors.New("repository: failed to scan row")
)
