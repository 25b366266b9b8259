package get_user

import (
	"context"

	"github.com/m04kA/SMC-ClinicBot/internal/domain"
)

type UserService interface {
	Get(ctx context.Context, platformUserID int64) (*domain.RegisteredUser, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
