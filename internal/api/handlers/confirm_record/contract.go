package confirm_record

import (
	"context"

	"github.com/m04kA/SMC-ClinicBot/internal/domain"
)

type UserService interface {
	Get(ctx context.Context, platformUserID int64) (*domain.RegisteredUser, error)
}

type ClinicService interface {
	ConfirmRecord(ctx context.Context, user *domain.RegisteredUser, schedID, filialID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
