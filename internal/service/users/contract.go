package users

import (
	"context"

	"github.com/m04kA/SMC-ClinicBot/internal/domain"
	"github.com/m04kA/SMC-ClinicBot/internal/integrations/patientsapi"
)

// UserRepository хранилище зарегистрированных пользователей
type UserRepository interface {
	Create(ctx context.Context, user *domain.RegisteredUser) error
	GetByPlatformID(ctx context.Context, platformUserID int64) (*domain.RegisteredUser, error)
	GetByCredentials(ctx context.Context, login, password string) (*domain.RegisteredUser, error)
	UpdateCredentials(ctx context.Context, platformUserID int64, creds domain.Credentials) error
	DeleteByPlatformID(ctx context.Context, platformUserID int64) error
}

// PatientsAPI API регистрации пациентов в МИС
type PatientsAPI interface {
	CreatePatient(ctx context.Context, req patientsapi.CreatePatientRequest) (string, error)
	UpdateCredentials(ctx context.Context, pcode string, req patientsapi.UpdateCredentialsRequest) error
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}
