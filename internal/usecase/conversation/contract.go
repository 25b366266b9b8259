package conversation

import (
	"context"

	"github.com/m04kA/SMC-ClinicBot/internal/domain"
	"github.com/m04kA/SMC-ClinicBot/internal/service/clinic"
	"github.com/m04kA/SMC-ClinicBot/internal/service/users"
)

// Messenger отправка ответов пользователю
type Messenger interface {
	SendMessage(chatID int64, msg domain.OutgoingMessage) error
	EditMessage(chatID int64, messageID int, msg domain.OutgoingMessage) error
	AnswerCallback(callbackID, text string) error
}

// SessionStore хранилище состояния диалога
type SessionStore interface {
	Get(ctx context.Context, userID int64) (*domain.Session, error)
	Save(ctx context.Context, userID int64, sess *domain.Session) error
	Reset(ctx context.Context, userID int64) error
}

// ClinicService данные и операции МИС
type ClinicService interface {
	Branches(ctx context.Context) ([]domain.Branch, error)
	Departments(ctx context.Context, branchID int64) ([]domain.Department, error)
	Doctors(ctx context.Context, branchID, departmentID int64) ([]domain.Doctor, error)
	FreeSlots(ctx context.Context, doctorCode int64, date string) ([]domain.TimeSlot, error)
	Authorize(ctx context.Context, creds domain.Credentials) (*clinic.Patient, error)
	Reserve(ctx context.Context, user *domain.RegisteredUser, b clinic.Booking) (*domain.Reservation, error)
	Records(ctx context.Context, user *domain.RegisteredUser) ([]domain.Record, error)
	CancelRecord(ctx context.Context, user *domain.RegisteredUser, schedID, filialID int64) error
}

// UserService зарегистрированные пользователи бота
type UserService interface {
	Get(ctx context.Context, platformUserID int64) (*domain.RegisteredUser, error)
	Register(ctx context.Context, platformUserID int64, draft domain.RegistrationDraft) (*domain.RegisteredUser, error)
	Link(ctx context.Context, in users.LinkInput) (*domain.RegisteredUser, error)
	ChangeCredentials(ctx context.Context, platformUserID int64, creds domain.Credentials) error
	Delete(ctx context.Context, platformUserID int64) error
}

// MetricsCollector счётчик обработанных обновлений
type MetricsCollector interface {
	ObserveBotUpdate(kind, status string)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
