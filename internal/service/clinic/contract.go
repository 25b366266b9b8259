package clinic

import (
	"context"

	"github.com/m04kA/SMC-ClinicBot/internal/domain"
	"github.com/m04kA/SMC-ClinicBot/internal/integrations/infoclinica"
)

// ClinicAPI клиент МИС Инфоклиника
type ClinicAPI interface {
	Filials(ctx context.Context) (*infoclinica.Result, error)
	Departments(ctx context.Context, filialID *int64) (*infoclinica.Result, error)
	Doctors(ctx context.Context, filialID, departmentID *int64) (*infoclinica.Result, error)
	Schedule(ctx context.Context, q infoclinica.ScheduleQuery) (*infoclinica.Result, error)
	Intervals(ctx context.Context, sess *infoclinica.AuthSession, q infoclinica.IntervalsQuery) (*infoclinica.Result, error)
	Login(ctx context.Context, username, password string) (*infoclinica.AuthSession, error)
	Reserve(ctx context.Context, sess *infoclinica.AuthSession, payload infoclinica.ReservePayload) (*infoclinica.Result, error)
	Records(ctx context.Context, sess *infoclinica.AuthSession, q infoclinica.RecordsQuery) (*infoclinica.Result, error)
	ConfirmRecord(ctx context.Context, sess *infoclinica.AuthSession, schedID, filialID int64) (*infoclinica.Result, error)
	CancelRecord(ctx context.Context, sess *infoclinica.AuthSession, schedID, filialID int64) (*infoclinica.Result, error)
}

// DirectoryCache кэш справочника филиалов
type DirectoryCache interface {
	GetBranches(ctx context.Context) ([]domain.Branch, bool, error)
	SetBranches(ctx context.Context, branches []domain.Branch) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
