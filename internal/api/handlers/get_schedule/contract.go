package get_schedule

import "context"

type ClinicService interface {
	Schedule(ctx context.Context, doctorCode int64, filialID *int64, date string) (interface{}, error)
}

type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
