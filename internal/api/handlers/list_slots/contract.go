package list_slots

import (
	"context"

	"github.com/m04kA/SMC-ClinicBot/internal/domain"
)

type ClinicService interface {
	FreeSlots(ctx context.Context, doctorCode int64, date string) ([]domain.TimeSlot, error)
}

type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
