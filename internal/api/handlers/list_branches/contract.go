package list_branches

import (
	"context"

	"github.com/m04kA/SMC-ClinicBot/internal/domain"
)

type ClinicService interface {
	Branches(ctx context.Context) ([]domain.Branch, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
