package registereduser

import (
	"github.com/m04kA/SMC-ClinicBot/pkg/dbmetrics"
)

type DBExecutor = dbmetrics.DBExecutor
