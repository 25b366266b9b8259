package users

import "github.com/m04kA/SMC-ClinicBot/internal/domain"

// LinkInput вход в существующий личный кабинет МИС
type LinkInput struct {
	PlatformUserID int64
	PCode          string
	FullName       string // "Фамилия Имя Отчество" из /logged-in
	Credentials    domain.Credentials
}
