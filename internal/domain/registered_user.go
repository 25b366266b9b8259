package domain

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-ClinicBot/pkg/ptr"
)

// RegisteredUser пользователь бота, зарегистрированный в МИС
type RegisteredUser struct {
	ID             int64
	PlatformUserID int64  // ID пользователя в мессенджере
	PCode          string // идентификатор пациента в МИС
	LastName       string
	FirstName      string
	MiddleName     *string
	BirthDate      string // YYYY-MM-DD
	ClinicLogin    string
	ClinicPassword string // передаётся в МИС при входе, поэтому хранится как есть
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// FullName "Фамилия Имя Отчество"
func (u *RegisteredUser) FullName() string {
	parts := []string{u.LastName, u.FirstName, ptr.PtrGet(u.MiddleName)}

	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}

// RegistrationDraft данные регистрации, собранные в диалоге
type RegistrationDraft struct {
	LastName   string `json:"last_name"`
	FirstName  string `json:"first_name"`
	MiddleName string `json:"middle_name"`
	BirthDate  string `json:"birth_date"`
	Login      string `json:"login"`
	Password   string `json:"password"`
	Phone      string `json:"phone,omitempty"`
}

// Credentials логин и пароль личного кабинета МИС
type Credentials struct {
	Login    string
	Password string
}
