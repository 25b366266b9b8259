package models

import (
	"time"

	"github.com/m04kA/SMC-ClinicBot/internal/domain"
)

// UserResponse зарегистрированный пользователь без пароля МИС
type UserResponse struct {
	ID             int64     `json:"id"`
	PlatformUserID int64     `json:"platform_user_id"`
	PCode          string    `json:"pcode"`
	LastName       string    `json:"lastname"`
	FirstName      string    `json:"firstname"`
	MiddleName     *string   `json:"midname,omitempty"`
	BirthDate      string    `json:"bdate,omitempty"`
	ClinicLogin    string    `json:"cllogin"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func FromDomain(u *domain.RegisteredUser) UserResponse {
	return UserResponse{
		ID:             u.ID,
		PlatformUserID: u.PlatformUserID,
		PCode:          u.PCode,
		LastName:       u.LastName,
		FirstName:      u.FirstName,
		MiddleName:     u.MiddleName,
		BirthDate:      u.BirthDate,
		ClinicLogin:    u.ClinicLogin,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}
