package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/m04kA/SMC-ClinicBot/internal/domain"
)

const birthDateLayout = "2006-01-02"

var (
	// ErrNotEnoughLines в сообщении меньше строк, чем нужно
	ErrNotEnoughLines = errors.New("validate: not enough lines")

	// ErrInvalidBirthDate дата рождения не в формате YYYY-MM-DD
	ErrInvalidBirthDate = errors.New("validate: invalid birth date")

	// ErrInvalidPhone телефон не в формате +7(XXX)XXX-XX-XX
	ErrInvalidPhone = errors.New("validate: invalid phone")
)

var phoneRe = regexp.MustCompile(`^\+7\(\d{3}\)\d{3}-\d{2}-\d{2}$`)

// Phone проверяет формат +7(999)123-45-67
func Phone(phone string) error {
	if !phoneRe.MatchString(strings.TrimSpace(phone)) {
		return ErrInvalidPhone
	}
	return nil
}

// lines непустые строки сообщения без пробелов по краям
func lines(text string) []string {
	var out []string
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// ParseRegistration разбирает 6 строк: фамилия, имя, отчество, дата рождения, логин, пароль.
// Лишние строки игнорируются.
func ParseRegistration(text string) (domain.RegistrationDraft, error) {
	l := lines(text)
	if len(l) < 6 {
		return domain.RegistrationDraft{}, fmt.Errorf("%w: want 6, got %d", ErrNotEnoughLines, len(l))
	}
	if _, err := time.Parse(birthDateLayout, l[3]); err != nil {
		return domain.RegistrationDraft{}, fmt.Errorf("%w: %q", ErrInvalidBirthDate, l[3])
	}

	return domain.RegistrationDraft{
		LastName:   l[0],
		FirstName:  l[1],
		MiddleName: l[2],
		BirthDate:  l[3],
		Login:      l[4],
		Password:   l[5],
	}, nil
}

// ParseCredentials разбирает 2 строки: логин и пароль
func ParseCredentials(text string) (domain.Credentials, error) {
	l := lines(text)
	if len(l) < 2 {
		return domain.Credentials{}, fmt.Errorf("%w: want 2, got %d", ErrNotEnoughLines, len(l))
	}
	return domain.Credentials{Login: l[0], Password: l[1]}, nil
}
