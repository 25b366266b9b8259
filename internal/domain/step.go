package domain

import (
	"errors"
	"fmt"
)

// Step шаг диалога с пользователем
type Step int

const (
	StepIdle Step = iota
	StepBranch
	StepDepartment
	StepDoctor
	StepDate
	StepTime
	StepConfirm
	StepAwaitRegistration
	StepAwaitPhone
	StepAwaitLogin
	StepAwaitNewCredentials
	StepDeleteConfirm
)

var (
	ErrUnknownStep         = errors.New("domain: unknown step")
	ErrForbiddenTransition = errors.New("domain: forbidden step transition")
)

var stepNames = map[Step]string{
	StepIdle:                "idle",
	StepBranch:              "branch",
	StepDepartment:          "department",
	StepDoctor:              "doctor",
	StepDate:                "date",
	StepTime:                "time",
	StepConfirm:             "confirm",
	StepAwaitRegistration:   "await_registration",
	StepAwaitPhone:          "await_phone",
	StepAwaitLogin:          "await_login",
	StepAwaitNewCredentials: "await_new_credentials",
	StepDeleteConfirm:       "delete_confirm",
}

// transitions допустимые переходы. Переход в StepIdle разрешён всегда,
// повторный переход в тот же шаг (пагинация, повторный ввод) тоже.
var transitions = map[Step][]Step{
	StepIdle:                {StepBranch, StepAwaitRegistration, StepAwaitLogin, StepAwaitNewCredentials, StepDeleteConfirm},
	StepBranch:              {StepDepartment},
	StepDepartment:          {StepBranch, StepDoctor},
	StepDoctor:              {StepDepartment, StepDate},
	StepDate:                {StepDoctor, StepTime},
	StepTime:                {StepDate, StepConfirm},
	StepConfirm:             {StepTime, StepAwaitRegistration, StepAwaitLogin},
	StepAwaitRegistration:   {StepAwaitPhone, StepAwaitLogin},
	StepAwaitPhone:          {StepConfirm},
	StepAwaitLogin:          {StepConfirm, StepAwaitRegistration},
	StepAwaitNewCredentials: {},
	StepDeleteConfirm:       {},
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("step(%d)", int(s))
}

func (s Step) Valid() bool {
	_, ok := stepNames[s]
	return ok
}

// CanTransition проверяет переход по таблице transitions
func (s Step) CanTransition(to Step) bool {
	if !s.Valid() || !to.Valid() {
		return false
	}
	if to == StepIdle || to == s {
		return true
	}
	for _, allowed := range transitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsTextInput шаг ожидает свободный текст, а не нажатие кнопки
func (s Step) IsTextInput() bool {
	switch s {
	case StepAwaitRegistration, StepAwaitPhone, StepAwaitLogin, StepAwaitNewCredentials:
		return true
	default:
		return false
	}
}

func (s Step) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStep, int(s))
	}
	return []byte(s.String()), nil
}

func (s *Step) UnmarshalText(text []byte) error {
	for step, name := range stepNames {
		if name == string(text) {
			*s = step
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownStep, string(text))
}
