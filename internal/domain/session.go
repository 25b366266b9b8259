package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidSession сохранённое состояние не соответствует шагу
var ErrInvalidSession = errors.New("domain: invalid session state")

// Session состояние диалога одного пользователя.
// Списки кэшируются, чтобы пагинация и кнопки "Назад" не ходили в МИС повторно.
type Session struct {
	Step Step `json:"step"`

	Branches       []Branch     `json:"branches,omitempty"`
	BranchPage     int          `json:"branch_page"`
	Departments    []Department `json:"departments,omitempty"`
	DepartmentPage int          `json:"department_page"`
	Doctors        []Doctor     `json:"doctors,omitempty"`
	DoctorPage     int          `json:"doctor_page"`
	Slots          []TimeSlot   `json:"slots,omitempty"`

	Branch     *Branch     `json:"branch,omitempty"`
	Department *Department `json:"department,omitempty"`
	Doctor     *Doctor     `json:"doctor,omitempty"`
	Date       string      `json:"date,omitempty"` // YYYYMMDD
	Slot       *TimeSlot   `json:"slot,omitempty"`

	Registration *RegistrationDraft `json:"registration,omitempty"`

	// PendingBooking после регистрации или входа вернуться к подтверждению записи
	PendingBooking bool `json:"pending_booking,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

func NewSession() *Session {
	return &Session{Step: StepIdle}
}

// Advance переводит сессию на шаг to по таблице переходов
func (s *Session) Advance(to Step) error {
	if !s.Step.CanTransition(to) {
		return fmt.Errorf("%w: %s -> %s", ErrForbiddenTransition, s.Step, to)
	}
	s.Step = to
	return nil
}

// Reset сбрасывает всё состояние диалога
func (s *Session) Reset() {
	*s = Session{Step: StepIdle}
}

// ResetBooking забывает выбор филиала, отделения, врача и слота вместе с закэшированными списками.
// Шаг и черновик регистрации не трогает.
func (s *Session) ResetBooking() {
	s.Branches, s.BranchPage = nil, 0
	s.Departments, s.DepartmentPage = nil, 0
	s.Doctors, s.DoctorPage = nil, 0
	s.Slots = nil
	s.Branch, s.Department, s.Doctor, s.Slot = nil, nil, nil, nil
	s.Date = ""
	s.PendingBooking = false
}

// Validate проверяет, что для текущего шага есть все выбранные ранее данные
func (s *Session) Validate() error {
	if !s.Step.Valid() {
		return fmt.Errorf("%w: %v", ErrUnknownStep, s.Step)
	}

	missing := func(what string) error {
		return fmt.Errorf("%w: step %s requires %s", ErrInvalidSession, s.Step, what)
	}

	switch s.Step {
	case StepBranch:
		if len(s.Branches) == 0 {
			return missing("branches")
		}
	case StepDepartment, StepDoctor, StepDate, StepTime, StepConfirm:
		if s.Branch == nil {
			return missing("branch")
		}
	case StepAwaitPhone:
		if s.Registration == nil {
			return missing("registration")
		}
	}

	if s.Step >= StepDoctor && s.Step <= StepConfirm {
		if s.Department == nil {
			return missing("department")
		}
	}
	if s.Step >= StepDate && s.Step <= StepConfirm && s.Doctor == nil {
		return missing("doctor")
	}
	if s.Step >= StepTime && s.Step <= StepConfirm && s.Date == "" {
		return missing("date")
	}
	if s.Step == StepConfirm && s.Slot == nil {
		return missing("slot")
	}
	if s.PendingBooking && s.Slot == nil {
		return missing("slot for pending booking")
	}

	return nil
}

// HasBookingDraft выбран слот, запись можно подтверждать
func (s *Session) HasBookingDraft() bool {
	return s.Branch != nil && s.Department != nil && s.Doctor != nil && s.Slot != nil
}
