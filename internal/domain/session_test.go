package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bookingSession(step Step) *Session {
	return &Session{
		Step:       step,
		Branches:   []Branch{{ID: 4, Name: "Медскан на Ленинском"}},
		Branch:     &Branch{ID: 4, Name: "Медскан на Ленинском"},
		Department: &Department{ID: 990034235, Name: "Терапия"},
		Doctor:     &Doctor{Code: 990102079, Name: "Иванов И.И."},
		Date:       "20260124",
		Slot:       &TimeSlot{Time: "11:00-11:30", Start: "11:00", ScheduleID: 40075624, WorkDate: "20260124"},
	}
}

func TestSession_Advance(t *testing.T) {
	s := NewSession()

	require.NoError(t, s.Advance(StepBranch))
	require.NoError(t, s.Advance(StepDepartment))

	err := s.Advance(StepConfirm)
	assert.ErrorIs(t, err, ErrForbiddenTransition)
	assert.Equal(t, StepDepartment, s.Step)

	require.NoError(t, s.Advance(StepIdle))
}

func TestSession_Validate(t *testing.T) {
	assert.NoError(t, bookingSession(StepConfirm).Validate())
	assert.NoError(t, NewSession().Validate())

	s := bookingSession(StepConfirm)
	s.Slot = nil
	assert.ErrorIs(t, s.Validate(), ErrInvalidSession)

	s = bookingSession(StepDate)
	s.Doctor = nil
	assert.ErrorIs(t, s.Validate(), ErrInvalidSession)

	s = bookingSession(StepBranch)
	s.Branches = nil
	assert.ErrorIs(t, s.Validate(), ErrInvalidSession)

	s = &Session{Step: StepAwaitPhone}
	assert.ErrorIs(t, s.Validate(), ErrInvalidSession)

	s = &Session{Step: StepAwaitRegistration, PendingBooking: true}
	assert.ErrorIs(t, s.Validate(), ErrInvalidSession)

	s = &Session{Step: Step(42)}
	assert.ErrorIs(t, s.Validate(), ErrUnknownStep)
}

func TestSession_Reset(t *testing.T) {
	s := bookingSession(StepConfirm)
	s.PendingBooking = true

	s.Reset()

	assert.Equal(t, StepIdle, s.Step)
	assert.Nil(t, s.Branch)
	assert.False(t, s.HasBookingDraft())
	assert.False(t, s.PendingBooking)
}

func TestSession_ResetBooking(t *testing.T) {
	s := bookingSession(StepConfirm)
	s.PendingBooking = true
	s.Registration = &RegistrationDraft{LastName: "Иванов"}

	s.ResetBooking()

	assert.False(t, s.HasBookingDraft())
	assert.Empty(t, s.Branches)
	assert.Empty(t, s.Date)
	assert.False(t, s.PendingBooking)
	assert.Equal(t, StepConfirm, s.Step)
	assert.NotNil(t, s.Registration)
}

func TestTimeSlot_End(t *testing.T) {
	slot := TimeSlot{Start: "23:45"}

	end, err := slot.End(30 * time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "00:15", end.String())
}

func TestRegisteredUser_FullName(t *testing.T) {
	mid := "Иванович"
	u := RegisteredUser{LastName: "Иванов", FirstName: "Иван", MiddleName: &mid}
	assert.Equal(t, "Иванов Иван Иванович", u.FullName())

	u.MiddleName = nil
	assert.Equal(t, "Иванов Иван", u.FullName())

	blank := "  "
	u.MiddleName = &blank
	assert.Equal(t, "Иванов Иван", u.FullName())
}

func TestHumanDate(t *testing.T) {
	assert.Equal(t, "24.01.2026", HumanDate("20260124"))
	assert.Equal(t, "garbage", HumanDate("garbage"))
}
