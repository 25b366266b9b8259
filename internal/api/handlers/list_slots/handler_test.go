package list_slots

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicBot/internal/domain"
	"github.com/m04kA/SMC-ClinicBot/internal/service/clinic"
)

type fakeClinic struct {
	slots  []domain.TimeSlot
	err    error
	doctor int64
	date   string
}

func (f *fakeClinic) FreeSlots(_ context.Context, doctorCode int64, date string) ([]domain.TimeSlot, error) {
	f.doctor, f.date = doctorCode, date
	return f.slots, f.err
}

type nopLogger struct{}

func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc ClinicService, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle(t *testing.T) {
	svc := &fakeClinic{slots: []domain.TimeSlot{
		{Time: "09:00-09:30", Start: "09:00", ScheduleID: 55, WorkDate: "20260125", DoctorCode: 100},
	}}

	rec := serve(svc, "/api/v1/clinic/slots?doctor=100&date=20260125")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(100), svc.doctor)
	assert.Equal(t, "20260125", svc.date)
	assert.JSONEq(t, `{
		"doctor": 100,
		"date": "20260125",
		"slots": [{"time": "09:00-09:30", "start": "09:00", "schedident": 55}]
	}`, rec.Body.String())
}

func TestHandle_InvalidQuery(t *testing.T) {
	for _, target := range []string{
		"/api/v1/clinic/slots?date=20260125",
		"/api/v1/clinic/slots?doctor=-1&date=20260125",
		"/api/v1/clinic/slots?doctor=100",
		"/api/v1/clinic/slots?doctor=100&date=2026-01-25",
	} {
		svc := &fakeClinic{}
		rec := serve(svc, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.Zero(t, svc.doctor, target)
	}
}

func TestHandle_ClinicUnavailable(t *testing.T) {
	rec := serve(&fakeClinic{err: fmt.Errorf("%w: intervals: timeout", clinic.ErrUnavailable)},
		"/api/v1/clinic/slots?doctor=100&date=20260125")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
