package get_schedule

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicBot/internal/service/clinic"
)

type fakeClinic struct {
	schedule interface{}
	err      error
	doctor   int64
	filial   *int64
	date     string
}

func (f *fakeClinic) Schedule(_ context.Context, doctorCode int64, filialID *int64, date string) (interface{}, error) {
	f.doctor, f.filial, f.date = doctorCode, filialID, date
	return f.schedule, f.err
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
	svc := &fakeClinic{schedule: map[string]interface{}{"data": []interface{}{}}}

	rec := serve(svc, "/api/v1/clinic/schedule?doctor=100&filial=4&date=20260125")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(100), svc.doctor)
	require.NotNil(t, svc.filial)
	assert.Equal(t, int64(4), *svc.filial)
	assert.Equal(t, "20260125", svc.date)
	assert.JSONEq(t, `{"doctor": 100, "filial": 4, "date": "20260125", "schedule": {"data": []}}`, rec.Body.String())
}

func TestHandle_WithoutFilial(t *testing.T) {
	svc := &fakeClinic{schedule: map[string]interface{}{}}

	rec := serve(svc, "/api/v1/clinic/schedule?doctor=100&date=20260125")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, svc.filial)
	assert.JSONEq(t, `{"doctor": 100, "date": "20260125", "schedule": {}}`, rec.Body.String())
}

func TestHandle_InvalidQuery(t *testing.T) {
	for _, target := range []string{
		"/api/v1/clinic/schedule?date=20260125",
		"/api/v1/clinic/schedule?doctor=100",
		"/api/v1/clinic/schedule?doctor=100&date=2026-01-25",
		"/api/v1/clinic/schedule?doctor=100&date=20260125&filial=abc",
		"/api/v1/clinic/schedule?doctor=100&date=20260125&filial=0",
	} {
		rec := serve(&fakeClinic{}, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestHandle_ClinicErrors(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: fmt.Errorf("%w: Schedule: timeout", clinic.ErrUnavailable), want: http.StatusServiceUnavailable},
		{err: fmt.Errorf("%w: Schedule - status 502", clinic.ErrUnexpectedResponse), want: http.StatusServiceUnavailable},
		{err: fmt.Errorf("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		rec := serve(&fakeClinic{err: tt.err}, "/api/v1/clinic/schedule?doctor=100&date=20260125")
		assert.Equal(t, tt.want, rec.Code, tt.err.Error())
	}
}
