package list_branches

import (
	"context"
	"encoding/json"
	"errors"
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
	branches []domain.Branch
	err      error
}

func (f *fakeClinic) Branches(context.Context) ([]domain.Branch, error) {
	return f.branches, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc ClinicService) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/clinic/branches", nil))
	return rec
}

func TestHandle(t *testing.T) {
	rec := serve(&fakeClinic{branches: []domain.Branch{{ID: 1, Name: "Центральный"}, {ID: 2, Name: "Северный"}}})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, "Северный", resp.Branches[1].Name)
}

func TestHandle_Empty(t *testing.T) {
	rec := serve(&fakeClinic{})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"branches": [], "total": 0}`, rec.Body.String())
}

func TestHandle_Errors(t *testing.T) {
	rec := serve(&fakeClinic{err: fmt.Errorf("%w: filial: timeout", clinic.ErrUnavailable)})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = serve(&fakeClinic{err: errors.New("cache broken")})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
