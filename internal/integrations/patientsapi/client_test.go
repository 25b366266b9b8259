package patientsapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePatientsAPI struct {
	tokenCalls  atomic.Int32
	rejectFirst atomic.Bool
	created     CreatePatientRequest
	updated     UpdateCredentialsRequest
	createBody  string
}

func (f *fakePatientsAPI) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/token":
			assert.NoError(t, r.ParseForm())
			assert.Equal(t, "bot", r.PostForm.Get("username"))
			assert.Equal(t, "bot-pass", r.PostForm.Get("password"))
			n := f.tokenCalls.Add(1)
			_, _ = w.Write([]byte(`{"access_token":"token-` + string(rune('0'+n)) + `","token_type":"bearer"}`))
		case "/createPatients/":
			if f.rejectFirst.CompareAndSwap(true, false) {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			assert.Contains(t, r.Header.Get("Authorization"), "Bearer token-")
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&f.created))
			_, _ = w.Write([]byte(f.createBody))
		case "/updatePatients/777/credentials":
			assert.Equal(t, http.MethodPut, r.Method)
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&f.updated))
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func newTestClient(t *testing.T, f *fakePatientsAPI) *Client {
	t.Helper()
	ts := httptest.NewServer(f.handler(t))
	t.Cleanup(ts.Close)
	return NewClient(ts.URL, "bot", "bot-pass", time.Second, 10*time.Minute, nil)
}

func TestCreatePatient(t *testing.T) {
	f := &fakePatientsAPI{createBody: `{"pcode": 777}`}
	c := newTestClient(t, f)

	pcode, err := c.CreatePatient(context.Background(), CreatePatientRequest{
		LastName: "Иванов", FirstName: "Иван", MiddleName: "Иванович",
		BirthDate: "1990-05-01", Login: "ivanov", Password: "secret", Phone: "+7(999)123-45-67",
	})

	require.NoError(t, err)
	assert.Equal(t, "777", pcode)
	assert.Equal(t, "1990-05-01", f.created.BirthDate)
	assert.Equal(t, "+7(999)123-45-67", f.created.Phone)
}

func TestCreatePatient_TokenIsCached(t *testing.T) {
	f := &fakePatientsAPI{createBody: `{"data": {"pcode": "P-1"}}`}
	c := newTestClient(t, f)

	for i := 0; i < 3; i++ {
		pcode, err := c.CreatePatient(context.Background(), CreatePatientRequest{LastName: "Иванов"})
		require.NoError(t, err)
		assert.Equal(t, "P-1", pcode)
	}
	assert.Equal(t, int32(1), f.tokenCalls.Load())
}

func TestCreatePatient_RefreshesTokenOn401(t *testing.T) {
	f := &fakePatientsAPI{createBody: `{"PCODE": "42"}`}
	f.rejectFirst.Store(true)
	c := newTestClient(t, f)

	pcode, err := c.CreatePatient(context.Background(), CreatePatientRequest{})
	require.NoError(t, err)
	assert.Equal(t, "42", pcode)
	assert.Equal(t, int32(2), f.tokenCalls.Load())
}

func TestCreatePatient_MissingPCode(t *testing.T) {
	c := newTestClient(t, &fakePatientsAPI{createBody: `{"status": "queued"}`})

	_, err := c.CreatePatient(context.Background(), CreatePatientRequest{})
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestUpdateCredentials(t *testing.T) {
	f := &fakePatientsAPI{}
	c := newTestClient(t, f)

	err := c.UpdateCredentials(context.Background(), "777", UpdateCredentialsRequest{Login: "new", Password: "pass"})
	require.NoError(t, err)
	assert.Equal(t, UpdateCredentialsRequest{Login: "new", Password: "pass"}, f.updated)

	err = c.UpdateCredentials(context.Background(), "999", UpdateCredentialsRequest{})
	assert.ErrorIs(t, err, ErrRejected)
}

func TestToken_Error(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "bot", "wrong", time.Second, time.Minute, nil)

	_, err := c.Token(context.Background())
	assert.ErrorIs(t, err, ErrTokenRequest)
}
