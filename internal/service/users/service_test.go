package users

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicBot/internal/domain"
	userRepo "github.com/m04kA/SMC-ClinicBot/internal/infra/storage/registereduser"
	"github.com/m04kA/SMC-ClinicBot/internal/integrations/patientsapi"
	"github.com/m04kA/SMC-ClinicBot/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClinicBot/pkg/logger"
	"github.com/m04kA/SMC-ClinicBot/pkg/txmanager"
)

type memoryRepo struct {
	users     map[int64]*domain.RegisteredUser
	createErr error
	updateErr error
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{users: make(map[int64]*domain.RegisteredUser)}
}

func (r *memoryRepo) Create(ctx context.Context, user *domain.RegisteredUser) error {
	if r.createErr != nil {
		return r.createErr
	}
	if _, ok := r.users[user.PlatformUserID]; ok {
		return userRepo.ErrUserAlreadyExists
	}
	user.ID = int64(len(r.users) + 1)
	copied := *user
	r.users[user.PlatformUserID] = &copied
	return nil
}

func (r *memoryRepo) GetByPlatformID(ctx context.Context, platformUserID int64) (*domain.RegisteredUser, error) {
	u, ok := r.users[platformUserID]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *memoryRepo) GetByCredentials(ctx context.Context, login, password string) (*domain.RegisteredUser, error) {
	for _, u := range r.users {
		if u.ClinicLogin == login && u.ClinicPassword == password {
			copied := *u
			return &copied, nil
		}
	}
	return nil, userRepo.ErrUserNotFound
}

func (r *memoryRepo) UpdateCredentials(ctx context.Context, platformUserID int64, creds domain.Credentials) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	u, ok := r.users[platformUserID]
	if !ok {
		return userRepo.ErrUserNotFound
	}
	u.ClinicLogin, u.ClinicPassword = creds.Login, creds.Password
	return nil
}

func (r *memoryRepo) DeleteByPlatformID(ctx context.Context, platformUserID int64) error {
	if _, ok := r.users[platformUserID]; !ok {
		return userRepo.ErrUserNotFound
	}
	delete(r.users, platformUserID)
	return nil
}

type fakePatients struct {
	pcode     string
	createErr error
	updateErr error
	created   []patientsapi.CreatePatientRequest
	updated   map[string]patientsapi.UpdateCredentialsRequest
}

func (p *fakePatients) CreatePatient(ctx context.Context, req patientsapi.CreatePatientRequest) (string, error) {
	p.created = append(p.created, req)
	return p.pcode, p.createErr
}

func (p *fakePatients) UpdateCredentials(ctx context.Context, pcode string, req patientsapi.UpdateCredentialsRequest) error {
	if p.updateErr != nil {
		return p.updateErr
	}
	if p.updated == nil {
		p.updated = make(map[string]patientsapi.UpdateCredentialsRequest)
	}
	p.updated[pcode] = req
	return nil
}

type passTx struct{ calls int }

func (t *passTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

func testDraft() domain.RegistrationDraft {
	return domain.RegistrationDraft{
		LastName:   "Иванов",
		FirstName:  "Иван",
		MiddleName: "Иванович",
		BirthDate:  "1990-05-01",
		Login:      "ivanov",
		Password:   "secret",
		Phone:      "+7(999)123-45-67",
	}
}

func TestService_RegisterThenGet(t *testing.T) {
	repo := newMemoryRepo()
	patients := &fakePatients{pcode: "777"}
	tx := &passTx{}
	svc := NewService(repo, patients, tx, logger.NewNop())
	ctx := context.Background()

	registered, err := svc.IsRegistered(ctx, 1001)
	require.NoError(t, err)
	assert.False(t, registered)

	user, err := svc.Register(ctx, 1001, testDraft())
	require.NoError(t, err)
	assert.Equal(t, 1, tx.calls)
	assert.Equal(t, "+7(999)123-45-67", patients.created[0].Phone)

	got, err := svc.Get(ctx, 1001)
	require.NoError(t, err)
	assert.Equal(t, "777", got.PCode)
	assert.Equal(t, "Иванов Иван Иванович", got.FullName())
	assert.Equal(t, "1990-05-01", got.BirthDate)
	assert.Equal(t, user.ClinicLogin, got.ClinicLogin)

	_, err = svc.Register(ctx, 1001, testDraft())
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
	assert.Len(t, patients.created, 1)
}

func TestService_RegisterErrors(t *testing.T) {
	t.Run("patients api failure", func(t *testing.T) {
		repo := newMemoryRepo()
		svc := NewService(repo, &fakePatients{createErr: patientsapi.ErrRejected}, &passTx{}, logger.NewNop())

		_, err := svc.Register(context.Background(), 1, testDraft())
		assert.ErrorIs(t, err, ErrPatientsAPI)
		assert.Empty(t, repo.users)
	})

	t.Run("missing fields", func(t *testing.T) {
		svc := NewService(newMemoryRepo(), &fakePatients{}, &passTx{}, logger.NewNop())

		draft := testDraft()
		draft.Login = ""
		_, err := svc.Register(context.Background(), 1, draft)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("no middle name", func(t *testing.T) {
		repo := newMemoryRepo()
		svc := NewService(repo, &fakePatients{pcode: "1"}, &passTx{}, logger.NewNop())

		draft := testDraft()
		draft.MiddleName = ""
		user, err := svc.Register(context.Background(), 1, draft)
		require.NoError(t, err)
		assert.Nil(t, user.MiddleName)
	})
}

func TestService_RegisterRollsBackOnInsertFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	wrapped := dbmetrics.Wrap(db, nil)
	svc := NewService(
		userRepo.NewRepository(wrapped),
		&fakePatients{pcode: "777"},
		txmanager.NewTransactionManager(wrapped),
		logger.NewNop(),
	)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, platform_user_id")).
		WithArgs(int64(1001)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery("INSERT INTO registered_users").
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, err = svc.Register(context.Background(), 1001, testDraft())
	assert.ErrorIs(t, err, ErrInternal)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_RegisterCommits(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	wrapped := dbmetrics.Wrap(db, nil)
	svc := NewService(
		userRepo.NewRepository(wrapped),
		&fakePatients{pcode: "777"},
		txmanager.NewTransactionManager(wrapped),
		logger.NewNop(),
	)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM registered_users").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery("INSERT INTO registered_users").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(1, now, now))
	mock.ExpectCommit()

	user, err := svc.Register(context.Background(), 1001, testDraft())
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Link(t *testing.T) {
	t.Run("new account from clinic profile", func(t *testing.T) {
		repo := newMemoryRepo()
		svc := NewService(repo, &fakePatients{}, &passTx{}, logger.NewNop())

		user, err := svc.Link(context.Background(), LinkInput{
			PlatformUserID: 5,
			PCode:          "900",
			FullName:       "Петров Пётр Петрович",
			Credentials:    domain.Credentials{Login: "petrov", Password: "pwd"},
		})
		require.NoError(t, err)
		assert.Equal(t, "Петров", user.LastName)
		assert.Equal(t, "Пётр", user.FirstName)
		require.NotNil(t, user.MiddleName)
		assert.Equal(t, "Петрович", *user.MiddleName)
		assert.Contains(t, repo.users, int64(5))
	})

	t.Run("profile copied from known credentials", func(t *testing.T) {
		repo := newMemoryRepo()
		svc := NewService(repo, &fakePatients{pcode: "777"}, &passTx{}, logger.NewNop())

		_, err := svc.Register(context.Background(), 1, testDraft())
		require.NoError(t, err)

		user, err := svc.Link(context.Background(), LinkInput{
			PlatformUserID: 2,
			Credentials:    domain.Credentials{Login: "ivanov", Password: "secret"},
		})
		require.NoError(t, err)
		assert.Equal(t, "777", user.PCode)
		assert.Equal(t, "1990-05-01", user.BirthDate)
		assert.Equal(t, "Иванов Иван Иванович", user.FullName())
	})

	t.Run("same user links again", func(t *testing.T) {
		repo := newMemoryRepo()
		svc := NewService(repo, &fakePatients{pcode: "777"}, &passTx{}, logger.NewNop())

		_, err := svc.Register(context.Background(), 1, testDraft())
		require.NoError(t, err)

		user, err := svc.Link(context.Background(), LinkInput{
			PlatformUserID: 1,
			Credentials:    domain.Credentials{Login: "ivanov", Password: "secret"},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), user.PlatformUserID)
		assert.Len(t, repo.users, 1)
	})
}

func TestService_ChangeCredentials(t *testing.T) {
	repo := newMemoryRepo()
	patients := &fakePatients{pcode: "777"}
	svc := NewService(repo, patients, &passTx{}, logger.NewNop())
	ctx := context.Background()

	err := svc.ChangeCredentials(ctx, 1, domain.Credentials{Login: "a", Password: "b"})
	assert.ErrorIs(t, err, ErrNotRegistered)

	_, err = svc.Register(ctx, 1, testDraft())
	require.NoError(t, err)

	require.NoError(t, svc.ChangeCredentials(ctx, 1, domain.Credentials{Login: "new", Password: "pass"}))
	assert.Equal(t, patientsapi.UpdateCredentialsRequest{Login: "new", Password: "pass"}, patients.updated["777"])

	got, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "new", got.ClinicLogin)

	patients.updateErr = patientsapi.ErrUnavailable
	err = svc.ChangeCredentials(ctx, 1, domain.Credentials{Login: "x", Password: "y"})
	assert.ErrorIs(t, err, ErrPatientsAPI)

	got, err = svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "new", got.ClinicLogin)
}

func TestService_Delete(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, &fakePatients{pcode: "777"}, &passTx{}, logger.NewNop())
	ctx := context.Background()

	_, err := svc.Register(ctx, 1, testDraft())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, 1))
	assert.ErrorIs(t, svc.Delete(ctx, 1), ErrNotRegistered)

	registered, err := svc.IsRegistered(ctx, 1)
	require.NoError(t, err)
	assert.False(t, registered)
}

func TestSplitFullName(t *testing.T) {
	last, first, middle := splitFullName("  Иванова   Анна  ")
	assert.Equal(t, "Иванова", last)
	assert.Equal(t, "Анна", first)
	assert.Nil(t, middle)

	last, first, middle = splitFullName("Оглы Руслан Ахмед Оглы")
	assert.Equal(t, "Оглы", last)
	assert.Equal(t, "Руслан", first)
	require.NotNil(t, middle)
	assert.Equal(t, "Ахмед Оглы", *middle)
}
