package session

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicBot/internal/domain"
	"github.com/m04kA/SMC-ClinicBot/pkg/logger"
	"github.com/m04kA/SMC-ClinicBot/pkg/types"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewStore(client, time.Hour, logger.NewNop()), mr
}

func TestStore_GetMissingReturnsIdle(t *testing.T) {
	store, _ := newTestStore(t)

	sess, err := store.Get(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, domain.StepIdle, sess.Step)
}

func TestStore_SaveAndGet(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	sess := domain.NewSession()
	sess.Branches = []domain.Branch{{ID: 1, Name: "Центральный"}}
	sess.Branch = &sess.Branches[0]
	sess.Departments = []domain.Department{{ID: 7, Name: "Терапия"}}
	sess.Department = &sess.Departments[0]
	sess.Doctor = &domain.Doctor{Code: 100, Name: "Петров П.П."}
	sess.Date = "20260125"
	sess.Slot = &domain.TimeSlot{Time: "09:00-09:30", Start: types.TimeString("09:00"), ScheduleID: 555, WorkDate: "20260125", DoctorCode: 100}
	sess.Step = domain.StepConfirm

	require.NoError(t, store.Save(ctx, 42, sess))
	assert.Equal(t, time.Hour, mr.TTL("session:42"))

	got, err := store.Get(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, domain.StepConfirm, got.Step)
	assert.Equal(t, int64(555), got.Slot.ScheduleID)
	assert.Equal(t, "Терапия", got.Department.Name)
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestStore_ExpiredSessionIsIdle(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	sess := domain.NewSession()
	sess.Branches = []domain.Branch{{ID: 1, Name: "A"}}
	sess.Step = domain.StepBranch
	require.NoError(t, store.Save(ctx, 1, sess))

	mr.FastForward(2 * time.Hour)

	got, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.StepIdle, got.Step)
}

func TestStore_InvalidStateIsReset(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "not json", raw: "{broken"},
		{name: "unknown step", raw: `{"step":"teleport"}`},
		{name: "confirm without slot", raw: `{"step":"confirm","branch":{"id":1,"name":"A"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mr := newTestStore(t)
			require.NoError(t, mr.Set("session:7", tt.raw))

			got, err := store.Get(context.Background(), 7)
			require.NoError(t, err)
			assert.Equal(t, domain.StepIdle, got.Step)
		})
	}
}

func TestStore_Reset(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, 5, domain.NewSession()))
	require.NoError(t, store.Reset(ctx, 5))
	assert.False(t, mr.Exists("session:5"))
}

func TestStore_RedisDown(t *testing.T) {
	store, mr := newTestStore(t)
	mr.Close()

	_, err := store.Get(context.Background(), 1)
	assert.ErrorIs(t, err, ErrStorage)
}
