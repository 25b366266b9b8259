package directory

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicBot/internal/domain"
)

func TestCache_Branches(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	cache := NewCache(client, time.Minute)
	ctx := context.Background()

	_, ok, err := cache.GetBranches(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	branches := []domain.Branch{{ID: 1, Name: "Центральный"}, {ID: 2, Name: "Северный"}}
	require.NoError(t, cache.SetBranches(ctx, branches))

	got, ok, err := cache.GetBranches(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, branches, got)

	mr.FastForward(2 * time.Minute)
	_, ok, err = cache.GetBranches(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_EmptyListNotCached(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	cache := NewCache(client, time.Minute)
	require.NoError(t, cache.SetBranches(context.Background(), nil))
	assert.False(t, mr.Exists(branchesKey))
}

func TestCache_CorruptedValueIsMiss(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	require.NoError(t, mr.Set(branchesKey, "not-json"))

	cache := NewCache(client, time.Minute)
	_, ok, err := cache.GetBranches(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Invalidate(context.Background()))
	assert.False(t, mr.Exists(branchesKey))
}
