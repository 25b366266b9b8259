package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-ClinicBot/internal/domain"
)

const branchesKey = "directory:branches"

// ErrCache ошибка обращения к кэшу
var ErrCache = errors.New("directory cache: error")

// Cache справочники МИС, общие для всех пользователей.
// Наполняется воркером обновления и при первом обращении.
type Cache struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{redis: client, ttl: ttl}
}

// GetBranches возвращает филиалы из кэша; ok=false, если кэш пуст
func (c *Cache) GetBranches(ctx context.Context) ([]domain.Branch, bool, error) {
	data, err := c.redis.Get(ctx, branchesKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: GetBranches - redis get: %v", ErrCache, err)
	}

	var branches []domain.Branch
	if err := json.Unmarshal(data, &branches); err != nil {
		// битое значение считаем промахом
		return nil, false, nil
	}
	return branches, len(branches) > 0, nil
}

// SetBranches сохраняет список филиалов; пустой список не кэшируется
func (c *Cache) SetBranches(ctx context.Context, branches []domain.Branch) error {
	if len(branches) == 0 {
		return nil
	}

	data, err := json.Marshal(branches)
	if err != nil {
		return fmt.Errorf("%w: SetBranches - marshal: %v", ErrCache, err)
	}
	if err := c.redis.Set(ctx, branchesKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: SetBranches - redis set: %v", ErrCache, err)
	}
	return nil
}

// Invalidate удаляет кэш справочников
func (c *Cache) Invalidate(ctx context.Context) error {
	if err := c.redis.Del(ctx, branchesKey).Err(); err != nil {
		return fmt.Errorf("%w: Invalidate - redis del: %v", ErrCache, err)
	}
	return nil
}
