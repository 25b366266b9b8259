package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/m04kA/SMC-ClinicBot/internal/domain"
)

const keyPrefix = "session:"

// Store хранит состояние диалога пользователя в Redis с TTL.
// Каждое сохранение продлевает TTL.
type Store struct {
	redis  *redis.Client
	ttl    time.Duration
	logger Logger
	tracer trace.Tracer
	now    func() time.Time
}

func NewStore(client *redis.Client, ttl time.Duration, logger Logger) *Store {
	return &Store{
		redis:  client,
		ttl:    ttl,
		logger: logger,
		tracer: otel.Tracer("clinicbot.storage.session"),
		now:    time.Now,
	}
}

// Get возвращает сессию пользователя.
// Отсутствующая, повреждённая или несогласованная сессия заменяется новой на шаге Idle.
func (s *Store) Get(ctx context.Context, userID int64) (*domain.Session, error) {
	ctx, span := s.tracer.Start(ctx, "session.get")
	defer span.End()
	span.SetAttributes(attribute.Int64("user.id", userID))

	data, err := s.redis.Get(ctx, key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.NewSession(), nil
	}
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("%w: Get - redis get: %v", ErrStorage, err)
	}

	var sess domain.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		s.logger.Warn("Session of user %d is corrupted, resetting: %v", userID, err)
		return domain.NewSession(), nil
	}
	if err := sess.Validate(); err != nil {
		s.logger.Warn("Session of user %d is inconsistent, resetting: %v", userID, err)
		return domain.NewSession(), nil
	}

	return &sess, nil
}

// Save сохраняет сессию и обновляет UpdatedAt
func (s *Store) Save(ctx context.Context, userID int64, sess *domain.Session) error {
	ctx, span := s.tracer.Start(ctx, "session.save")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("user.id", userID),
		attribute.String("session.step", sess.Step.String()),
	)

	sess.UpdatedAt = s.now().UTC()

	data, err := json.Marshal(sess)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("%w: Save - marshal: %v", ErrEncode, err)
	}

	if err := s.redis.Set(ctx, key(userID), data, s.ttl).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("%w: Save - redis set: %v", ErrStorage, err)
	}
	return nil
}

// Reset удаляет сессию пользователя
func (s *Store) Reset(ctx context.Context, userID int64) error {
	if err := s.redis.Del(ctx, key(userID)).Err(); err != nil {
		return fmt.Errorf("%w: Reset - redis del: %v", ErrStorage, err)
	}
	return nil
}

func key(userID int64) string {
	return keyPrefix + strconv.FormatInt(userID, 10)
}
