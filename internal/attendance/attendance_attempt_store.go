package attendance

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const AttemptKeyPrefix = "attendance:attempt:"

func GetAttemptKey(userID string) string {
	return AttemptKeyPrefix + userID
}

//go:generate mockgen -source=attendance_attempt_store.go -destination=mock/attendance_attempt_store_mock.go -package=mock
type AttemptStore interface {
	// Get mengembalikan attempt idle bila belum ada.
	Get(ctx context.Context, userID string) (Attempt, error)
	Save(ctx context.Context, a Attempt) error
	Delete(ctx context.Context, userID string) error
}

type redisAttemptStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewAttemptStore(rdb *redis.Client, ttl time.Duration) AttemptStore {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &redisAttemptStore{rdb: rdb, ttl: ttl}
}

func (s *redisAttemptStore) Get(ctx context.Context, userID string) (Attempt, error) {
	val, err := s.rdb.Get(ctx, GetAttemptKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return IdleAttempt(userID), nil
	}
	if err != nil {
		return Attempt{}, err
	}

	var a Attempt
	if err := json.Unmarshal([]byte(val), &a); err != nil {
		return Attempt{}, err
	}
	return a, nil
}

// Save: attempt idle tidak perlu disimpan, key-nya dihapus.
func (s *redisAttemptStore) Save(ctx context.Context, a Attempt) error {
	if a.State == StateIdle || a.State == "" {
		return s.Delete(ctx, a.UserID)
	}
	payload, err := json.Marshal(a)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, GetAttemptKey(a.UserID), string(payload), s.ttl).Err()
}

func (s *redisAttemptStore) Delete(ctx context.Context, userID string) error {
	return s.rdb.Del(ctx, GetAttemptKey(userID)).Err()
}
