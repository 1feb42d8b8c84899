package lock

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"consultation-booking/internal/domain/calendar"
	"consultation-booking/internal/pkg/config"
	"consultation-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix      = "booking-lock"
	releaseTimeout = 2 * time.Second
)

// releaseScript deletes the key only while it still holds our token, so an expired
// lock taken over by another request is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type redisClient interface {
	SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd
	redis.Scripter
}

type RedisSlotLocker struct {
	client redisClient
	ttl    time.Duration
}

func NewRedisSlotLocker(client *redis.Client, cfg config.BookingConfig) *RedisSlotLocker {
	return newRedisSlotLocker(client, cfg.LockTTL)
}

func newRedisSlotLocker(client redisClient, ttl time.Duration) *RedisSlotLocker {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	return &RedisSlotLocker{client: client, ttl: ttl}
}

func Key(date calendar.Date, start calendar.TimeOfDay) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, date, start)
}

// Acquire fails open when Redis is unreachable: the unique index still rejects a
// concurrent insert, the lock only makes the loser fail earlier.
func (l *RedisSlotLocker) Acquire(ctx context.Context, date calendar.Date, start calendar.TimeOfDay) (func(), error) {
	key := Key(date, start)
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		slog.Warn("slot lock unavailable, continuing without it", "key", key, "error", err.Error())
		return func() {}, nil
	}
	if !ok {
		return nil, shared.ErrLockNotAcquired
	}

	release := func() {
		ctx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
		defer cancel()
		if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil {
			slog.Warn("failed to release slot lock", "key", key, "error", err.Error())
		}
	}
	return release, nil
}

// NopSlotLocker is used when Redis is not configured.
type NopSlotLocker struct{}

func NewNopSlotLocker() *NopSlotLocker {
	return &NopSlotLocker{}
}

func (NopSlotLocker) Acquire(context.Context, calendar.Date, calendar.TimeOfDay) (func(), error) {
	return func() {}, nil
}
