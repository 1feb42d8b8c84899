package bootstrap

import (
	"context"
	"log/slog"

	"consultation-booking/internal/infra/lock"
	"consultation-booking/internal/pkg/config"
	"consultation-booking/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewSlotLocker,
	),
)

// NewSlotLocker falls back to the no-op locker when REDIS_ADDR is empty; the live-slot
// unique index alone keeps bookings consistent then.
func NewSlotLocker(lc fx.Lifecycle, cfg config.Config) shared.SlotLocker {
	if !cfg.Redis.Enabled() {
		slog.Info("Redis not configured, slot lock disabled")
		return lock.NewNopSlotLocker()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				slog.Warn("Redis ping failed, slot lock will fail open", "error", err)
			}
			return nil
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	return lock.NewRedisSlotLocker(client, cfg.Booking)
}
