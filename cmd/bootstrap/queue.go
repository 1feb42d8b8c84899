package bootstrap

import (
	"context"
	"log/slog"

	"consultation-booking/internal/infra/notify"
	"consultation-booking/internal/pkg/clock"
	"consultation-booking/internal/pkg/config"
	"consultation-booking/internal/usecase/shared"

	"github.com/hibiken/asynq"
	"go.uber.org/fx"
)

var QueueModule = fx.Module("queue",
	fx.Provide(
		NewNotifier,
	),
)

func NewNotifier(lc fx.Lifecycle, cfg config.Config, clk clock.Clock) shared.Notifier {
	if !cfg.Redis.Enabled() {
		slog.Info("Redis not configured, notifications are only logged")
		return notify.NewLogNotifier()
	}

	client := asynq.NewClient(notify.RedisClientOpt(cfg.Redis))
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	return notify.NewAsynqNotifier(client, clk)
}
