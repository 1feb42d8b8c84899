package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"consultation-booking/cmd/bootstrap"
	"consultation-booking/internal/infra/notify"
	"consultation-booking/internal/pkg/config"
	"consultation-booking/internal/usecase/shared"

	"github.com/hibiken/asynq"
	"go.uber.org/fx"
)

var errRedisRequired = errors.New("worker requires REDIS_ADDR")

func newServer(cfg config.Config) (*asynq.Server, error) {
	if !cfg.Redis.Enabled() {
		return nil, errRedisRequired
	}
	return asynq.NewServer(notify.RedisClientOpt(cfg.Redis), asynq.Config{
		Concurrency: 4,
		Queues:      map[string]int{notify.QueueNotifications: 1},
		Logger:      newAsynqLogger(slog.Default()),
	}), nil
}

func startWorker(lc fx.Lifecycle, srv *asynq.Server, uow shared.UnitOfWork, logger *slog.Logger) {
	mux := notify.NewServeMux(notify.NewDeliveryHandler(uow))
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			logger.Info("Starting notification worker", "queue", notify.QueueNotifications)
			return srv.Start(mux)
		},
		OnStop: func(_ context.Context) error {
			logger.Info("Stopping notification worker")
			srv.Shutdown()
			return nil
		},
	})
}

func main() {
	app := fx.New(
		bootstrap.CoreModule,
		fx.Provide(newServer),
		fx.Invoke(startWorker),
	)

	if err := app.Start(context.Background()); err != nil {
		slog.Error("Failed to start worker", "error", err)
		os.Exit(1)
	}

	<-app.Done()

	if err := app.Stop(context.Background()); err != nil {
		slog.Error("Failed to stop worker", "error", err)
	}

	slog.Info("Worker stopped")
}
