package bootstrap

import (
	"log/slog"

	"consultation-booking/internal/handler/middleware"
	"consultation-booking/internal/pkg/config"

	"go.uber.org/fx"
)

var LoggerModule = fx.Module("logger",
	fx.Provide(
		NewLogger,
		func(l *middleware.Logger) *slog.Logger { return l.GetSlogLogger() },
	),
)

// NewLogger also installs the handler as the slog default.
func NewLogger(cfg config.Config) *middleware.Logger {
	return middleware.NewLogger(cfg.Log)
}
