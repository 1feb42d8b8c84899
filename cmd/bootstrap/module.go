package bootstrap

import (
	"consultation-booking/cmd/bootstrap/components"

	"go.uber.org/fx"
)

// CoreModule is everything the HTTP server and the worker share.
var CoreModule = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	components.ClockModule,
	components.RepositoryModule,
)

var Module = fx.Options(
	CoreModule,
	JWTModule,
	RedisModule,
	QueueModule,
	MetricsModule,
	components.UseCaseModule,
	components.HandlerModule,
)
