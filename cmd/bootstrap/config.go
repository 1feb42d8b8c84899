package bootstrap

import (
	"consultation-booking/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
	),
	ConfigSections,
)

// ConfigSections exposes the sections constructors depend on directly. Tests that
// supply their own config.Config reuse it.
var ConfigSections = fx.Provide(
	func(cfg config.Config) config.BookingConfig { return cfg.Booking },
	func(cfg config.Config) config.MeetingConfig { return cfg.Meeting },
)
