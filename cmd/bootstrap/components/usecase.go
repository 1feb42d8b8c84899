package components

import (
	"consultation-booking/internal/infra/meeting"
	"consultation-booking/internal/pkg/clock"
	"consultation-booking/internal/usecase"
	"consultation-booking/internal/usecase/commands"
	"consultation-booking/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	meeting.New,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewSlotUseCase,
		commands.NewBookingUseCase,
		commands.NewSettingsUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewAvailabilityQueries,
		queries.NewBookingQueries,
		queries.NewSlotQueries,
		queries.NewSettingsQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

// ClockModule is provided separately so the worker can share it.
var ClockModule = fx.Module("clock",
	fx.Provide(
		clock.NewRealClock,
	),
)
