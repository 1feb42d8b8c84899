package components

import (
	"consultation-booking/internal/infra/uow"

	"go.uber.org/fx"
)

// Repositories are stateless and built per transaction by the unit of work.
var RepositoryModule = fx.Module("repository",
	fx.Provide(
		uow.NewPostgresUoW,
	),
)
