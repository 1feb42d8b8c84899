package bootstrap

import (
	"consultation-booking/internal/infra/metrics"
	"consultation-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var MetricsModule = fx.Module("metrics",
	fx.Provide(
		metrics.New,
		func(m *metrics.Metrics) shared.Metrics { return m },
	),
)
