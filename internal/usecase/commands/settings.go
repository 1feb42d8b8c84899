package commands

import (
	"context"
	"log/slog"

	"consultation-booking/internal/domain/settings"
	"consultation-booking/internal/pkg/clock"
	"consultation-booking/internal/pkg/patch"
	"consultation-booking/internal/usecase/queries"
	"consultation-booking/internal/usecase/shared"
)

// UpdateSettingsRequest is a partial update; nil fields keep their saved value.
type UpdateSettingsRequest struct {
	FeeCents        *int64
	Currency        *string
	DurationMinutes *int
	IsActive        *bool
	Description     *string
}

type SettingsCommands interface {
	Update(ctx context.Context, req UpdateSettingsRequest) (*queries.SettingsView, error)
}

type settingsUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewSettingsUseCase(uow shared.UnitOfWork, clk clock.Clock) SettingsCommands {
	return &settingsUseCaseImpl{uow: uow, clock: clk}
}

func (uc *settingsUseCaseImpl) Update(ctx context.Context, req UpdateSettingsRequest) (*queries.SettingsView, error) {
	var saved settings.Settings
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		current, derr := shared.LoadSettings(ctx, tx)
		if derr != nil {
			return derr
		}

		next, derr := settings.New(
			patch.Coalesce(req.FeeCents, current.FeeCents),
			patch.Coalesce(req.Currency, current.Currency),
			patch.Coalesce(req.DurationMinutes, current.DurationMinutes),
			patch.Coalesce(req.IsActive, current.IsActive),
			patch.Coalesce(req.Description, current.Description),
			uc.clock.Now(),
		)
		if derr != nil {
			return derr
		}
		if derr = tx.Settings().Upsert(ctx, tx.DB(), next); derr != nil {
			return derr
		}

		if patch.Changed(req.IsActive, current.IsActive) {
			slog.Info("consultations availability toggled", slog.Bool("is_active", next.IsActive))
		}
		saved = next
		return nil
	})
	if err != nil {
		return nil, shared.Classify(err)
	}

	slog.Info("consultation settings updated",
		slog.Int64("fee_cents", saved.FeeCents),
		slog.String("currency", saved.Currency),
		slog.Int("duration_minutes", saved.DurationMinutes))
	return queries.NewSettingsView(saved), nil
}
