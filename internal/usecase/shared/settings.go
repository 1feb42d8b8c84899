package shared

import (
	"context"

	"consultation-booking/internal/domain/settings"
	"consultation-booking/internal/infra"
)

// LoadSettings returns the saved consultation settings, or the inactive defaults when
// an admin has not saved any yet.
func LoadSettings(ctx context.Context, tx Tx) (settings.Settings, error) {
	s, err := tx.Settings().Get(ctx, tx.DB())
	if infra.IsKind(err, infra.KindNotFound) {
		return settings.Default(), nil
	}
	if err != nil {
		return settings.Settings{}, err
	}
	return s, nil
}
