package queries

import (
	"context"

	"consultation-booking/internal/domain/settings"
	"consultation-booking/internal/usecase/shared"
)

type SettingsQueries interface {
	Get(ctx context.Context) (*SettingsView, error)
}

type settingsQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewSettingsQueries(uow shared.UnitOfWork) SettingsQueries {
	return &settingsQueriesImpl{uow: uow}
}

func (q *settingsQueriesImpl) Get(ctx context.Context) (*SettingsView, error) {
	var st settings.Settings
	err := q.uow.WithDB(ctx, func(ctx context.Context, tx shared.Tx) error {
		var derr error
		st, derr = shared.LoadSettings(ctx, tx)
		return derr
	})
	if err != nil {
		return nil, shared.Classify(err)
	}
	return NewSettingsView(st), nil
}
