//go:build unit || e2e

package uowtest

import (
	"context"

	"consultation-booking/internal/usecase/shared"
	sharedmock "consultation-booking/tests/mock/shared"

	"go.uber.org/mock/gomock"
)

// Harness runs every unit-of-work callback against one mocked transaction whose
// repositories are exposed for expectations.
type Harness struct {
	UoW           *sharedmock.MockUnitOfWork
	Tx            *sharedmock.MockTx
	Slots         *sharedmock.MockSlotRepository
	Bookings      *sharedmock.MockBookingRepository
	Settings      *sharedmock.MockSettingsRepository
	Idempotency   *sharedmock.MockIdempotencyRepository
	Notifications *sharedmock.MockNotificationRepository
}

func New(ctrl *gomock.Controller) *Harness {
	h := &Harness{
		UoW:           sharedmock.NewMockUnitOfWork(ctrl),
		Tx:            sharedmock.NewMockTx(ctrl),
		Slots:         sharedmock.NewMockSlotRepository(ctrl),
		Bookings:      sharedmock.NewMockBookingRepository(ctrl),
		Settings:      sharedmock.NewMockSettingsRepository(ctrl),
		Idempotency:   sharedmock.NewMockIdempotencyRepository(ctrl),
		Notifications: sharedmock.NewMockNotificationRepository(ctrl),
	}

	run := func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
		return fn(ctx, h.Tx)
	}
	h.UoW.EXPECT().Within(gomock.Any(), gomock.Any()).DoAndReturn(run).AnyTimes()
	h.UoW.EXPECT().WithinReadOnly(gomock.Any(), gomock.Any()).DoAndReturn(run).AnyTimes()
	h.UoW.EXPECT().WithDB(gomock.Any(), gomock.Any()).DoAndReturn(run).AnyTimes()

	h.Tx.EXPECT().DB().Return(nil).AnyTimes()
	h.Tx.EXPECT().Slots().Return(h.Slots).AnyTimes()
	h.Tx.EXPECT().Bookings().Return(h.Bookings).AnyTimes()
	h.Tx.EXPECT().Settings().Return(h.Settings).AnyTimes()
	h.Tx.EXPECT().Idempotency().Return(h.Idempotency).AnyTimes()
	h.Tx.EXPECT().Notifications().Return(h.Notifications).AnyTimes()
	return h
}
