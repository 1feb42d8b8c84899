package queries

import (
	"context"

	"consultation-booking/internal/domain/slot"
	"consultation-booking/internal/usecase/shared"
)

type SlotQueries interface {
	// ListAll includes inactive slots.
	ListAll(ctx context.Context) ([]*SlotView, error)
}

type slotQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewSlotQueries(uow shared.UnitOfWork) SlotQueries {
	return &slotQueriesImpl{uow: uow}
}

func (q *slotQueriesImpl) ListAll(ctx context.Context) ([]*SlotView, error) {
	var slots []*slot.Slot
	err := q.uow.WithDB(ctx, func(ctx context.Context, tx shared.Tx) error {
		var derr error
		slots, derr = tx.Slots().ListAll(ctx, tx.DB())
		return derr
	})
	if err != nil {
		return nil, shared.Classify(err)
	}

	views := make([]*SlotView, 0, len(slots))
	for _, s := range slots {
		views = append(views, NewSlotView(s))
	}
	return views, nil
}
