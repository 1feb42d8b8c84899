package commands

import (
	"context"
	"log/slog"

	"consultation-booking/internal/domain/calendar"
	"consultation-booking/internal/domain/slot"
	"consultation-booking/internal/pkg/clock"
	"consultation-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type TimeWindowInput struct {
	StartTime string
	EndTime   string
}

type AddSlotsRequest struct {
	RecurrenceType string
	DaysOfWeek     []int
	StartDate      *string
	EndDate        *string
	SpecificDates  []string
	Windows        []TimeWindowInput
}

// AddSlotsResult reports how many drafts the rule expanded to and how many rows were written
// after duplicates were removed.
type AddSlotsResult struct {
	Requested int
	Created   int
}

type SlotCommands interface {
	AddSlots(ctx context.Context, req AddSlotsRequest) (*AddSlotsResult, error)
	SetActive(ctx context.Context, slotID uuid.UUID, active bool) error
	Delete(ctx context.Context, slotID uuid.UUID) error
}

type slotUseCaseImpl struct {
	uow     shared.UnitOfWork
	metrics shared.Metrics
	clock   clock.Clock
}

func NewSlotUseCase(uow shared.UnitOfWork, metrics shared.Metrics, clk clock.Clock) SlotCommands {
	return &slotUseCaseImpl{uow: uow, metrics: metrics, clock: clk}
}

func (uc *slotUseCaseImpl) AddSlots(ctx context.Context, req AddSlotsRequest) (*AddSlotsResult, error) {
	windows, err := parseWindows(req.Windows)
	if err != nil {
		return nil, shared.Classify(err)
	}
	rule, err := buildRule(req)
	if err != nil {
		return nil, shared.Classify(err)
	}

	expanded := slot.Expand(rule, windows)
	drafts := slot.Dedup(expanded)

	var created int
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		n, derr := tx.Slots().InsertBatch(ctx, tx.DB(), drafts, uc.clock.Now())
		if derr != nil {
			return derr
		}
		created = n
		return nil
	})
	if err != nil {
		return nil, shared.Classify(err)
	}

	uc.metrics.SlotsCreated(created)
	slog.Info("slots created",
		slog.String("recurrence_type", rule.Type().String()),
		slog.Int("requested", len(expanded)),
		slog.Int("created", created))

	return &AddSlotsResult{Requested: len(expanded), Created: created}, nil
}

func (uc *slotUseCaseImpl) SetActive(ctx context.Context, slotID uuid.UUID, active bool) error {
	err := uc.uow.WithDB(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Slots().SetActive(ctx, tx.DB(), slotID, active, uc.clock.Now())
	})
	if err != nil {
		return shared.Classify(err)
	}
	slog.Info("slot activation changed", slog.String("slot_id", slotID.String()), slog.Bool("active", active))
	return nil
}

// Delete removes the slot definition only. Bookings already made for its windows are kept.
func (uc *slotUseCaseImpl) Delete(ctx context.Context, slotID uuid.UUID) error {
	err := uc.uow.WithDB(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Slots().Delete(ctx, tx.DB(), slotID)
	})
	if err != nil {
		return shared.Classify(err)
	}
	slog.Info("slot deleted", slog.String("slot_id", slotID.String()))
	return nil
}

func parseWindows(in []TimeWindowInput) ([]calendar.TimeWindow, error) {
	windows := make([]calendar.TimeWindow, 0, len(in))
	for _, w := range in {
		tw, err := calendar.ParseTimeWindow(w.StartTime, w.EndTime)
		if err != nil {
			return nil, err
		}
		windows = append(windows, tw)
	}
	if err := slot.ValidateWindows(windows); err != nil {
		return nil, err
	}
	return windows, nil
}

func buildRule(req AddSlotsRequest) (slot.Rule, error) {
	rt, err := slot.NewRecurrenceType(req.RecurrenceType)
	if err != nil {
		return nil, err
	}

	switch rt {
	case slot.RecurrenceWeekly:
		endDate, err := parseOptionalDate(req.EndDate)
		if err != nil {
			return nil, err
		}
		return slot.NewWeeklyRule(req.DaysOfWeek, endDate)
	case slot.RecurrenceDateRange:
		if req.StartDate == nil || req.EndDate == nil {
			return nil, slot.ErrMissingDateRange
		}
		start, err := calendar.ParseDate(*req.StartDate)
		if err != nil {
			return nil, err
		}
		end, err := calendar.ParseDate(*req.EndDate)
		if err != nil {
			return nil, err
		}
		return slot.NewDateRangeRule(start, end)
	default:
		dates := make([]calendar.Date, 0, len(req.SpecificDates))
		for _, s := range req.SpecificDates {
			d, err := calendar.ParseDate(s)
			if err != nil {
				return nil, err
			}
			dates = append(dates, d)
		}
		return slot.NewSpecificDatesRule(dates)
	}
}

func parseOptionalDate(s *string) (*calendar.Date, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	d, err := calendar.ParseDate(*s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
