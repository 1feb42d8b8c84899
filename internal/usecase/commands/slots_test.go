//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"consultation-booking/internal/domain/slot"
	"consultation-booking/internal/infra"
	"consultation-booking/internal/infra/db"
	"consultation-booking/internal/pkg/clock"
	"consultation-booking/internal/pkg/errs"
	"consultation-booking/internal/pkg/ptr"
	"consultation-booking/internal/usecase/commands"
	"consultation-booking/tests/common/uowtest"
	sharedmock "consultation-booking/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestSlotCommands_AddSlots(t *testing.T) {
	nineToTen := []commands.TimeWindowInput{{StartTime: "09:00", EndTime: "10:00"}}

	testCases := []struct {
		name          string
		req           commands.AddSlotsRequest
		wantRequested int
		wantDrafts    int
		wantType      slot.RecurrenceType
	}{
		{
			name: "weekly: days x windows",
			req: commands.AddSlotsRequest{
				RecurrenceType: "weekly",
				DaysOfWeek:     []int{1, 3, 5},
				Windows:        []commands.TimeWindowInput{{StartTime: "09:00", EndTime: "10:00"}, {StartTime: "14:00", EndTime: "15:00"}},
			},
			wantRequested: 6,
			wantDrafts:    6,
			wantType:      slot.RecurrenceWeekly,
		},
		{
			name: "weekly: repeated days collapse",
			req: commands.AddSlotsRequest{
				RecurrenceType: "weekly",
				DaysOfWeek:     []int{1, 1, 1},
				EndDate:        ptr.To("2024-06-30"),
				Windows:        nineToTen,
			},
			wantRequested: 1,
			wantDrafts:    1,
			wantType:      slot.RecurrenceWeekly,
		},
		{
			name: "date range: one draft per day, duplicate weekdays removed",
			req: commands.AddSlotsRequest{
				RecurrenceType: "date_range",
				StartDate:      ptr.To("2024-01-01"),
				EndDate:        ptr.To("2024-01-14"),
				Windows:        nineToTen,
			},
			wantRequested: 14,
			wantDrafts:    7,
			wantType:      slot.RecurrenceDateRange,
		},
		{
			name: "specific dates: one draft per window",
			req: commands.AddSlotsRequest{
				RecurrenceType: "specific_dates",
				SpecificDates:  []string{"2024-03-01", "2024-03-08"},
				Windows:        []commands.TimeWindowInput{{StartTime: "09:00", EndTime: "10:00"}, {StartTime: "10:00", EndTime: "11:00"}},
			},
			wantRequested: 2,
			wantDrafts:    2,
			wantType:      slot.RecurrenceSpecificDates,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			h := uowtest.New(ctrl)
			metrics := sharedmock.NewMockMetrics(ctrl)
			now := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
			uc := commands.NewSlotUseCase(h.UoW, metrics, clock.NewMockClock(now))

			var inserted []slot.Draft
			h.Slots.EXPECT().InsertBatch(gomock.Any(), gomock.Any(), gomock.Any(), now).
				DoAndReturn(func(_ context.Context, _ db.DBTX, drafts []slot.Draft, _ time.Time) (int, error) {
					inserted = drafts
					return len(drafts), nil
				})
			metrics.EXPECT().SlotsCreated(tc.wantDrafts)

			res, err := uc.AddSlots(context.Background(), tc.req)

			require.NoError(t, err)
			assert.Equal(t, tc.wantRequested, res.Requested)
			assert.Equal(t, tc.wantDrafts, res.Created)
			require.Len(t, inserted, tc.wantDrafts)
			for _, d := range inserted {
				assert.Equal(t, tc.wantType, d.RecurrenceType)
			}
		})
	}
}

func TestSlotCommands_AddSlots_Validation(t *testing.T) {
	testCases := []struct {
		name string
		req  commands.AddSlotsRequest
	}{
		{name: "unknown recurrence type", req: commands.AddSlotsRequest{RecurrenceType: "monthly", DaysOfWeek: []int{1}, Windows: []commands.TimeWindowInput{{StartTime: "09:00", EndTime: "10:00"}}}},
		{name: "no windows", req: commands.AddSlotsRequest{RecurrenceType: "weekly", DaysOfWeek: []int{1}}},
		{name: "window end before start", req: commands.AddSlotsRequest{RecurrenceType: "weekly", DaysOfWeek: []int{1}, Windows: []commands.TimeWindowInput{{StartTime: "10:00", EndTime: "09:00"}}}},
		{name: "window not zero padded", req: commands.AddSlotsRequest{RecurrenceType: "weekly", DaysOfWeek: []int{1}, Windows: []commands.TimeWindowInput{{StartTime: "9:00", EndTime: "10:00"}}}},
		{name: "no days", req: commands.AddSlotsRequest{RecurrenceType: "weekly", Windows: []commands.TimeWindowInput{{StartTime: "09:00", EndTime: "10:00"}}}},
		{name: "day out of range", req: commands.AddSlotsRequest{RecurrenceType: "weekly", DaysOfWeek: []int{7}, Windows: []commands.TimeWindowInput{{StartTime: "09:00", EndTime: "10:00"}}}},
		{name: "range missing end", req: commands.AddSlotsRequest{RecurrenceType: "date_range", StartDate: ptr.To("2024-01-01"), Windows: []commands.TimeWindowInput{{StartTime: "09:00", EndTime: "10:00"}}}},
		{name: "range reversed", req: commands.AddSlotsRequest{RecurrenceType: "date_range", StartDate: ptr.To("2024-01-07"), EndDate: ptr.To("2024-01-01"), Windows: []commands.TimeWindowInput{{StartTime: "09:00", EndTime: "10:00"}}}},
		{name: "no specific dates", req: commands.AddSlotsRequest{RecurrenceType: "specific_dates", Windows: []commands.TimeWindowInput{{StartTime: "09:00", EndTime: "10:00"}}}},
		{name: "malformed specific date", req: commands.AddSlotsRequest{RecurrenceType: "specific_dates", SpecificDates: []string{"2024/03/01"}, Windows: []commands.TimeWindowInput{{StartTime: "09:00", EndTime: "10:00"}}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			h := uowtest.New(ctrl)
			uc := commands.NewSlotUseCase(h.UoW, sharedmock.NewMockMetrics(ctrl), clock.NewMockClock(time.Now()))

			res, err := uc.AddSlots(context.Background(), tc.req)

			assert.Nil(t, res)
			assert.True(t, errs.Is(err, errs.ErrValidation), "got %v", err)
		})
	}
}

func TestSlotCommands_SetActiveAndDelete(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)

	t.Run("toggle", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		h := uowtest.New(ctrl)
		uc := commands.NewSlotUseCase(h.UoW, sharedmock.NewMockMetrics(ctrl), clock.NewMockClock(now))
		id := uuid.New()
		h.Slots.EXPECT().SetActive(gomock.Any(), gomock.Any(), id, false, now).Return(nil)

		require.NoError(t, uc.SetActive(ctx, id, false))
	})

	t.Run("delete missing slot", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		h := uowtest.New(ctrl)
		uc := commands.NewSlotUseCase(h.UoW, sharedmock.NewMockMetrics(ctrl), clock.NewMockClock(now))
		id := uuid.New()
		h.Slots.EXPECT().Delete(gomock.Any(), gomock.Any(), id).Return(infra.NewNotFound("slot not found"))

		err := uc.Delete(ctx, id)

		assert.True(t, errs.Is(err, errs.ErrNotFound))
	})

	t.Run("database failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		h := uowtest.New(ctrl)
		uc := commands.NewSlotUseCase(h.UoW, sharedmock.NewMockMetrics(ctrl), clock.NewMockClock(now))
		id := uuid.New()
		h.Slots.EXPECT().Delete(gomock.Any(), gomock.Any(), id).Return(infra.WrapRepoErr("failed to delete slot", errors.New("boom")))

		err := uc.Delete(ctx, id)

		assert.True(t, errs.Is(err, errs.ErrDatabaseOperationFailed))
	})
}
