//go:build unit

package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"consultation-booking/internal/domain/booking"
	"consultation-booking/internal/domain/calendar"
	"consultation-booking/internal/domain/settings"
	"consultation-booking/internal/domain/slot"
	"consultation-booking/internal/infra"
	"consultation-booking/internal/usecase/shared"
	"consultation-booking/tests/common/builder"
	dbmock "consultation-booking/tests/mock/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var now = time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)

func TestListBookingsQuery(t *testing.T) {
	playerID := uuid.New()
	from := calendar.MustParseDate("2024-02-01")
	to := calendar.MustParseDate("2024-02-29")
	after := time.Date(2024, 2, 5, 9, 30, 0, 0, time.UTC)
	afterID := uuid.New()

	testCases := []struct {
		name         string
		filter       shared.BookingFilter
		contains     []string
		notContains  []string
		expectedArgs int
	}{
		{
			name:         "no filter",
			filter:       shared.BookingFilter{},
			contains:     []string{"FROM bookings", "ORDER BY booking_date ASC, start_time ASC, id ASC"},
			notContains:  []string{"WHERE", "LIMIT"},
			expectedArgs: 0,
		},
		{
			name: "player with live statuses",
			filter: shared.BookingFilter{
				PlayerID: &playerID,
				Statuses: booking.LiveStatuses(),
			},
			contains:     []string{"player_id = $1", "status IN ($2,$3)"},
			expectedArgs: 3,
		},
		{
			name:         "date range with limit",
			filter:       shared.BookingFilter{From: &from, To: &to, Limit: 21},
			contains:     []string{"booking_date >= $1", "booking_date <= $2", "LIMIT 21"},
			expectedArgs: 2,
		},
		{
			name:         "single date",
			filter:       shared.BookingFilter{Date: &from},
			contains:     []string{"booking_date = $1"},
			expectedArgs: 1,
		},
		{
			name:         "ascending keyset",
			filter:       shared.BookingFilter{AfterStart: &after, AfterID: afterID},
			contains:     []string{"(booking_date, start_time, id) > ($1, $2, $3)"},
			expectedArgs: 3,
		},
		{
			name:         "descending keyset",
			filter:       shared.BookingFilter{AfterStart: &after, AfterID: afterID, Descending: true},
			contains:     []string{"(booking_date, start_time, id) < ($1, $2, $3)", "ORDER BY booking_date DESC, start_time DESC, id DESC"},
			expectedArgs: 3,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			query, args, err := listBookingsQuery(tc.filter)

			require.NoError(t, err)
			for _, s := range tc.contains {
				assert.Contains(t, query, s)
			}
			for _, s := range tc.notContains {
				assert.NotContains(t, query, s)
			}
			assert.Len(t, args, tc.expectedArgs)
		})
	}

	t.Run("keyset cursor encodes start as HH:MM", func(t *testing.T) {
		_, args, err := listBookingsQuery(shared.BookingFilter{AfterStart: &after, AfterID: afterID})
		require.NoError(t, err)
		assert.Equal(t, "09:30", args[1])
		assert.Equal(t, afterID, args[2])
	})
}

func TestInsertSlotsQuery(t *testing.T) {
	t.Run("empty batch builds nothing", func(t *testing.T) {
		query, args, err := insertSlotsQuery(nil, now)
		require.NoError(t, err)
		assert.Empty(t, query)
		assert.Empty(t, args)
	})

	t.Run("one values tuple per draft", func(t *testing.T) {
		drafts := []slot.Draft{
			{DayOfWeek: 1, Window: calendar.MustParseTimeWindow("09:00", "10:00"), RecurrenceType: slot.RecurrenceWeekly},
			{DayOfWeek: 3, Window: calendar.MustParseTimeWindow("09:00", "10:00"), RecurrenceType: slot.RecurrenceWeekly},
		}
		query, args, err := insertSlotsQuery(drafts, now)
		require.NoError(t, err)
		assert.Contains(t, query, "INSERT INTO slots")
		assert.Len(t, args, 2*11)
		assert.Equal(t, int16(3), args[11+1])
		assert.Equal(t, "09:00", args[2])
	})
}

func TestSlotRepository_InsertBatch(t *testing.T) {
	ctx := context.Background()
	draft := slot.Draft{DayOfWeek: 1, Window: calendar.MustParseTimeWindow("09:00", "10:00"), RecurrenceType: slot.RecurrenceWeekly}

	testCases := []struct {
		name        string
		drafts      []slot.Draft
		setupMock   func(m *dbmock.MockDBTX)
		expected    int
		expectedErr infra.RepositoryErrorKind
	}{
		{
			name:      "empty batch skips the database",
			drafts:    nil,
			setupMock: func(m *dbmock.MockDBTX) {},
			expected:  0,
		},
		{
			name:   "rows affected is reported",
			drafts: []slot.Draft{draft, draft},
			setupMock: func(m *dbmock.MockDBTX) {
				m.EXPECT().Exec(ctx, gomock.Any(), gomock.Any()).Return(pgconn.NewCommandTag("INSERT 0 2"), nil)
			},
			expected: 2,
		},
		{
			name:   "check violation is a db failure",
			drafts: []slot.Draft{draft},
			setupMock: func(m *dbmock.MockDBTX) {
				m.EXPECT().Exec(ctx, gomock.Any(), gomock.Any()).Return(pgconn.CommandTag{}, &pgconn.PgError{Code: "23514"})
			},
			expectedErr: infra.KindDBFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockDB := dbmock.NewMockDBTX(ctrl)
			tc.setupMock(mockDB)

			n, err := NewSlotRepository().InsertBatch(ctx, mockDB, tc.drafts, now)

			if tc.expectedErr != "" {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tc.expectedErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, n)
		})
	}
}

func TestSlotRepository_SetActiveAndDelete(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	testCases := []struct {
		name        string
		tag         pgconn.CommandTag
		execErr     error
		expectedErr infra.RepositoryErrorKind
	}{
		{name: "success", tag: pgconn.NewCommandTag("UPDATE 1")},
		{name: "unknown id", tag: pgconn.NewCommandTag("UPDATE 0"), expectedErr: infra.KindNotFound},
		{name: "database error", execErr: errors.New("connection reset"), expectedErr: infra.KindDBFailure},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockDB := dbmock.NewMockDBTX(ctrl)
			mockDB.EXPECT().Exec(ctx, gomock.Any(), gomock.Any()).Return(tc.tag, tc.execErr).Times(2)

			repo := NewSlotRepository()
			errs := []error{
				repo.SetActive(ctx, mockDB, id, false, now),
				repo.Delete(ctx, mockDB, id),
			}

			for _, err := range errs {
				if tc.expectedErr == "" {
					assert.NoError(t, err)
					continue
				}
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tc.expectedErr))
			}
		})
	}
}

func TestBookingRepository_Insert(t *testing.T) {
	ctx := context.Background()
	b, err := builder.NewBookingBuilder().BuildDomain()
	require.NoError(t, err)

	testCases := []struct {
		name        string
		execErr     error
		expectedErr infra.RepositoryErrorKind
		constraint  string
	}{
		{name: "success"},
		{
			name:        "live slot already held",
			execErr:     &pgconn.PgError{Code: "23505", ConstraintName: "bookings_live_slot_uniq"},
			expectedErr: infra.KindDuplicateKey,
			constraint:  "bookings_live_slot_uniq",
		},
		{name: "database error", execErr: errors.New("timeout"), expectedErr: infra.KindDBFailure},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockDB := dbmock.NewMockDBTX(ctrl)
			mockDB.EXPECT().Exec(ctx, gomock.Any(), gomock.Any()).Return(pgconn.NewCommandTag("INSERT 0 1"), tc.execErr)

			err := NewBookingRepository().Insert(ctx, mockDB, b)

			if tc.expectedErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, infra.IsKind(err, tc.expectedErr))
			assert.Equal(t, tc.constraint, infra.ConstraintName(err))
		})
	}
}

func TestBookingRepository_UpdateStatus_NotFound(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	mockDB := dbmock.NewMockDBTX(ctrl)
	mockDB.EXPECT().Exec(ctx, gomock.Any(), gomock.Any()).Return(pgconn.NewCommandTag("UPDATE 0"), nil)

	b := builder.NewBookingBuilder().WithStatus(booking.StatusConfirmed).BuildReconstructed()
	err := NewBookingRepository().UpdateStatus(ctx, mockDB, b)

	require.Error(t, err)
	assert.True(t, infra.IsKind(err, infra.KindNotFound))
}

func TestIdempotencyRepository_TryInsert(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name     string
		tag      pgconn.CommandTag
		expected bool
	}{
		{name: "claimed new key", tag: pgconn.NewCommandTag("INSERT 0 1"), expected: true},
		{name: "unexpired key already held", tag: pgconn.NewCommandTag("INSERT 0 0"), expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockDB := dbmock.NewMockDBTX(ctrl)
			mockDB.EXPECT().Exec(ctx, gomock.Any(), gomock.Any()).Return(tc.tag, nil)

			ok, err := NewIdempotencyRepository().TryInsert(ctx, mockDB, uuid.New(), uuid.New(), "hash", now.Add(24*time.Hour), now)

			require.NoError(t, err)
			assert.Equal(t, tc.expected, ok)
		})
	}

	t.Run("expired keys are taken over", func(t *testing.T) {
		query, args, err := tryInsertIdempotencyQuery(uuid.New(), uuid.New(), "hash", now.Add(time.Hour), now)
		require.NoError(t, err)
		assert.Contains(t, query, "ON CONFLICT (key, user_id) DO UPDATE")
		assert.Contains(t, query, "WHERE idempotency_keys.expires_at < $8")
		assert.Len(t, args, 8)
	})
}

func TestUpsertSettingsQuery(t *testing.T) {
	s, err := settings.New(5000, "usd", 45, true, "Career consultation", now)
	require.NoError(t, err)

	query, args, err := upsertSettingsQuery(s)

	require.NoError(t, err)
	assert.Contains(t, query, "INSERT INTO consultation_settings")
	assert.Contains(t, query, "ON CONFLICT (id) DO UPDATE")
	assert.Equal(t, []any{settingsRowID, int64(5000), "USD", int32(45), true, "Career consultation"}, args[:6])
}
