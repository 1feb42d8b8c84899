//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// SeedSettings overwrites the singleton settings row.
func SeedSettings(t *testing.T, db DBLike, feeCents int64, currency string, durationMinutes int, active bool) {
	t.Helper()

	_, err := db.Exec(context.Background(), `
		INSERT INTO consultation_settings (id, fee_amount_cents, fee_currency, duration_minutes, is_active, description, updated_at)
		VALUES (1, $1, $2, $3, $4, '', now())
		ON CONFLICT (id) DO UPDATE SET
		    fee_amount_cents = EXCLUDED.fee_amount_cents,
		    fee_currency = EXCLUDED.fee_currency,
		    duration_minutes = EXCLUDED.duration_minutes,
		    is_active = EXCLUDED.is_active,
		    updated_at = now()`,
		feeCents, currency, durationMinutes, active)
	require.NoError(t, err)
}

// CreateWeeklySlot inserts an active weekly window and returns its id.
func CreateWeeklySlot(t *testing.T, db DBLike, dayOfWeek int, start, end string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(), `
		INSERT INTO slots (id, day_of_week, start_time, end_time, is_active, recurrence_type)
		VALUES ($1, $2, $3, $4, true, 'weekly')`,
		id, dayOfWeek, start, end)
	require.NoError(t, err)
	return id
}

// CountBookings counts rows for a date and start time, optionally restricted to statuses.
func CountBookings(t *testing.T, db DBLike, date, start string, statuses ...string) int {
	t.Helper()

	query := "SELECT count(*) FROM bookings WHERE booking_date = $1 AND start_time = $2"
	args := []any{date, start}
	if len(statuses) > 0 {
		query += " AND status = ANY($3)"
		args = append(args, statuses)
	}

	var n int
	require.NoError(t, db.QueryRow(context.Background(), query, args...).Scan(&n))
	return n
}

// SeedReferenceData leaves consultations switched on with the default fee.
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO consultation_settings (id, fee_amount_cents, fee_currency, duration_minutes, is_active, description)
		VALUES (1, 5000, 'USD', 60, true, 'One-to-one career consultation')
		ON CONFLICT (id) DO NOTHING;
	`)
	return err
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// ResetDB truncates every table and reseeds reference data.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
