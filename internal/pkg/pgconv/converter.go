package pgconv

import (
	"database/sql"
	"errors"
	"time"

	"consultation-booking/internal/domain/calendar"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

var ErrInvalidDateValue = errors.New("invalid date value in pgtype.Date")

func DateToPgtype(d calendar.Date) pgtype.Date {
	if d.IsZero() {
		return pgtype.Date{Valid: false}
	}
	return pgtype.Date{Time: d.Time(), Valid: true}
}

func DatePtrToPgtype(d *calendar.Date) pgtype.Date {
	if d == nil {
		return pgtype.Date{Valid: false}
	}
	return DateToPgtype(*d)
}

func DateFromPgtype(pd pgtype.Date) (calendar.Date, error) {
	if !pd.Valid || pd.InfinityModifier != pgtype.Finite {
		return calendar.Date{}, ErrInvalidDateValue
	}
	return calendar.DateOf(pd.Time), nil
}

func DatePtrFromPgtype(pd pgtype.Date) (*calendar.Date, error) {
	if !pd.Valid {
		return nil, nil
	}
	d, err := DateFromPgtype(pd)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// DatesToPgtype encodes a DATE[] value. A nil slice becomes an empty array.
func DatesToPgtype(ds []calendar.Date) []pgtype.Date {
	out := make([]pgtype.Date, 0, len(ds))
	for _, d := range ds {
		out = append(out, DateToPgtype(d))
	}
	return out
}

func DatesFromPgtype(pds []pgtype.Date) ([]calendar.Date, error) {
	if len(pds) == 0 {
		return nil, nil
	}
	out := make([]calendar.Date, 0, len(pds))
	for _, pd := range pds {
		d, err := DateFromPgtype(pd)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func StringPtrFromPgtype(pt pgtype.Text) *string {
	if !pt.Valid {
		return nil
	}
	return &pt.String
}

func StringPtrToPgtype(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: *s, Valid: true}
}

func TimeFromPgtype(pt pgtype.Timestamptz) time.Time {
	return pt.Time
}

func TimePtrFromPgtype(pt pgtype.Timestamptz) *time.Time {
	if !pt.Valid {
		return nil
	}
	return &pt.Time
}

func TimeToPgtype(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func TimePtrToPgtype(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{Valid: false}
	}
	return pgtype.Timestamptz{Time: *t, Valid: true}
}

// IsNoRows checks if the error is a "no rows" error from either sql or pgx
func IsNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows)
}
