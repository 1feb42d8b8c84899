package repository

import (
	"context"
	"time"

	"consultation-booking/internal/domain/slot"
	"consultation-booking/internal/infra"
	"consultation-booking/internal/infra/db"
	"consultation-booking/internal/infra/repository/converter"
	"consultation-booking/internal/pkg/errs"
	"consultation-booking/internal/pkg/pgconv"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type SlotRepository struct{}

func NewSlotRepository() *SlotRepository {
	return &SlotRepository{}
}

func selectSlots() sq.SelectBuilder {
	return db.Psql.Select(converter.SlotColumns...).From("slots")
}

func (r *SlotRepository) ListActive(ctx context.Context, tx db.DBTX) ([]*slot.Slot, error) {
	query, args, err := selectSlots().
		Where(sq.Eq{"is_active": true}).
		OrderBy("day_of_week", "start_time", "end_time").
		ToSql()
	if err != nil {
		return nil, errs.Wrap(err, "failed to build active slots query")
	}
	return r.list(ctx, tx, "failed to list active slots", query, args)
}

func (r *SlotRepository) ListAll(ctx context.Context, tx db.DBTX) ([]*slot.Slot, error) {
	query, args, err := selectSlots().
		OrderBy("day_of_week", "start_time", "end_time", "created_at").
		ToSql()
	if err != nil {
		return nil, errs.Wrap(err, "failed to build slots query")
	}
	return r.list(ctx, tx, "failed to list slots", query, args)
}

func (r *SlotRepository) list(ctx context.Context, tx db.DBTX, msg, query string, args []any) ([]*slot.Slot, error) {
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(msg, err)
	}
	records, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[converter.SlotRow])
	if err != nil {
		return nil, infra.WrapRepoErr(msg, err)
	}

	slots := make([]*slot.Slot, 0, len(records))
	for _, rec := range records {
		s, err := converter.SlotFromRow(rec)
		if err != nil {
			return nil, infra.WrapRepoErr(msg, err)
		}
		slots = append(slots, s)
	}
	return slots, nil
}

func (r *SlotRepository) FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*slot.Slot, error) {
	query, args, err := selectSlots().Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, errs.Wrap(err, "failed to build slot query")
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find slot", err)
	}
	rec, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[converter.SlotRow])
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find slot", err)
	}

	s, err := converter.SlotFromRow(rec)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode slot", err)
	}
	return s, nil
}

// InsertBatch writes all drafts in one statement and returns the number of rows created.
func (r *SlotRepository) InsertBatch(ctx context.Context, tx db.DBTX, drafts []slot.Draft, now time.Time) (int, error) {
	query, args, err := insertSlotsQuery(drafts, now)
	if err != nil {
		return 0, errs.Wrap(err, "failed to build slot insert")
	}
	if query == "" {
		return 0, nil
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to insert slots", err)
	}
	return int(tag.RowsAffected()), nil
}

func insertSlotsQuery(drafts []slot.Draft, now time.Time) (string, []any, error) {
	if len(drafts) == 0 {
		return "", nil, nil
	}
	ts := pgconv.TimeToPgtype(now)
	b := db.Psql.Insert("slots").Columns(converter.SlotColumns...)
	for _, d := range drafts {
		b = b.Values(converter.DraftToValues(uuid.New(), d, ts)...)
	}
	return b.ToSql()
}

func (r *SlotRepository) SetActive(ctx context.Context, tx db.DBTX, id uuid.UUID, active bool, now time.Time) error {
	query, args, err := db.Psql.Update("slots").
		Set("is_active", active).
		Set("updated_at", pgconv.TimeToPgtype(now)).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return errs.Wrap(err, "failed to build slot update")
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to update slot", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewNotFound("slot not found")
	}
	return nil
}

func (r *SlotRepository) Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	query, args, err := db.Psql.Delete("slots").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return errs.Wrap(err, "failed to build slot delete")
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to delete slot", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewNotFound("slot not found")
	}
	return nil
}
