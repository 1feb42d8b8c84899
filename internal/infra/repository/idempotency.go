package repository

import (
	"context"
	"time"

	"consultation-booking/internal/infra"
	"consultation-booking/internal/infra/db"
	"consultation-booking/internal/infra/repository/converter"
	"consultation-booking/internal/pkg/errs"
	"consultation-booking/internal/pkg/pgconv"
	"consultation-booking/internal/usecase/shared"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type IdempotencyRepository struct{}

func NewIdempotencyRepository() *IdempotencyRepository {
	return &IdempotencyRepository{}
}

// TryInsert claims the key. An expired record left by an earlier request is taken over.
func (r *IdempotencyRepository) TryInsert(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, requestHash string, expiresAt, now time.Time) (bool, error) {
	query, args, err := tryInsertIdempotencyQuery(key, userID, requestHash, expiresAt, now)
	if err != nil {
		return false, errs.Wrap(err, "failed to build idempotency insert")
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return false, infra.WrapRepoErr("failed to try insert idempotency key", err)
	}
	return tag.RowsAffected() == 1, nil
}

func tryInsertIdempotencyQuery(key, userID uuid.UUID, requestHash string, expiresAt, now time.Time) (string, []any, error) {
	ts := pgconv.TimeToPgtype(now)
	return db.Psql.Insert("idempotency_keys").
		Columns("key", "user_id", "request_hash", "status", "expires_at", "created_at", "updated_at").
		Values(key, userID, requestHash, shared.IdempotencyStatusProcessing, pgconv.TimeToPgtype(expiresAt), ts, ts).
		Suffix(`ON CONFLICT (key, user_id) DO UPDATE SET
			request_hash = EXCLUDED.request_hash,
			status = EXCLUDED.status,
			booking_id = NULL,
			expires_at = EXCLUDED.expires_at,
			created_at = EXCLUDED.created_at,
			updated_at = EXCLUDED.updated_at
			WHERE idempotency_keys.expires_at < ?`, ts).
		ToSql()
}

func (r *IdempotencyRepository) Get(ctx context.Context, tx db.DBTX, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	query, args, err := db.Psql.Select(converter.IdempotencyColumns...).
		From("idempotency_keys").
		Where(sq.Eq{"key": key, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, errs.Wrap(err, "failed to build idempotency query")
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get idempotency key", err)
	}
	rec, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[converter.IdempotencyRow])
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get idempotency key", err)
	}

	return &shared.IdempotencyRecord{
		Key:         rec.Key,
		UserID:      rec.UserID,
		Status:      rec.Status,
		RequestHash: rec.RequestHash,
		BookingID:   converter.UUIDPtrFromPgtype(rec.BookingID),
		ExpiresAt:   pgconv.TimeFromPgtype(rec.ExpiresAt),
	}, nil
}

func (r *IdempotencyRepository) Complete(ctx context.Context, tx db.DBTX, key, userID, bookingID uuid.UUID) error {
	query, args, err := db.Psql.Update("idempotency_keys").
		Set("status", shared.IdempotencyStatusCompleted).
		Set("booking_id", bookingID).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"key": key, "user_id": userID}).
		ToSql()
	if err != nil {
		return errs.Wrap(err, "failed to build idempotency update")
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to complete idempotency key", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewNotFound("idempotency key not found")
	}
	return nil
}

// Release drops a key still marked processing so the client can retry after a failure.
func (r *IdempotencyRepository) Release(ctx context.Context, tx db.DBTX, key, userID uuid.UUID) error {
	query, args, err := db.Psql.Delete("idempotency_keys").
		Where(sq.Eq{"key": key, "user_id": userID, "status": shared.IdempotencyStatusProcessing}).
		ToSql()
	if err != nil {
		return errs.Wrap(err, "failed to build idempotency delete")
	}
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr("failed to release idempotency key", err)
	}
	return nil
}
