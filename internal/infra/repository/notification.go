package repository

import (
	"context"

	"consultation-booking/internal/infra"
	"consultation-booking/internal/infra/db"
	"consultation-booking/internal/pkg/errs"
	"consultation-booking/internal/pkg/pgconv"
	"consultation-booking/internal/usecase/shared"
)

type NotificationRepository struct{}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{}
}

func (r *NotificationRepository) Create(ctx context.Context, tx db.DBTX, n shared.Notification) error {
	payload := n.Payload
	if len(payload) == 0 {
		payload = []byte("{}")
	}

	query, args, err := db.Psql.Insert("notifications").
		Columns("id", "user_id", "event", "payload", "created_at").
		Values(n.ID, n.UserID, n.Event, string(payload), pgconv.TimeToPgtype(n.CreatedAt)).
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSql()
	if err != nil {
		return errs.Wrap(err, "failed to build notification insert")
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr("failed to create notification", err)
	}
	return nil
}
