package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"consultation-booking/internal/pkg/clock"
	"consultation-booking/internal/pkg/config"
	"consultation-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const (
	TypeDeliverNotification = "notification:deliver"
	QueueNotifications      = "notifications"
	maxRetry                = 5
)

// DeliverPayload is the task body. ID is fixed at enqueue time so redelivered tasks
// do not create duplicate inbox rows.
type DeliverPayload struct {
	ID        uuid.UUID      `json:"id"`
	UserID    uuid.UUID      `json:"userId"`
	Event     string         `json:"event"`
	Payload   map[string]any `json:"payload"`
	CreatedAt time.Time      `json:"createdAt"`
}

func NewDeliverTask(p DeliverPayload) (*asynq.Task, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal notification payload: %w", err)
	}
	return asynq.NewTask(TypeDeliverNotification, body, asynq.MaxRetry(maxRetry), asynq.Queue(QueueNotifications)), nil
}

func RedisClientOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}
}

type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type AsynqNotifier struct {
	client enqueuer
	clock  clock.Clock
}

func NewAsynqNotifier(client *asynq.Client, clk clock.Clock) *AsynqNotifier {
	return &AsynqNotifier{client: client, clock: clk}
}

func (n *AsynqNotifier) Notify(ctx context.Context, userID uuid.UUID, event string, payload map[string]any) error {
	task, err := NewDeliverTask(DeliverPayload{
		ID:        uuid.New(),
		UserID:    userID,
		Event:     event,
		Payload:   payload,
		CreatedAt: n.clock.Now(),
	})
	if err != nil {
		return err
	}

	info, err := n.client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("enqueue %s for user %s: %w", event, userID, err)
	}
	slog.Debug("notification enqueued", "task_id", info.ID, "event", event, "user_id", userID.String())
	return nil
}

// LogNotifier stands in for the queue when Redis is not configured.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (LogNotifier) Notify(_ context.Context, userID uuid.UUID, event string, payload map[string]any) error {
	slog.Info("notification", "event", event, "user_id", userID.String(), "payload", payload)
	return nil
}

// DeliveryHandler stores delivered notifications in the user's inbox.
type DeliveryHandler struct {
	uow shared.UnitOfWork
}

func NewDeliveryHandler(uow shared.UnitOfWork) *DeliveryHandler {
	return &DeliveryHandler{uow: uow}
}

func (h *DeliveryHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var p DeliverPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("decode %s task: %v: %w", t.Type(), err, asynq.SkipRetry)
	}
	if p.Payload == nil {
		p.Payload = map[string]any{}
	}
	body, err := json.Marshal(p.Payload)
	if err != nil {
		return fmt.Errorf("encode notification body: %v: %w", err, asynq.SkipRetry)
	}

	err = h.uow.WithDB(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Notifications().Create(ctx, tx.DB(), shared.Notification{
			ID:        p.ID,
			UserID:    p.UserID,
			Event:     p.Event,
			Payload:   body,
			CreatedAt: p.CreatedAt,
		})
	})
	if err != nil {
		return err
	}

	slog.Info("notification stored", "event", p.Event, "user_id", p.UserID.String(), "notification_id", p.ID.String())
	return nil
}

func NewServeMux(h *DeliveryHandler) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.Handle(TypeDeliverNotification, h)
	return mux
}
