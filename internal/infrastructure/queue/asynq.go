package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/todoapi/internal/application/ports"
)

const (
	TypeWelcomeEmail = "email:welcome"
	TypeAudit        = "audit:emit"
)

// welcomePayload matches the JSON enqueued by EnqueueWelcomeEmail.
type welcomePayload struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

type taskClient interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
	Close() error
}

type TaskEnqueuer struct {
	client taskClient
	log    zerolog.Logger
}

func NewAsynqEnqueuer(redisOpt asynq.RedisConnOpt, log zerolog.Logger) *TaskEnqueuer {
	return &TaskEnqueuer{client: asynq.NewClient(redisOpt), log: log}
}

func (q *TaskEnqueuer) Close() error {
	return q.client.Close()
}

func (q *TaskEnqueuer) EnqueueWelcomeEmail(ctx context.Context, userID, email, name string) error {
	payload, err := json.Marshal(welcomePayload{UserID: userID, Email: email, Name: name})
	if err != nil {
		return fmt.Errorf("encode welcome payload: %w", err)
	}
	task := asynq.NewTask(TypeWelcomeEmail, payload, asynq.MaxRetry(3))
	if _, err := q.client.EnqueueContext(ctx, task); err != nil {
		q.log.Warn().Err(err).Str("user_id", userID).Msg("enqueue welcome email failed")
		return err
	}
	return nil
}

func (q *TaskEnqueuer) EnqueueAudit(ctx context.Context, event ports.AuditEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode audit payload: %w", err)
	}
	task := asynq.NewTask(TypeAudit, payload, asynq.MaxRetry(5))
	if _, err := q.client.EnqueueContext(ctx, task); err != nil {
		q.log.Warn().Err(err).Str("event", event.Event).Msg("enqueue audit event failed")
		return err
	}
	return nil
}

var _ ports.TaskEnqueuer = (*TaskEnqueuer)(nil)
