package queue

import (
	"context"

	"github.com/amirhosseinghanipour/todoapi/internal/application/ports"
)

// NoopEnqueuer is used when REDIS_URL is not configured.
type NoopEnqueuer struct{}

func NewNoopEnqueuer() *NoopEnqueuer {
	return &NoopEnqueuer{}
}

func (q *NoopEnqueuer) EnqueueWelcomeEmail(ctx context.Context, userID, email, name string) error {
	return nil
}

func (q *NoopEnqueuer) EnqueueAudit(ctx context.Context, event ports.AuditEvent) error {
	return nil
}

var _ ports.TaskEnqueuer = (*NoopEnqueuer)(nil)
