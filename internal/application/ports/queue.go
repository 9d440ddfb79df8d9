package ports

import "context"

// TaskEnqueuer enqueues async tasks (email, webhook).
type TaskEnqueuer interface {
	EnqueueWelcomeEmail(ctx context.Context, userID, email, name string) error
	EnqueueAudit(ctx context.Context, event AuditEvent) error
}
