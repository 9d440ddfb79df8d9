package webhook

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/todoapi/internal/application/ports"
)

// LogEmitter is used when no webhook URL is configured. Audit events stay in the
// service log at debug level and are never delivered anywhere else.
type LogEmitter struct {
	log zerolog.Logger
}

func NewLogEmitter(log zerolog.Logger) *LogEmitter {
	return &LogEmitter{log: log.With().Str("component", "audit").Logger()}
}

func (e *LogEmitter) Emit(_ context.Context, event ports.AuditEvent) error {
	ev := e.log.Debug().
		Str("event", event.Event).
		Bool("success", event.Success).
		Time("at", event.At)
	if event.UserID != "" {
		ev = ev.Str("user_id", event.UserID)
	}
	if event.RequestID != "" {
		ev = ev.Str("request_id", event.RequestID)
	}
	if event.Err != "" {
		ev = ev.Str("error", event.Err)
	}
	ev.Msg("audit event not forwarded")
	return nil
}

var _ ports.WebhookEmitter = (*LogEmitter)(nil)
