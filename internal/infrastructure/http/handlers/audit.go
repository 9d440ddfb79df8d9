package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/todoapi/internal/application/ports"
)

// AuditLog logs auth events (user_id, IP, request id).
func AuditLog(log zerolog.Logger, r *http.Request, event string, userID string, success bool, errMsg string) {
	ev := log.Info()
	if !success {
		ev = log.Warn()
	}
	ev.
		Str("event", event).
		Str("user_id", userID).
		Str("ip", r.RemoteAddr).
		Str("request_id", middleware.GetReqID(r.Context())).
		Bool("success", success)
	if errMsg != "" {
		ev.Str("error", errMsg)
	}
	ev.Msg("auth_audit")
}

// AuditEmit logs the event and, if tasks is non-nil, queues it for webhook delivery.
func AuditEmit(log zerolog.Logger, r *http.Request, tasks ports.TaskEnqueuer, event, userID string, success bool, errMsg string) {
	AuditLog(log, r, event, userID, success, errMsg)
	if tasks == nil {
		return
	}
	ev := ports.AuditEvent{
		Event:     event,
		UserID:    userID,
		IP:        r.RemoteAddr,
		RequestID: middleware.GetReqID(r.Context()),
		Success:   success,
		Err:       errMsg,
		At:        time.Now().UTC(),
	}
	// The request context may be cancelled once the response is written.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), 2*time.Second)
	defer cancel()
	if err := tasks.EnqueueAudit(ctx, ev); err != nil {
		log.Warn().Err(err).Str("event", event).Msg("audit event not queued")
	}
}
