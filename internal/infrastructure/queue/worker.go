package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/todoapi/internal/application/ports"
)

// Worker runs the Asynq task handlers.
type Worker struct {
	srv *asynq.Server
	mux *asynq.ServeMux
}

// NewWorker creates an Asynq server and registers handlers. Call Run() to start.
func NewWorker(redisOpt asynq.RedisConnOpt, emitter ports.WebhookEmitter, log zerolog.Logger) *Worker {
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 2,
		LogLevel:    asynq.WarnLevel,
	})
	return &Worker{srv: srv, mux: newServeMux(emitter, log)}
}

func newServeMux(emitter ports.WebhookEmitter, log zerolog.Logger) *asynq.ServeMux {
	h := &handlers{emitter: emitter, log: log}
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeWelcomeEmail, h.handleWelcomeEmail)
	mux.HandleFunc(TypeAudit, h.handleAudit)
	return mux
}

type handlers struct {
	emitter ports.WebhookEmitter
	log     zerolog.Logger
}

func (h *handlers) handleWelcomeEmail(ctx context.Context, t *asynq.Task) error {
	var p welcomePayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		h.log.Error().Err(err).Msg("welcome task payload invalid")
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}
	h.log.Info().
		Str("user_id", p.UserID).
		Str("email", p.Email).
		Str("name", p.Name).
		Msg("welcome email (log only; no mail transport configured)")
	return nil
}

func (h *handlers) handleAudit(ctx context.Context, t *asynq.Task) error {
	var ev ports.AuditEvent
	if err := json.Unmarshal(t.Payload(), &ev); err != nil {
		h.log.Error().Err(err).Msg("audit task payload invalid")
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}
	if err := h.emitter.Emit(ctx, ev); err != nil {
		h.log.Warn().Err(err).Str("event", ev.Event).Msg("audit webhook delivery failed")
		return err
	}
	return nil
}

// Run blocks until shutdown. Use Shutdown for graceful stop.
func (w *Worker) Run() error {
	return w.srv.Run(w.mux)
}

// Shutdown stops the worker.
func (w *Worker) Shutdown() {
	w.srv.Shutdown()
}
