package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/amirhosseinghanipour/todoapi/internal/application/ports"
)

// Check reports the health of one dependency.
type Check func(ctx context.Context) error

// RedisCheck pings a redis client.
func RedisCheck(client redis.UniversalClient) Check {
	return func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}
}

// HealthHandler serves /health with dependency checks and store counts.
type HealthHandler struct {
	checks map[string]Check
	users  ports.UserStore
	todos  ports.TodoStore
}

// NewHealthHandler creates a health handler. checks may be empty (memory backend, no redis).
func NewHealthHandler(users ports.UserStore, todos ports.TodoStore, checks map[string]Check) *HealthHandler {
	return &HealthHandler{checks: checks, users: users, todos: todos}
}

type healthStats struct {
	Users int64 `json:"users"`
	Todos int64 `json:"todos"`
}

type healthResponse struct {
	Status  string            `json:"status"`
	Checks  map[string]string `json:"checks,omitempty"`
	Stats   *healthStats      `json:"stats,omitempty"`
	Message string            `json:"message,omitempty"`
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	checks := make(map[string]string, len(h.checks))
	allOK := true

	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			checks[name] = "down: " + err.Error()
			allOK = false
		} else {
			checks[name] = "ok"
		}
	}

	resp := healthResponse{Status: "ok", Checks: checks}
	if allOK {
		users, uerr := h.users.Count(ctx)
		todos, terr := h.todos.Count(ctx)
		if uerr == nil && terr == nil {
			resp.Stats = &healthStats{Users: users, Todos: todos}
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if !allOK {
		resp.Status = "unhealthy"
		resp.Message = "one or more checks failed"
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(resp)
		return
	}
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(resp)
}
