package todo

import (
	"context"
	"time"

	"github.com/amirhosseinghanipour/todoapi/internal/application/guard"
	"github.com/amirhosseinghanipour/todoapi/internal/application/ports"
	"github.com/amirhosseinghanipour/todoapi/internal/domain"
)

// SetCompletion backs the complete and uncomplete endpoints.
type SetCompletion struct {
	guard *guard.Guard
	todos ports.TodoStore
}

func NewSetCompletion(g *guard.Guard, todos ports.TodoStore) *SetCompletion {
	return &SetCompletion{guard: g, todos: todos}
}

func (uc *SetCompletion) Execute(ctx context.Context, id domain.TodoID, requester domain.UserID, completed bool) (*domain.Todo, error) {
	t, err := uc.guard.RequireOwnership(ctx, id, requester)
	if err != nil {
		return nil, err
	}
	if t.Completed == completed {
		return t, nil
	}
	t.Completed = completed
	t.UpdatedAt = time.Now().UTC()
	if err := uc.todos.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}
