package todo

import (
	"context"

	"github.com/amirhosseinghanipour/todoapi/internal/application/guard"
	"github.com/amirhosseinghanipour/todoapi/internal/application/ports"
	"github.com/amirhosseinghanipour/todoapi/internal/domain"
	domerrors "github.com/amirhosseinghanipour/todoapi/internal/domain/errors"
)

type DeleteTodo struct {
	guard *guard.Guard
	todos ports.TodoStore
}

func NewDeleteTodo(g *guard.Guard, todos ports.TodoStore) *DeleteTodo {
	return &DeleteTodo{guard: g, todos: todos}
}

func (uc *DeleteTodo) Execute(ctx context.Context, id domain.TodoID, requester domain.UserID) error {
	if _, err := uc.guard.RequireOwnership(ctx, id, requester); err != nil {
		return err
	}
	deleted, err := uc.todos.Delete(ctx, id)
	if err != nil {
		return err
	}
	// Removed between the ownership check and the delete.
	if !deleted {
		return domerrors.ErrTodoNotFound
	}
	return nil
}
