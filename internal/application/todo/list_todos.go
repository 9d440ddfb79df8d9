package todo

import (
	"context"

	"github.com/amirhosseinghanipour/todoapi/internal/application/ports"
	"github.com/amirhosseinghanipour/todoapi/internal/domain"
)

type ListTodosInput struct {
	OwnerID domain.UserID
	Filter  domain.TodoFilter
}

type ListTodos struct {
	todos ports.TodoStore
}

func NewListTodos(todos ports.TodoStore) *ListTodos {
	return &ListTodos{todos: todos}
}

// Execute returns only the caller's todos, newest first.
func (uc *ListTodos) Execute(ctx context.Context, input ListTodosInput) ([]*domain.Todo, error) {
	return uc.todos.ListByOwner(ctx, input.OwnerID, input.Filter)
}
