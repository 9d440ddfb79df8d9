package todo

import (
	"context"
	"strings"
	"time"

	"github.com/amirhosseinghanipour/todoapi/internal/application/ports"
	"github.com/amirhosseinghanipour/todoapi/internal/application/validation"
	"github.com/amirhosseinghanipour/todoapi/internal/domain"
	domerrors "github.com/amirhosseinghanipour/todoapi/internal/domain/errors"
)

type CreateTodoInput struct {
	OwnerID     domain.UserID
	Title       string
	Description *string
}

type CreateTodo struct {
	todos ports.TodoStore
	users ports.UserStore
}

func NewCreateTodo(todos ports.TodoStore, users ports.UserStore) *CreateTodo {
	return &CreateTodo{todos: todos, users: users}
}

func (uc *CreateTodo) Execute(ctx context.Context, input CreateTodoInput) (*domain.Todo, error) {
	title := strings.TrimSpace(input.Title)
	if err := domerrors.NewValidationError(validation.Todo(title, input.Description)); err != nil {
		return nil, err
	}
	owner, err := uc.users.FindByID(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, domerrors.ErrUserNotFound
	}
	now := time.Now().UTC()
	t := &domain.Todo{
		ID:          domain.GenerateTodoID(),
		OwnerID:     input.OwnerID,
		Title:       title,
		Description: normalizeDescription(input.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.todos.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// normalizeDescription maps an empty description to none.
func normalizeDescription(d *string) *string {
	if d == nil || *d == "" {
		return nil
	}
	out := *d
	return &out
}
