package todo

import (
	"context"
	"strings"
	"time"

	"github.com/amirhosseinghanipour/todoapi/internal/application/guard"
	"github.com/amirhosseinghanipour/todoapi/internal/application/ports"
	"github.com/amirhosseinghanipour/todoapi/internal/application/validation"
	"github.com/amirhosseinghanipour/todoapi/internal/domain"
	domerrors "github.com/amirhosseinghanipour/todoapi/internal/domain/errors"
)

// UpdateTodoInput is a partial update; nil fields are left unchanged.
// An empty Description clears it.
type UpdateTodoInput struct {
	ID          domain.TodoID
	RequesterID domain.UserID
	Title       *string
	Description *string
	Completed   *bool
}

type UpdateTodo struct {
	guard *guard.Guard
	todos ports.TodoStore
}

func NewUpdateTodo(g *guard.Guard, todos ports.TodoStore) *UpdateTodo {
	return &UpdateTodo{guard: g, todos: todos}
}

func (uc *UpdateTodo) Execute(ctx context.Context, input UpdateTodoInput) (*domain.Todo, error) {
	t, err := uc.guard.RequireOwnership(ctx, input.ID, input.RequesterID)
	if err != nil {
		return nil, err
	}

	var violations []string
	var title string
	if input.Title != nil {
		title = strings.TrimSpace(*input.Title)
		violations = append(violations, validation.Title(title)...)
	}
	violations = append(violations, validation.Description(input.Description)...)
	if err := domerrors.NewValidationError(violations); err != nil {
		return nil, err
	}

	if input.Title != nil {
		t.Title = title
	}
	if input.Description != nil {
		t.Description = normalizeDescription(input.Description)
	}
	if input.Completed != nil {
		t.Completed = *input.Completed
	}
	t.UpdatedAt = time.Now().UTC()
	if err := uc.todos.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}
