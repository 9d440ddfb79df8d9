package todo

import (
	"context"

	"github.com/amirhosseinghanipour/todoapi/internal/application/guard"
	"github.com/amirhosseinghanipour/todoapi/internal/domain"
)

type GetTodo struct {
	guard *guard.Guard
}

func NewGetTodo(g *guard.Guard) *GetTodo {
	return &GetTodo{guard: g}
}

func (uc *GetTodo) Execute(ctx context.Context, id domain.TodoID, requester domain.UserID) (*domain.Todo, error) {
	return uc.guard.RequireOwnership(ctx, id, requester)
}
