package user

import (
	"context"
	"fmt"

	"github.com/amirhosseinghanipour/todoapi/internal/application/ports"
	"github.com/amirhosseinghanipour/todoapi/internal/domain"
	domerrors "github.com/amirhosseinghanipour/todoapi/internal/domain/errors"
)

type DeleteAccountResult struct {
	DeletedTodos int64
}

// DeleteAccount removes the caller's todos and then the caller.
type DeleteAccount struct {
	users ports.UserStore
	todos ports.TodoStore
}

func NewDeleteAccount(users ports.UserStore, todos ports.TodoStore) *DeleteAccount {
	return &DeleteAccount{users: users, todos: todos}
}

func (uc *DeleteAccount) Execute(ctx context.Context, id domain.UserID) (*DeleteAccountResult, error) {
	n, err := uc.todos.DeleteByOwner(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("delete todos of %s: %w", id, err)
	}
	deleted, err := uc.users.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("delete user %s: %w", id, err)
	}
	if !deleted {
		return nil, domerrors.ErrUserNotFound
	}
	return &DeleteAccountResult{DeletedTodos: n}, nil
}
