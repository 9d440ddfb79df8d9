// Package guard resolves the caller of a request and enforces todo ownership.
package guard

import (
	"context"
	"fmt"
	"strings"

	"github.com/amirhosseinghanipour/todoapi/internal/application/ports"
	"github.com/amirhosseinghanipour/todoapi/internal/domain"
	domerrors "github.com/amirhosseinghanipour/todoapi/internal/domain/errors"
)

const bearerPrefix = "Bearer "

type Guard struct {
	tokens ports.TokenService
	todos  ports.TodoStore
}

func New(tokens ports.TokenService, todos ports.TodoStore) *Guard {
	return &Guard{tokens: tokens, todos: todos}
}

// Authenticate returns the subject of a "Bearer <token>" header.
// It fails with ErrMissingToken for an absent or malformed header and ErrInvalidToken otherwise.
func (g *Guard) Authenticate(header string) (domain.UserID, error) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return domain.UserID{}, domerrors.ErrMissingToken
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	if token == "" {
		return domain.UserID{}, domerrors.ErrMissingToken
	}
	subject, ok := g.tokens.ExtractSubject(token)
	if !ok {
		return domain.UserID{}, domerrors.ErrInvalidToken
	}
	return subject, nil
}

// AuthorizeOwnership reports whether requester owns the resource.
func AuthorizeOwnership(owner, requester domain.UserID) bool {
	return owner == requester
}

// RequireOwnership loads the todo and checks it belongs to requester.
// Existence is checked first: a missing id is ErrTodoNotFound for every caller.
func (g *Guard) RequireOwnership(ctx context.Context, id domain.TodoID, requester domain.UserID) (*domain.Todo, error) {
	todo, err := g.todos.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load todo %s: %w", id, err)
	}
	if todo == nil {
		return nil, domerrors.ErrTodoNotFound
	}
	if !AuthorizeOwnership(todo.OwnerID, requester) {
		return nil, domerrors.ErrForbidden
	}
	return todo, nil
}
