package ports

import (
	"context"

	"github.com/amirhosseinghanipour/todoapi/internal/domain"
)

// UserStore defines persistence for users. Lookups return nil, nil when absent.
type UserStore interface {
	// Create returns domerrors.ErrEmailExists when the email is taken.
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id domain.UserID) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// Update returns domerrors.ErrUserNotFound when no row matches.
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id domain.UserID) (bool, error)
	Count(ctx context.Context) (int64, error)
}

// TodoStore defines persistence for todos. Lookups return nil, nil when absent.
type TodoStore interface {
	Create(ctx context.Context, todo *domain.Todo) error
	FindByID(ctx context.Context, id domain.TodoID) (*domain.Todo, error)
	// ListByOwner returns the owner's todos, newest first.
	ListByOwner(ctx context.Context, owner domain.UserID, filter domain.TodoFilter) ([]*domain.Todo, error)
	// Update returns domerrors.ErrTodoNotFound when no row matches.
	Update(ctx context.Context, todo *domain.Todo) error
	Delete(ctx context.Context, id domain.TodoID) (bool, error)
	DeleteByOwner(ctx context.Context, owner domain.UserID) (int64, error)
	Count(ctx context.Context) (int64, error)
}
