package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/amirhosseinghanipour/todoapi/internal/application/ports"
	"github.com/amirhosseinghanipour/todoapi/internal/domain"
	domerrors "github.com/amirhosseinghanipour/todoapi/internal/domain/errors"
	"github.com/amirhosseinghanipour/todoapi/internal/infrastructure/persistence/db"
)

type TodoRepository struct {
	q *db.Queries
}

func NewTodoRepository(q *db.Queries) *TodoRepository {
	return &TodoRepository{q: q}
}

func (r *TodoRepository) Create(ctx context.Context, todo *domain.Todo) error {
	err := r.q.CreateTodo(ctx, db.CreateTodoParams{
		ID:          todo.ID.UUID,
		UserID:      todo.OwnerID.UUID,
		Title:       todo.Title,
		Description: toNullString(todo.Description),
		IsCompleted: todo.Completed,
		CreatedAt:   todo.CreatedAt,
		UpdatedAt:   todo.UpdatedAt,
	})
	if err != nil {
		if isForeignKeyViolation(err) {
			return domerrors.ErrUserNotFound
		}
		return fmt.Errorf("create todo: %w", err)
	}
	return nil
}

func (r *TodoRepository) FindByID(ctx context.Context, id domain.TodoID) (*domain.Todo, error) {
	t, err := r.q.GetTodoByID(ctx, id.UUID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get todo: %w", err)
	}
	return dbTodoToDomain(t), nil
}

func (r *TodoRepository) ListByOwner(ctx context.Context, owner domain.UserID, filter domain.TodoFilter) ([]*domain.Todo, error) {
	var (
		rows []db.Todo
		err  error
	)
	if filter.Completed != nil {
		rows, err = r.q.ListTodosByUserAndStatus(ctx, owner.UUID, *filter.Completed)
	} else {
		rows, err = r.q.ListTodosByUser(ctx, owner.UUID)
	}
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	out := make([]*domain.Todo, 0, len(rows))
	for _, t := range rows {
		out = append(out, dbTodoToDomain(t))
	}
	return out, nil
}

func (r *TodoRepository) Update(ctx context.Context, todo *domain.Todo) error {
	n, err := r.q.UpdateTodo(ctx, db.UpdateTodoParams{
		ID:          todo.ID.UUID,
		Title:       todo.Title,
		Description: toNullString(todo.Description),
		IsCompleted: todo.Completed,
		UpdatedAt:   todo.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("update todo: %w", err)
	}
	if n == 0 {
		return domerrors.ErrTodoNotFound
	}
	return nil
}

func (r *TodoRepository) Delete(ctx context.Context, id domain.TodoID) (bool, error) {
	n, err := r.q.DeleteTodo(ctx, id.UUID)
	if err != nil {
		return false, fmt.Errorf("delete todo: %w", err)
	}
	return n > 0, nil
}

func (r *TodoRepository) DeleteByOwner(ctx context.Context, owner domain.UserID) (int64, error) {
	n, err := r.q.DeleteTodosByUser(ctx, owner.UUID)
	if err != nil {
		return 0, fmt.Errorf("delete todos by owner: %w", err)
	}
	return n, nil
}

func (r *TodoRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.q.CountTodos(ctx)
	if err != nil {
		return 0, fmt.Errorf("count todos: %w", err)
	}
	return n, nil
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func dbTodoToDomain(t db.Todo) *domain.Todo {
	var desc *string
	if t.Description.Valid {
		d := t.Description.String
		desc = &d
	}
	return &domain.Todo{
		ID:          domain.NewTodoID(t.ID),
		OwnerID:     domain.NewUserID(t.UserID),
		Title:       t.Title,
		Description: desc,
		Completed:   t.IsCompleted,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

var _ ports.TodoStore = (*TodoRepository)(nil)
