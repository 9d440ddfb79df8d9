package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

const todoColumns = `id, user_id, title, description, is_completed, created_at, updated_at`

const createTodo = `INSERT INTO todos (id, user_id, title, description, is_completed, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

type CreateTodoParams struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Title       string
	Description sql.NullString
	IsCompleted bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (q *Queries) CreateTodo(ctx context.Context, arg CreateTodoParams) error {
	_, err := q.db.ExecContext(ctx, createTodo,
		arg.ID, arg.UserID, arg.Title, arg.Description, arg.IsCompleted, arg.CreatedAt, arg.UpdatedAt)
	return err
}

const getTodoByID = `SELECT ` + todoColumns + ` FROM todos WHERE id = $1`

func (q *Queries) GetTodoByID(ctx context.Context, id uuid.UUID) (Todo, error) {
	row := q.db.QueryRowContext(ctx, getTodoByID, id)
	return scanTodo(row)
}

const listTodosByUser = `SELECT ` + todoColumns + ` FROM todos WHERE user_id = $1
ORDER BY created_at DESC, id DESC`

func (q *Queries) ListTodosByUser(ctx context.Context, userID uuid.UUID) ([]Todo, error) {
	rows, err := q.db.QueryContext(ctx, listTodosByUser, userID)
	if err != nil {
		return nil, err
	}
	return collectTodos(rows)
}

const listTodosByUserAndStatus = `SELECT ` + todoColumns + ` FROM todos WHERE user_id = $1 AND is_completed = $2
ORDER BY created_at DESC, id DESC`

func (q *Queries) ListTodosByUserAndStatus(ctx context.Context, userID uuid.UUID, completed bool) ([]Todo, error) {
	rows, err := q.db.QueryContext(ctx, listTodosByUserAndStatus, userID, completed)
	if err != nil {
		return nil, err
	}
	return collectTodos(rows)
}

const updateTodo = `UPDATE todos SET title = $2, description = $3, is_completed = $4, updated_at = $5
WHERE id = $1`

type UpdateTodoParams struct {
	ID          uuid.UUID
	Title       string
	Description sql.NullString
	IsCompleted bool
	UpdatedAt   time.Time
}

func (q *Queries) UpdateTodo(ctx context.Context, arg UpdateTodoParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, updateTodo, arg.ID, arg.Title, arg.Description, arg.IsCompleted, arg.UpdatedAt)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const deleteTodo = `DELETE FROM todos WHERE id = $1`

func (q *Queries) DeleteTodo(ctx context.Context, id uuid.UUID) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteTodo, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const deleteTodosByUser = `DELETE FROM todos WHERE user_id = $1`

func (q *Queries) DeleteTodosByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteTodosByUser, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const countTodos = `SELECT COUNT(*) FROM todos`

func (q *Queries) CountTodos(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countTodos).Scan(&n)
	return n, err
}

func scanTodo(row rowScanner) (Todo, error) {
	var t Todo
	err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.IsCompleted, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func collectTodos(rows *sql.Rows) ([]Todo, error) {
	defer rows.Close()
	var items []Todo
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
