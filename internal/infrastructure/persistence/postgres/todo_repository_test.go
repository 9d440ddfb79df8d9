package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhosseinghanipour/todoapi/internal/domain"
	domerrors "github.com/amirhosseinghanipour/todoapi/internal/domain/errors"
)

var todoCols = []string{"id", "user_id", "title", "description", "is_completed", "created_at", "updated_at"}

func sampleTodo() *domain.Todo {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	desc := "2 litres"
	return &domain.Todo{
		ID:          domain.GenerateTodoID(),
		OwnerID:     domain.GenerateUserID(),
		Title:       "Buy milk",
		Description: &desc,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestTodoRepositoryCreate(t *testing.T) {
	q, mock := newMock(t)
	repo := NewTodoRepository(q)
	td := sampleTodo()

	mock.ExpectExec(`INSERT INTO todos`).
		WithArgs(td.ID.UUID, td.OwnerID.UUID, "Buy milk", "2 litres", false, td.CreatedAt, td.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Create(context.Background(), td))

	td.Description = nil
	mock.ExpectExec(`INSERT INTO todos`).
		WithArgs(td.ID.UUID, td.OwnerID.UUID, "Buy milk", nil, false, td.CreatedAt, td.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Create(context.Background(), td))
}

func TestTodoRepositoryCreateUnknownOwner(t *testing.T) {
	q, mock := newMock(t)
	repo := NewTodoRepository(q)

	mock.ExpectExec(`INSERT INTO todos`).WillReturnError(&pgconn.PgError{Code: "23503"})
	assert.ErrorIs(t, repo.Create(context.Background(), sampleTodo()), domerrors.ErrUserNotFound)
}

func TestTodoRepositoryFindByID(t *testing.T) {
	q, mock := newMock(t)
	repo := NewTodoRepository(q)
	td := sampleTodo()

	mock.ExpectQuery(`SELECT (.+) FROM todos WHERE id = \$1`).
		WithArgs(td.ID.UUID).
		WillReturnRows(sqlmock.NewRows(todoCols).
			AddRow(td.ID.String(), td.OwnerID.String(), "Buy milk", nil, true, td.CreatedAt, td.UpdatedAt))

	got, err := repo.FindByID(context.Background(), td.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, td.OwnerID, got.OwnerID)
	assert.Nil(t, got.Description)
	assert.True(t, got.Completed)

	mock.ExpectQuery(`SELECT (.+) FROM todos WHERE id = \$1`).WillReturnError(sql.ErrNoRows)
	got, err = repo.FindByID(context.Background(), td.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestTodoRepositoryListByOwner(t *testing.T) {
	q, mock := newMock(t)
	repo := NewTodoRepository(q)
	owner := domain.GenerateUserID()
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT (.+) FROM todos WHERE user_id = \$1\s+ORDER BY created_at DESC`).
		WithArgs(owner.UUID).
		WillReturnRows(sqlmock.NewRows(todoCols).
			AddRow(domain.GenerateTodoID().String(), owner.String(), "second", "notes", false, now, now).
			AddRow(domain.GenerateTodoID().String(), owner.String(), "first", nil, true, now.Add(-time.Hour), now))

	list, err := repo.ListByOwner(context.Background(), owner, domain.TodoFilter{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Title)
	assert.Equal(t, "notes", *list[0].Description)

	done := true
	mock.ExpectQuery(`SELECT (.+) FROM todos WHERE user_id = \$1 AND is_completed = \$2`).
		WithArgs(owner.UUID, true).
		WillReturnRows(sqlmock.NewRows(todoCols))

	list, err = repo.ListByOwner(context.Background(), owner, domain.TodoFilter{Completed: &done})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestTodoRepositoryUpdate(t *testing.T) {
	q, mock := newMock(t)
	repo := NewTodoRepository(q)
	td := sampleTodo()
	td.Completed = true

	mock.ExpectExec(`UPDATE todos SET`).
		WithArgs(td.ID.UUID, "Buy milk", "2 litres", true, td.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Update(context.Background(), td))

	mock.ExpectExec(`UPDATE todos SET`).WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Update(context.Background(), td), domerrors.ErrTodoNotFound)
}

func TestTodoRepositoryDeletes(t *testing.T) {
	q, mock := newMock(t)
	repo := NewTodoRepository(q)
	id := domain.GenerateTodoID()
	owner := domain.GenerateUserID()

	mock.ExpectExec(`DELETE FROM todos WHERE id = \$1`).WithArgs(id.UUID).WillReturnResult(sqlmock.NewResult(0, 1))
	ok, err := repo.Delete(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, ok)

	mock.ExpectExec(`DELETE FROM todos WHERE user_id = \$1`).WithArgs(owner.UUID).WillReturnResult(sqlmock.NewResult(0, 3))
	n, err := repo.DeleteByOwner(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM todos`).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(4)))
	total, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
}
