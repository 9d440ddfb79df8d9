package db

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const userColumns = `id, email, name, password_hash, is_email_verified, created_at, updated_at`

const createUser = `INSERT INTO users (id, email, name, password_hash, is_email_verified, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

type CreateUserParams struct {
	ID              uuid.UUID
	Email           string
	Name            string
	PasswordHash    string
	IsEmailVerified bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) error {
	_, err := q.db.ExecContext(ctx, createUser,
		arg.ID, arg.Email, arg.Name, arg.PasswordHash, arg.IsEmailVerified, arg.CreatedAt, arg.UpdatedAt)
	return err
}

const getUserByID = `SELECT ` + userColumns + ` FROM users WHERE id = $1`

func (q *Queries) GetUserByID(ctx context.Context, id uuid.UUID) (User, error) {
	row := q.db.QueryRowContext(ctx, getUserByID, id)
	return scanUser(row)
}

const getUserByEmail = `SELECT ` + userColumns + ` FROM users WHERE email = $1`

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (User, error) {
	row := q.db.QueryRowContext(ctx, getUserByEmail, email)
	return scanUser(row)
}

const userExistsByEmail = `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`

func (q *Queries) UserExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := q.db.QueryRowContext(ctx, userExistsByEmail, email).Scan(&exists)
	return exists, err
}

const updateUser = `UPDATE users SET email = $2, name = $3, password_hash = $4, is_email_verified = $5, updated_at = $6
WHERE id = $1`

type UpdateUserParams struct {
	ID              uuid.UUID
	Email           string
	Name            string
	PasswordHash    string
	IsEmailVerified bool
	UpdatedAt       time.Time
}

func (q *Queries) UpdateUser(ctx context.Context, arg UpdateUserParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, updateUser,
		arg.ID, arg.Email, arg.Name, arg.PasswordHash, arg.IsEmailVerified, arg.UpdatedAt)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const deleteUser = `DELETE FROM users WHERE id = $1`

func (q *Queries) DeleteUser(ctx context.Context, id uuid.UUID) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteUser, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const countUsers = `SELECT COUNT(*) FROM users`

func (q *Queries) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countUsers).Scan(&n)
	return n, err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.IsEmailVerified, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}
