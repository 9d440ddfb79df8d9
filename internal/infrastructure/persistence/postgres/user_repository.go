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

type UserRepository struct {
	q *db.Queries
}

func NewUserRepository(q *db.Queries) *UserRepository {
	return &UserRepository{q: q}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	err := r.q.CreateUser(ctx, db.CreateUserParams{
		ID:              user.ID.UUID,
		Email:           domain.NormalizeEmail(user.Email),
		Name:            user.Name,
		PasswordHash:    user.PasswordHash,
		IsEmailVerified: user.EmailVerified,
		CreatedAt:       user.CreatedAt,
		UpdatedAt:       user.UpdatedAt,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return domerrors.ErrEmailExists
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	u, err := r.q.GetUserByID(ctx, id.UUID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return dbUserToDomain(u), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := r.q.GetUserByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return dbUserToDomain(u), nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	exists, err := r.q.UserExistsByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		return false, fmt.Errorf("user exists by email: %w", err)
	}
	return exists, nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	n, err := r.q.UpdateUser(ctx, db.UpdateUserParams{
		ID:              user.ID.UUID,
		Email:           domain.NormalizeEmail(user.Email),
		Name:            user.Name,
		PasswordHash:    user.PasswordHash,
		IsEmailVerified: user.EmailVerified,
		UpdatedAt:       user.UpdatedAt,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return domerrors.ErrEmailExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	if n == 0 {
		return domerrors.ErrUserNotFound
	}
	return nil
}

// Delete removes the user; the schema cascades to their todos.
func (r *UserRepository) Delete(ctx context.Context, id domain.UserID) (bool, error) {
	n, err := r.q.DeleteUser(ctx, id.UUID)
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	return n > 0, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.q.CountUsers(ctx)
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

func dbUserToDomain(u db.User) *domain.User {
	return &domain.User{
		ID:            domain.NewUserID(u.ID),
		Email:         u.Email,
		Name:          u.Name,
		PasswordHash:  u.PasswordHash,
		EmailVerified: u.IsEmailVerified,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

var _ ports.UserStore = (*UserRepository)(nil)
