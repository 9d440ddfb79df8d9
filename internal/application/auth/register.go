package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/amirhosseinghanipour/todoapi/internal/application/ports"
	"github.com/amirhosseinghanipour/todoapi/internal/application/validation"
	"github.com/amirhosseinghanipour/todoapi/internal/domain"
	domerrors "github.com/amirhosseinghanipour/todoapi/internal/domain/errors"
)

type RegisterUserInput struct {
	Email    string
	Password string
	Name     string
}

// SessionResult is returned by both register and login.
// WelcomeErr is set when the account was created but the welcome email could not be queued.
type SessionResult struct {
	User       *domain.User
	Token      string
	ExpiresIn  int64
	WelcomeErr error
}

type RegisterUser struct {
	users  ports.UserStore
	hasher ports.PasswordHasher
	tokens ports.TokenService
	tasks  ports.TaskEnqueuer
}

func NewRegisterUser(users ports.UserStore, hasher ports.PasswordHasher, tokens ports.TokenService, tasks ports.TaskEnqueuer) *RegisterUser {
	return &RegisterUser{users: users, hasher: hasher, tokens: tokens, tasks: tasks}
}

func (uc *RegisterUser) Execute(ctx context.Context, input RegisterUserInput) (*SessionResult, error) {
	email := domain.NormalizeEmail(input.Email)
	name := strings.TrimSpace(input.Name)
	if err := domerrors.NewValidationError(validation.Registration(email, input.Password, name)); err != nil {
		return nil, err
	}
	exists, err := uc.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domerrors.ErrEmailExists
	}
	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	user := &domain.User{
		ID:           domain.GenerateUserID(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	// A concurrent registration can still win the race; the store reports it as ErrEmailExists.
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	token, expiresIn, err := uc.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	result := &SessionResult{User: user, Token: token, ExpiresIn: expiresIn}
	if uc.tasks != nil {
		if err := uc.tasks.EnqueueWelcomeEmail(ctx, user.ID.String(), user.Email, user.Name); err != nil {
			result.WelcomeErr = fmt.Errorf("enqueue welcome email: %w", err)
		}
	}
	return result, nil
}
