// Package user holds the account use cases available to an authenticated caller.
package user

import (
	"context"
	"strings"
	"time"

	"github.com/amirhosseinghanipour/todoapi/internal/application/ports"
	"github.com/amirhosseinghanipour/todoapi/internal/application/validation"
	"github.com/amirhosseinghanipour/todoapi/internal/domain"
	domerrors "github.com/amirhosseinghanipour/todoapi/internal/domain/errors"
)

type GetProfile struct {
	users ports.UserStore
}

func NewGetProfile(users ports.UserStore) *GetProfile {
	return &GetProfile{users: users}
}

func (uc *GetProfile) Execute(ctx context.Context, id domain.UserID) (*domain.User, error) {
	return loadUser(ctx, uc.users, id)
}

type UpdateProfileInput struct {
	UserID domain.UserID
	Name   string
}

type UpdateProfile struct {
	users ports.UserStore
}

func NewUpdateProfile(users ports.UserStore) *UpdateProfile {
	return &UpdateProfile{users: users}
}

func (uc *UpdateProfile) Execute(ctx context.Context, input UpdateProfileInput) (*domain.User, error) {
	name := strings.TrimSpace(input.Name)
	if err := domerrors.NewValidationError(validation.Name(name)); err != nil {
		return nil, err
	}
	u, err := loadUser(ctx, uc.users, input.UserID)
	if err != nil {
		return nil, err
	}
	u.Name = name
	u.UpdatedAt = time.Now().UTC()
	if err := uc.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func loadUser(ctx context.Context, users ports.UserStore, id domain.UserID) (*domain.User, error) {
	u, err := users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domerrors.ErrUserNotFound
	}
	return u, nil
}
