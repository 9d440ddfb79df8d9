package user

import (
	"context"
	"time"

	"github.com/amirhosseinghanipour/todoapi/internal/application/ports"
	"github.com/amirhosseinghanipour/todoapi/internal/domain"
)

// VerifyEmail marks the caller's address as verified. Calling it again is a no-op.
type VerifyEmail struct {
	users ports.UserStore
}

func NewVerifyEmail(users ports.UserStore) *VerifyEmail {
	return &VerifyEmail{users: users}
}

func (uc *VerifyEmail) Execute(ctx context.Context, id domain.UserID) (*domain.User, error) {
	u, err := loadUser(ctx, uc.users, id)
	if err != nil {
		return nil, err
	}
	if u.EmailVerified {
		return u, nil
	}
	u.EmailVerified = true
	u.UpdatedAt = time.Now().UTC()
	if err := uc.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
