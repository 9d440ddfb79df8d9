package auth

import (
	"context"
	"sync"

	"github.com/amirhosseinghanipour/todoapi/internal/application/ports"
	"github.com/amirhosseinghanipour/todoapi/internal/domain"
	domerrors "github.com/amirhosseinghanipour/todoapi/internal/domain/errors"
)

type LoginInput struct {
	Email    string
	Password string
}

type Login struct {
	users  ports.UserStore
	hasher ports.PasswordHasher
	tokens ports.TokenService

	decoyMu sync.Mutex
	decoy   string
}

func NewLogin(users ports.UserStore, hasher ports.PasswordHasher, tokens ports.TokenService) *Login {
	return &Login{users: users, hasher: hasher, tokens: tokens}
}

// Execute returns ErrInvalidCredentials for an unknown email and for a wrong password alike.
func (uc *Login) Execute(ctx context.Context, input LoginInput) (*SessionResult, error) {
	user, err := uc.users.FindByEmail(ctx, domain.NormalizeEmail(input.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Spend the same key-derivation time as a real check.
		uc.hasher.Verify(input.Password, uc.decoyHash())
		return nil, domerrors.ErrInvalidCredentials
	}
	if !uc.hasher.Verify(input.Password, user.PasswordHash) {
		return nil, domerrors.ErrInvalidCredentials
	}
	token, expiresIn, err := uc.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &SessionResult{User: user, Token: token, ExpiresIn: expiresIn}, nil
}

// decoyHash is computed on first use. A failed Hash is retried on the next call.
func (uc *Login) decoyHash() string {
	uc.decoyMu.Lock()
	defer uc.decoyMu.Unlock()
	if uc.decoy == "" {
		if hash, err := uc.hasher.Hash("decoy-password-never-matches"); err == nil {
			uc.decoy = hash
		}
	}
	return uc.decoy
}
