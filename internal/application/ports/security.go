package ports

import (
	"time"

	"github.com/amirhosseinghanipour/todoapi/internal/domain"
)

// PasswordHasher hashes and verifies passwords (PBKDF2).
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify returns false for a wrong password and for any malformed encoded value.
	Verify(password, encoded string) bool
}

// TokenClaims are the verified contents of a session token.
type TokenClaims struct {
	Subject   domain.UserID
	Email     string
	Name      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenService signs and verifies session tokens (HS256).
type TokenService interface {
	Issue(user *domain.User) (token string, expiresInSeconds int64, err error)
	Verify(token string) (*TokenClaims, error)
	ExtractSubject(token string) (domain.UserID, bool)
}
