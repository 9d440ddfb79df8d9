package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhosseinghanipour/todoapi/internal/application/ports"
	domerrors "github.com/amirhosseinghanipour/todoapi/internal/domain/errors"
	infraauth "github.com/amirhosseinghanipour/todoapi/internal/infrastructure/auth"
	"github.com/amirhosseinghanipour/todoapi/internal/infrastructure/persistence/memory"
	"github.com/amirhosseinghanipour/todoapi/internal/infrastructure/security"
)

type recordingEnqueuer struct {
	mu      sync.Mutex
	welcome []string
	err     error
}

func (e *recordingEnqueuer) EnqueueWelcomeEmail(_ context.Context, _, email, _ string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.err != nil {
		return e.err
	}
	e.welcome = append(e.welcome, email)
	return nil
}

func (e *recordingEnqueuer) EnqueueAudit(context.Context, ports.AuditEvent) error { return nil }

type fixture struct {
	users    *memory.UserStore
	tokens   *infraauth.TokenService
	tasks    *recordingEnqueuer
	register *RegisterUser
	login    *Login
}

func newFixture() *fixture {
	users := memory.NewUserStore()
	hasher := security.NewPBKDF2Hasher(security.PBKDF2Params{Iterations: 1000})
	tokens := infraauth.NewTokenService([]byte(strings.Repeat("k", 32)), "todoapi", "todoapi-users", 24*time.Hour)
	tasks := &recordingEnqueuer{}
	return &fixture{
		users:    users,
		tokens:   tokens,
		tasks:    tasks,
		register: NewRegisterUser(users, hasher, tokens, tasks),
		login:    NewLogin(users, hasher, tokens),
	}
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	reg, err := f.register.Execute(ctx, RegisterUserInput{Email: "a@b.com", Password: "Passw0rd", Name: "Ann"})
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", reg.User.Email)
	assert.Equal(t, "Ann", reg.User.Name)
	assert.False(t, reg.User.EmailVerified)
	assert.Equal(t, int64(86400), reg.ExpiresIn)
	assert.NotContains(t, reg.User.PasswordHash, "Passw0rd")

	subject, ok := f.tokens.ExtractSubject(reg.Token)
	require.True(t, ok)
	assert.Equal(t, reg.User.ID, subject)
	assert.Equal(t, []string{"a@b.com"}, f.tasks.welcome)

	logged, err := f.login.Execute(ctx, LoginInput{Email: "a@b.com", Password: "Passw0rd"})
	require.NoError(t, err)
	subject, ok = f.tokens.ExtractSubject(logged.Token)
	require.True(t, ok)
	assert.Equal(t, reg.User.ID, subject)

	_, err = f.login.Execute(ctx, LoginInput{Email: "a@b.com", Password: "wrong"})
	assert.ErrorIs(t, err, domerrors.ErrInvalidCredentials)

	_, err = f.register.Execute(ctx, RegisterUserInput{Email: "a@b.com", Password: "Passw0rd", Name: "Ann"})
	assert.ErrorIs(t, err, domerrors.ErrEmailExists)
}

func TestRegisterNormalizesEmailAndName(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	reg, err := f.register.Execute(ctx, RegisterUserInput{Email: "  Ann@Example.COM ", Password: "Passw0rd", Name: "  Ann Lee "})
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", reg.User.Email)
	assert.Equal(t, "Ann Lee", reg.User.Name)

	_, err = f.register.Execute(ctx, RegisterUserInput{Email: "ANN@example.com", Password: "Passw0rd", Name: "Other"})
	assert.ErrorIs(t, err, domerrors.ErrEmailExists)

	_, err = f.login.Execute(ctx, LoginInput{Email: "ANN@EXAMPLE.COM", Password: "Passw0rd"})
	assert.NoError(t, err)
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	_, err := f.register.Execute(ctx, RegisterUserInput{Email: "not-an-email", Password: "short", Name: "A"})
	var verr *domerrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Violations, "Invalid email format")
	assert.Contains(t, verr.Violations, "Password must be at least 8 characters long")
	assert.Contains(t, verr.Violations, "Name must be at least 2 characters long")

	_, err = f.register.Execute(ctx, RegisterUserInput{Email: "a@b.com", Password: "alllowercase1", Name: "Ann"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"Password must contain at least one uppercase letter"}, verr.Violations)

	n, err := f.users.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, f.tasks.welcome)
}

func TestLoginUnknownEmailMatchesWrongPassword(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	_, err := f.register.Execute(ctx, RegisterUserInput{Email: "a@b.com", Password: "Passw0rd", Name: "Ann"})
	require.NoError(t, err)

	_, unknown := f.login.Execute(ctx, LoginInput{Email: "nobody@b.com", Password: "Passw0rd"})
	_, wrong := f.login.Execute(ctx, LoginInput{Email: "a@b.com", Password: "Passw0rd!"})
	require.Error(t, unknown)
	require.Error(t, wrong)
	assert.Equal(t, unknown, wrong)
	assert.Equal(t, unknown.Error(), wrong.Error())
}

func TestRegisterWithoutEnqueuer(t *testing.T) {
	users := memory.NewUserStore()
	hasher := security.NewPBKDF2Hasher(security.PBKDF2Params{Iterations: 1000})
	tokens := infraauth.NewTokenService([]byte(strings.Repeat("k", 32)), "todoapi", "todoapi-users", 0)
	uc := NewRegisterUser(users, hasher, tokens, nil)

	_, err := uc.Execute(context.Background(), RegisterUserInput{Email: "a@b.com", Password: "Passw0rd", Name: "Ann"})
	assert.NoError(t, err)
}

func TestRegisterReportsFailedWelcomeEnqueue(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.tasks.err = errors.New("queue down")

	reg, err := f.register.Execute(ctx, RegisterUserInput{Email: "a@b.com", Password: "Passw0rd", Name: "Ann"})
	require.NoError(t, err)
	assert.NotEmpty(t, reg.Token)
	require.Error(t, reg.WelcomeErr)
	assert.Contains(t, reg.WelcomeErr.Error(), "queue down")

	exists, err := f.users.ExistsByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.True(t, exists)

	f.tasks.err = nil
	reg, err = f.register.Execute(ctx, RegisterUserInput{Email: "b@b.com", Password: "Passw0rd", Name: "Bob"})
	require.NoError(t, err)
	assert.NoError(t, reg.WelcomeErr)
}

type flakyHasher struct {
	ports.PasswordHasher
	failures int
	verified []string
}

func (h *flakyHasher) Hash(password string) (string, error) {
	if h.failures > 0 {
		h.failures--
		return "", errors.New("salt source exhausted")
	}
	return h.PasswordHasher.Hash(password)
}

func (h *flakyHasher) Verify(password, encoded string) bool {
	h.verified = append(h.verified, encoded)
	return h.PasswordHasher.Verify(password, encoded)
}

func TestLoginRetriesDecoyHashAfterFailure(t *testing.T) {
	ctx := context.Background()
	hasher := &flakyHasher{
		PasswordHasher: security.NewPBKDF2Hasher(security.PBKDF2Params{Iterations: 1000}),
		failures:       1,
	}
	tokens := infraauth.NewTokenService([]byte(strings.Repeat("k", 32)), "todoapi", "todoapi-users", 0)
	uc := NewLogin(memory.NewUserStore(), hasher, tokens)

	for range 3 {
		_, err := uc.Execute(ctx, LoginInput{Email: "nobody@b.com", Password: "Passw0rd"})
		assert.ErrorIs(t, err, domerrors.ErrInvalidCredentials)
	}

	require.Len(t, hasher.verified, 3)
	assert.Empty(t, hasher.verified[0])
	assert.NotEmpty(t, hasher.verified[1])
	assert.Equal(t, hasher.verified[1], hasher.verified[2])
}
