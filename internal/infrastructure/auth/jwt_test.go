package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhosseinghanipour/todoapi/internal/domain"
	domerrors "github.com/amirhosseinghanipour/todoapi/internal/domain/errors"
)

var testKey = []byte(strings.Repeat("k", 32))

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func newTestService(clock *fakeClock) *TokenService {
	return NewTokenService(testKey, "todoapi", "todoapi-users", 0, WithClock(clock.Now))
}

func testUser() *domain.User {
	return &domain.User{ID: domain.GenerateUserID(), Email: "a@b.com", Name: "Ann"}
}

func TestIssueAndVerify(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	svc := newTestService(clock)
	user := testUser()

	token, expiresIn, err := svc.Issue(user)
	require.NoError(t, err)
	assert.Equal(t, int64(86400), expiresIn)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.Subject)
	assert.Equal(t, "a@b.com", claims.Email)
	assert.Equal(t, "Ann", claims.Name)
	assert.True(t, claims.IssuedAt.Equal(clock.now))
	assert.True(t, claims.ExpiresAt.Equal(clock.now.Add(24*time.Hour)))

	subject, ok := svc.ExtractSubject(token)
	require.True(t, ok)
	assert.Equal(t, user.ID, subject)
}

func TestIssueProducesDistinctTokens(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	svc := newTestService(clock)
	user := testUser()

	first, _, err := svc.Issue(user)
	require.NoError(t, err)
	clock.now = clock.now.Add(time.Second)
	second, _, err := svc.Issue(user)
	require.NoError(t, err)
	third, _, err := svc.Issue(user)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.NotEqual(t, second, third)
}

func TestVerifyExpiry(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	svc := newTestService(clock)
	token, _, err := svc.Issue(testUser())
	require.NoError(t, err)

	clock.now = clock.now.Add(24*time.Hour - time.Second)
	_, err = svc.Verify(token)
	assert.NoError(t, err)

	clock.now = clock.now.Add(time.Second)
	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, domerrors.ErrInvalidToken)

	_, ok := svc.ExtractSubject(token)
	assert.False(t, ok)
}

func TestVerifyRejectsForeignTokens(t *testing.T) {
	clock := &fakeClock{now: time.Now().Truncate(time.Second)}
	svc := newTestService(clock)
	user := testUser()

	otherKey := NewTokenService([]byte(strings.Repeat("x", 32)), "todoapi", "todoapi-users", 0, WithClock(clock.Now))
	otherIssuer := NewTokenService(testKey, "someone-else", "todoapi-users", 0, WithClock(clock.Now))
	otherAudience := NewTokenService(testKey, "todoapi", "other-audience", 0, WithClock(clock.Now))

	for name, issuer := range map[string]*TokenService{
		"different secret":   otherKey,
		"different issuer":   otherIssuer,
		"different audience": otherAudience,
	} {
		t.Run(name, func(t *testing.T) {
			token, _, err := issuer.Issue(user)
			require.NoError(t, err)
			_, err = svc.Verify(token)
			assert.ErrorIs(t, err, domerrors.ErrInvalidToken)
		})
	}
}

func TestVerifyRejectsMalformed(t *testing.T) {
	clock := &fakeClock{now: time.Now().Truncate(time.Second)}
	svc := newTestService(clock)

	for _, token := range []string{"", "garbage", "a.b.c", strings.Repeat("x", 500)} {
		assert.NotPanics(t, func() {
			_, err := svc.Verify(token)
			assert.ErrorIs(t, err, domerrors.ErrInvalidToken)
		})
	}
}

func TestVerifyRejectsNoneAlgorithm(t *testing.T) {
	clock := &fakeClock{now: time.Now().Truncate(time.Second)}
	svc := newTestService(clock)
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "todoapi",
			Audience:  jwt.ClaimStrings{"todoapi-users"},
			Subject:   domain.GenerateUserID().String(),
			ExpiresAt: jwt.NewNumericDate(clock.now.Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, domerrors.ErrInvalidToken)
}

func TestVerifyRejectsNonUUIDSubject(t *testing.T) {
	clock := &fakeClock{now: time.Now().Truncate(time.Second)}
	svc := newTestService(clock)
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "todoapi",
			Audience:  jwt.ClaimStrings{"todoapi-users"},
			Subject:   "not-a-uuid",
			ExpiresAt: jwt.NewNumericDate(clock.now.Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testKey)
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, domerrors.ErrInvalidToken)
}

func TestVerifyRequiresExpiry(t *testing.T) {
	clock := &fakeClock{now: time.Now().Truncate(time.Second)}
	svc := newTestService(clock)
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   "todoapi",
			Audience: jwt.ClaimStrings{"todoapi-users"},
			Subject:  domain.GenerateUserID().String(),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testKey)
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, domerrors.ErrInvalidToken)
}

func TestCustomTTL(t *testing.T) {
	clock := &fakeClock{now: time.Now().Truncate(time.Second)}
	svc := NewTokenService(testKey, "todoapi", "todoapi-users", time.Hour, WithClock(clock.Now))
	token, expiresIn, err := svc.Issue(testUser())
	require.NoError(t, err)
	assert.Equal(t, int64(3600), expiresIn)

	clock.now = clock.now.Add(time.Hour)
	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, domerrors.ErrInvalidToken)
}

func TestSigningKeyFromSecret(t *testing.T) {
	_, err := SigningKeyFromSecret("")
	assert.Error(t, err)

	_, err = SigningKeyFromSecret("too-short")
	assert.Error(t, err)

	key, err := SigningKeyFromSecret(strings.Repeat("s", 32))
	require.NoError(t, err)
	assert.Len(t, key, 32)

	key, err = SigningKeyFromSecret("base64:" + "c2VjcmV0c2VjcmV0c2VjcmV0c2VjcmV0c2VjcmV0MTI=")
	require.NoError(t, err)
	assert.Equal(t, "secretsecretsecretsecretsecret12", string(key))

	_, err = SigningKeyFromSecret("base64:%%%")
	assert.Error(t, err)
}
