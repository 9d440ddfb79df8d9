package auth

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// MinSecretLength is the minimum HS256 key size in bytes.
const MinSecretLength = 32

// SigningKeyFromSecret turns the configured secret into HMAC key bytes.
// A "base64:" prefix marks a standard-base64 encoded secret; anything else is used verbatim.
func SigningKeyFromSecret(secret string) ([]byte, error) {
	if secret == "" {
		return nil, errors.New("JWT secret is required")
	}
	key := []byte(secret)
	if enc, ok := strings.CutPrefix(secret, "base64:"); ok {
		decoded, err := base64.StdEncoding.DecodeString(enc)
		if err != nil {
			return nil, fmt.Errorf("decode base64 JWT secret: %w", err)
		}
		key = decoded
	}
	if len(key) < MinSecretLength {
		return nil, fmt.Errorf("JWT secret must be at least %d bytes, got %d", MinSecretLength, len(key))
	}
	return key, nil
}
