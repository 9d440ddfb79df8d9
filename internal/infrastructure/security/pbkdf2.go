package security

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"

	"github.com/amirhosseinghanipour/todoapi/internal/application/ports"
)

const (
	pbkdf2Prefix = "pbkdf2-sha256"

	// Upper bound accepted from a stored record, so a tampered row cannot pin a CPU.
	maxStoredIterations = 10_000_000
)

var errMalformedHash = errors.New("malformed pbkdf2 hash")

// PBKDF2Params configurable for hashing.
type PBKDF2Params struct {
	Iterations int
	SaltLength int
	KeyLength  int
}

// DefaultPBKDF2Params returns PBKDF2-HMAC-SHA256 with 100k iterations, 32-byte salt and 256-bit key.
func DefaultPBKDF2Params() PBKDF2Params {
	return PBKDF2Params{
		Iterations: 100_000,
		SaltLength: 32,
		KeyLength:  32,
	}
}

// PBKDF2Hasher implements ports.PasswordHasher using PBKDF2-HMAC-SHA256.
//
// Encoded form: $pbkdf2-sha256$i=<iterations>$<salt>$<key>, both blobs in unpadded base64.
// Records in the older "<salt>:<key>" form (padded base64, configured iterations) still verify.
type PBKDF2Hasher struct {
	params PBKDF2Params
}

func NewPBKDF2Hasher(params PBKDF2Params) *PBKDF2Hasher {
	def := DefaultPBKDF2Params()
	if params.Iterations <= 0 {
		params.Iterations = def.Iterations
	}
	if params.SaltLength <= 0 {
		params.SaltLength = def.SaltLength
	}
	if params.KeyLength <= 0 {
		params.KeyLength = def.KeyLength
	}
	return &PBKDF2Hasher{params: params}
}

func (h *PBKDF2Hasher) Hash(password string) (string, error) {
	salt := make([]byte, h.params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	key := pbkdf2.Key([]byte(password), salt, h.params.Iterations, h.params.KeyLength, sha256.New)
	return fmt.Sprintf("$%s$i=%d$%s$%s",
		pbkdf2Prefix,
		h.params.Iterations,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key)), nil
}

func (h *PBKDF2Hasher) Verify(password, encoded string) bool {
	iterations, salt, key, err := h.decodeHash(encoded)
	if err != nil {
		return false
	}
	derived := pbkdf2.Key([]byte(password), salt, iterations, len(key), sha256.New)
	return subtle.ConstantTimeCompare(key, derived) == 1
}

func (h *PBKDF2Hasher) decodeHash(encoded string) (iterations int, salt, key []byte, err error) {
	if strings.HasPrefix(encoded, "$") {
		iterations, salt, key, err = decodeModular(encoded)
	} else {
		iterations = h.params.Iterations
		salt, key, err = decodeLegacy(encoded)
	}
	if err != nil {
		return 0, nil, nil, errMalformedHash
	}
	if iterations < 1 || iterations > maxStoredIterations || len(salt) == 0 || len(key) == 0 {
		return 0, nil, nil, errMalformedHash
	}
	return iterations, salt, key, nil
}

func decodeModular(encoded string) (int, []byte, []byte, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 5 || parts[0] != "" || parts[1] != pbkdf2Prefix {
		return 0, nil, nil, errMalformedHash
	}
	iterStr, ok := strings.CutPrefix(parts[2], "i=")
	if !ok {
		return 0, nil, nil, errMalformedHash
	}
	iterations, err := strconv.Atoi(iterStr)
	if err != nil {
		return 0, nil, nil, err
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[3])
	if err != nil {
		return 0, nil, nil, err
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return 0, nil, nil, err
	}
	return iterations, salt, key, nil
}

func decodeLegacy(encoded string) ([]byte, []byte, error) {
	parts := strings.Split(encoded, ":")
	if len(parts) != 2 {
		return nil, nil, errMalformedHash
	}
	salt, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, nil, err
	}
	key, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, nil, err
	}
	return salt, key, nil
}

var _ ports.PasswordHasher = (*PBKDF2Hasher)(nil)
