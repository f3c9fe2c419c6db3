// Package hasher hashes and verifies account passwords.
package hasher

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"

	"github.com/saloonbook/saloon-server/internal/model"
)

const (
	saltLen = 16
	keyLen  = 32
)

var (
	ErrEmptyPassword = errors.New("password cannot be empty")
	ErrMalformedHash = errors.New("malformed password hash")
)

var _ model.PasswordHasher = (*Argon2id)(nil)

// Params are the argon2id work factors.
type Params struct {
	Time   uint32
	MemKiB uint32
	Par    uint8
}

// Argon2id hashes passwords with argon2id and verifies both argon2id and
// legacy bcrypt digests.
type Argon2id struct {
	params Params
}

// NewArgon2id creates a hasher with the given work factors.
func NewArgon2id(params Params) *Argon2id {
	if params.Time == 0 {
		params.Time = 1
	}
	if params.MemKiB == 0 {
		params.MemKiB = 64 * 1024
	}
	if params.Par == 0 {
		params.Par = 1
	}
	return &Argon2id{params: params}
}

// Hash returns a PHC encoded digest: $argon2id$v=19$m=..,t=..,p=..$salt$hash.
func (h *Argon2id) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}

	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, h.params.Time, h.params.MemKiB, h.params.Par, keyLen)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.params.MemKiB,
		h.params.Time,
		h.params.Par,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify reports whether password matches digest. A digest that cannot be
// parsed yields false and ErrMalformedHash.
func (h *Argon2id) Verify(password, digest string) (bool, error) {
	switch {
	case strings.HasPrefix(digest, "$argon2id$"):
		return verifyArgon2id(password, digest)
	case strings.HasPrefix(digest, "$2a$"), strings.HasPrefix(digest, "$2b$"), strings.HasPrefix(digest, "$2y$"):
		return verifyBcrypt(password, digest)
	default:
		return false, ErrMalformedHash
	}
}

// NeedsRehash reports whether digest was produced by another algorithm or
// with different work factors.
func (h *Argon2id) NeedsRehash(digest string) bool {
	want := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$", argon2.Version, h.params.MemKiB, h.params.Time, h.params.Par)
	return !strings.HasPrefix(digest, want)
}

func verifyArgon2id(password, digest string) (bool, error) {
	parts := strings.Split(digest, "$")
	if len(parts) != 6 {
		return false, ErrMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false, ErrMalformedHash
	}

	var memory, time, threads uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false, ErrMalformedHash
	}
	if memory == 0 || time == 0 || threads == 0 || threads > 255 {
		return false, ErrMalformedHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return false, ErrMalformedHash
	}

	expected, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(expected) == 0 || len(expected) > 1024 {
		return false, ErrMalformedHash
	}

	computed := argon2.IDKey([]byte(password), salt, time, memory, uint8(threads), uint32(len(expected)))

	return subtle.ConstantTimeCompare(computed, expected) == 1, nil
}

func verifyBcrypt(password, digest string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, ErrMalformedHash
	}
}
