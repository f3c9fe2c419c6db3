package token

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/saloonbook/saloon-server/internal/model"
)

var _ model.TokenManager = (*JWT)(nil)

// Keyring maps key ids to HMAC secrets. Current names the key used for
// signing; every other entry is accepted for verification only.
type Keyring struct {
	Current string
	Secrets map[string][]byte
}

// NewKeyring builds a keyring from the signing key and the secrets of
// previous key ids.
func NewKeyring(currentID, currentSecret string, previous map[string]string) (Keyring, error) {
	if currentID == "" || currentSecret == "" {
		return Keyring{}, errors.New("current key id and secret are required")
	}
	secrets := make(map[string][]byte, len(previous)+1)
	for kid, secret := range previous {
		if kid == "" || secret == "" {
			return Keyring{}, fmt.Errorf("previous key %q has an empty id or secret", kid)
		}
		secrets[kid] = []byte(secret)
	}
	secrets[currentID] = []byte(currentSecret)
	return Keyring{Current: currentID, Secrets: secrets}, nil
}

// FromAuthorization returns the token of a "Bearer <token>" authorization
// value, or "" when the scheme is missing or different. The scheme is matched
// case-insensitively.
func FromAuthorization(value string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(value), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// Claims represents JWT claims of a session token.
type Claims struct {
	jwt.RegisteredClaims
}

// JWT implements TokenManager backed by HS256 and a versioned keyring.
type JWT struct {
	keyring Keyring
	ttl     time.Duration
	now     func() time.Time
	parser  *jwt.Parser
}

// NewJWT creates a new JWT token manager.
func NewJWT(keyring Keyring, ttl time.Duration) *JWT {
	j := &JWT{
		keyring: keyring,
		ttl:     ttl,
		now:     time.Now,
	}
	j.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(func() time.Time { return j.now() }),
	)
	return j
}

// Issue signs a token for accountID with the current key.
func (j *JWT) Issue(accountID uuid.UUID) (string, model.TokenClaims, error) {
	now := j.now().Truncate(time.Second)
	jti, err := ulid.New(ulid.Timestamp(now), rand.Reader)
	if err != nil {
		return "", model.TokenClaims{}, fmt.Errorf("failed to generate token id: %w", err)
	}

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti.String(),
			Subject:   accountID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token.Header["kid"] = j.keyring.Current

	tokenString, err := token.SignedString(j.keyring.Secrets[j.keyring.Current])
	if err != nil {
		return "", model.TokenClaims{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, model.TokenClaims{
		AccountID: accountID,
		JTI:       claims.ID,
		KeyID:     j.keyring.Current,
		IssuedAt:  now,
		ExpiresAt: now.Add(j.ttl),
	}, nil
}

// Parse verifies tokenString and returns its claims. Every failure is
// reported as model.ErrInvalidToken.
func (j *JWT) Parse(tokenString string) (model.TokenClaims, error) {
	claims := &Claims{}
	var kid string
	token, err := j.parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		kid, _ = t.Header["kid"].(string)
		secret, ok := j.keyring.Secrets[kid]
		if !ok {
			return nil, fmt.Errorf("unknown key id %q", kid)
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return model.TokenClaims{}, model.ErrInvalidToken
	}

	accountID, err := uuid.Parse(claims.Subject)
	if err != nil || accountID == uuid.Nil || claims.ID == "" || claims.IssuedAt == nil {
		return model.TokenClaims{}, model.ErrInvalidToken
	}

	return model.TokenClaims{
		AccountID: accountID,
		JTI:       claims.ID,
		KeyID:     kid,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
