package memory

import (
	"context"
	"sync"
	"time"

	"github.com/saloonbook/saloon-server/internal/model"
)

var _ model.RevokedTokenStore = (*RevokedTokenRepository)(nil)

type RevokedTokenRepository struct {
	mu     sync.RWMutex
	tokens map[string]model.RevokedToken
}

func NewRevokedTokenRepository() *RevokedTokenRepository {
	return &RevokedTokenRepository{
		tokens: make(map[string]model.RevokedToken),
	}
}

func (r *RevokedTokenRepository) Create(_ context.Context, token model.RevokedToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tokens[token.JTI]; !ok {
		r.tokens[token.JTI] = token
	}
	return nil
}

func (r *RevokedTokenRepository) Exists(_ context.Context, jti string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.tokens[jti]
	return ok, nil
}

func (r *RevokedTokenRepository) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for jti, t := range r.tokens {
		if !t.ExpiresAt.After(now) {
			delete(r.tokens, jti)
			n++
		}
	}
	return n, nil
}
