package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/saloonbook/saloon-server/internal/apierrors"
	"github.com/saloonbook/saloon-server/internal/logger"
	"github.com/saloonbook/saloon-server/internal/model"
)

// TokenService issues session tokens and resolves them back to accounts.
// It composes the TokenManager and the deny-list of logged out tokens.
type TokenService struct {
	manager model.TokenManager
	revoked model.RevokedTokenStore
	logger  *logger.Logger
}

func NewTokenService(manager model.TokenManager, revoked model.RevokedTokenStore, logger *logger.Logger) *TokenService {
	return &TokenService{manager: manager, revoked: revoked, logger: logger}
}

func (s *TokenService) Issue(_ context.Context, accountID uuid.UUID) (string, error) {
	token, _, err := s.manager.Issue(accountID)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}
	return token, nil
}

// Authenticate verifies token and checks the deny-list. Every rejection is
// the same invalid token outcome.
func (s *TokenService) Authenticate(ctx context.Context, token string) (model.TokenClaims, error) {
	if token == "" {
		return model.TokenClaims{}, apierrors.NewInvalidToken()
	}

	claims, err := s.manager.Parse(token)
	if err != nil {
		s.logger.Debug("Token service: token rejected", "error", err.Error())
		return model.TokenClaims{}, apierrors.NewInvalidToken()
	}

	revoked, err := s.revoked.Exists(ctx, claims.JTI)
	if err != nil {
		s.logger.Error("Token service: failed to check deny-list",
			"jti", claims.JTI,
			"error", err.Error())
		return model.TokenClaims{}, apierrors.NewStoreUnavailable("check revoked token", err)
	}
	if revoked {
		s.logger.Info("Token service: revoked token presented",
			"jti", claims.JTI,
			"account_id", claims.AccountID)
		return model.TokenClaims{}, apierrors.NewInvalidToken()
	}

	return claims, nil
}

func (s *TokenService) GetAccountID(ctx context.Context, token string) (uuid.UUID, error) {
	claims, err := s.Authenticate(ctx, token)
	if err != nil {
		return uuid.Nil, err
	}
	return claims.AccountID, nil
}

// Revoke adds the token to the deny-list until it expires on its own.
func (s *TokenService) Revoke(ctx context.Context, claims model.TokenClaims) error {
	err := s.revoked.Create(context.WithoutCancel(ctx), model.RevokedToken{
		JTI:       claims.JTI,
		AccountID: claims.AccountID,
		ExpiresAt: claims.ExpiresAt,
	})
	if err != nil {
		s.logger.Error("Token service: failed to revoke token",
			"jti", claims.JTI,
			"error", err.Error())
		return apierrors.NewStoreUnavailable("revoke token", err)
	}

	s.logger.Info("Token service: token revoked",
		"jti", claims.JTI,
		"account_id", claims.AccountID)
	return nil
}
