package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/saloonbook/saloon-server/internal/apierrors"
	"github.com/saloonbook/saloon-server/internal/logger"
	"github.com/saloonbook/saloon-server/internal/metrics"
	"github.com/saloonbook/saloon-server/internal/model"
	"github.com/saloonbook/saloon-server/internal/validation"
)

const (
	opRegister = "register"
	opLogin    = "login"
	opLogout   = "logout"
)

// dummyPassword is verified against when the email is unknown so both login
// failures cost one hash verification.
const dummyPassword = "not-a-real-password"

type Auth struct {
	accounts     model.AccountStore
	credentials  model.CredentialStore
	hasher       model.PasswordHasher
	validator    model.Validator
	tokenService *TokenService
	metrics      *metrics.Metrics
	logger       *logger.Logger
	now          func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

func NewAuth(
	accounts model.AccountStore,
	credentials model.CredentialStore,
	hasher model.PasswordHasher,
	validator model.Validator,
	tokenService *TokenService,
	metrics *metrics.Metrics,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		accounts:     accounts,
		credentials:  credentials,
		hasher:       hasher,
		validator:    validator,
		tokenService: tokenService,
		metrics:      metrics,
		logger:       logger,
		now:          time.Now,
	}
}

// Register creates an account with its credential and returns a session
// token for it.
func (a *Auth) Register(ctx context.Context, body []byte) (model.Account, string, error) {
	var req validation.RegisterRequest
	if err := a.validator.Decode(body, &req); err != nil {
		a.metrics.AuthAttempt(opRegister, metrics.OutcomeFailure)
		return model.Account{}, "", err
	}

	a.logger.Debug("Auth service: starting account registration",
		"email", req.Email)

	_, err := a.accounts.GetByEmail(ctx, req.Email)
	switch {
	case err == nil:
		a.logger.Info("Auth service: email already registered",
			"email", req.Email)
		a.metrics.AuthAttempt(opRegister, metrics.OutcomeConflict)
		return model.Account{}, "", apierrors.NewEmailTaken(req.Email)
	case !errors.Is(err, model.ErrNotFound):
		a.logger.Error("Auth service: failed to get account by email",
			"email", req.Email,
			"error", err.Error())
		a.metrics.AuthAttempt(opRegister, metrics.OutcomeError)
		return model.Account{}, "", apierrors.NewStoreUnavailable("look up account", err)
	}

	digest, err := a.hasher.Hash(req.Password)
	if err != nil {
		a.metrics.AuthAttempt(opRegister, metrics.OutcomeError)
		return model.Account{}, "", fmt.Errorf("failed to hash password: %w", err)
	}

	now := a.now().UTC()
	account := model.Account{
		ID:    uuid.New(),
		Email: req.Email,
		Profile: model.Profile{
			Name:       req.Name,
			Mobile:     req.Mobile,
			Address:    req.Address,
			Gender:     req.Gender,
			ProfilePic: req.ProfilePic,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	credential := model.Credential{
		AccountID:    account.ID,
		PasswordHash: digest,
		CreatedAt:    now,
	}

	saved, err := a.accounts.CreateWithCredential(context.WithoutCancel(ctx), account, credential)
	if err != nil {
		if errors.Is(err, model.ErrAlreadyExists) {
			a.logger.Info("Auth service: email registered concurrently",
				"email", req.Email)
			a.metrics.AuthAttempt(opRegister, metrics.OutcomeConflict)
			return model.Account{}, "", apierrors.NewEmailTaken(req.Email)
		}
		a.logger.Error("Auth service: failed to create account",
			"email", req.Email,
			"error", err.Error())
		a.metrics.AuthAttempt(opRegister, metrics.OutcomeError)
		return model.Account{}, "", apierrors.NewStoreUnavailable("create account", err)
	}

	token, err := a.tokenService.Issue(ctx, saved.ID)
	if err != nil {
		a.metrics.AuthAttempt(opRegister, metrics.OutcomeError)
		return model.Account{}, "", err
	}

	a.logger.Info("Auth service: account registered",
		"account_id", saved.ID,
		"email", saved.Email)
	a.metrics.AuthAttempt(opRegister, metrics.OutcomeSuccess)

	return saved, token, nil
}

// Login checks the email and password and returns a session token. An
// unknown email and a wrong password are the same outcome.
func (a *Auth) Login(ctx context.Context, body []byte) (string, error) {
	var req validation.LoginRequest
	if err := a.validator.Decode(body, &req); err != nil {
		a.metrics.AuthAttempt(opLogin, metrics.OutcomeFailure)
		return "", err
	}

	a.logger.Debug("Auth service: starting login",
		"email", req.Email)

	account, err := a.accounts.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			a.burnVerification(req.Password)
			a.logger.Info("Auth service: login failed",
				"email", req.Email)
			a.metrics.AuthAttempt(opLogin, metrics.OutcomeFailure)
			return "", apierrors.NewAuthenticationFailure()
		}
		a.logger.Error("Auth service: failed to get account by email",
			"email", req.Email,
			"error", err.Error())
		a.metrics.AuthAttempt(opLogin, metrics.OutcomeError)
		return "", apierrors.NewStoreUnavailable("look up account", err)
	}

	credential, err := a.credentials.GetByAccountID(ctx, account.ID)
	if err != nil {
		a.metrics.AuthAttempt(opLogin, metrics.OutcomeError)
		if errors.Is(err, model.ErrNotFound) {
			corrupt := apierrors.NewCorruptCredential(account.ID, nil)
			a.logger.ErrorErr("Auth service: account has no credential", corrupt,
				"account_id", account.ID)
			return "", corrupt
		}
		a.logger.Error("Auth service: failed to get credential",
			"account_id", account.ID,
			"error", err.Error())
		return "", apierrors.NewStoreUnavailable("look up credential", err)
	}

	ok, err := a.hasher.Verify(req.Password, credential.PasswordHash)
	if err != nil {
		a.metrics.AuthAttempt(opLogin, metrics.OutcomeError)
		corrupt := apierrors.NewCorruptCredential(account.ID, err)
		a.logger.ErrorErr("Auth service: stored credential is unusable", corrupt,
			"account_id", account.ID)
		return "", corrupt
	}
	if !ok {
		a.logger.Info("Auth service: login failed",
			"email", req.Email)
		a.metrics.AuthAttempt(opLogin, metrics.OutcomeFailure)
		return "", apierrors.NewAuthenticationFailure()
	}

	token, err := a.tokenService.Issue(ctx, account.ID)
	if err != nil {
		a.metrics.AuthAttempt(opLogin, metrics.OutcomeError)
		return "", err
	}

	a.logger.Info("Auth service: login completed",
		"account_id", account.ID)
	a.metrics.AuthAttempt(opLogin, metrics.OutcomeSuccess)

	return token, nil
}

// Logout revokes the presented token.
func (a *Auth) Logout(ctx context.Context, claims model.TokenClaims) error {
	if err := a.tokenService.Revoke(ctx, claims); err != nil {
		a.metrics.AuthAttempt(opLogout, metrics.OutcomeError)
		return err
	}
	a.metrics.AuthAttempt(opLogout, metrics.OutcomeSuccess)
	return nil
}

func (a *Auth) burnVerification(password string) {
	a.dummyOnce.Do(func() {
		digest, err := a.hasher.Hash(dummyPassword)
		if err != nil {
			a.logger.Warn("Auth service: failed to prepare dummy hash", "error", err.Error())
			return
		}
		a.dummyHash = digest
	})
	if a.dummyHash == "" {
		return
	}
	_, _ = a.hasher.Verify(password, a.dummyHash)
}
