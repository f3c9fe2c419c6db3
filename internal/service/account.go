package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/saloonbook/saloon-server/internal/apierrors"
	"github.com/saloonbook/saloon-server/internal/logger"
	"github.com/saloonbook/saloon-server/internal/model"
	"github.com/saloonbook/saloon-server/internal/policy"
	"github.com/saloonbook/saloon-server/internal/validation"
)

// Account serves profile reads and edits. Both are limited to the caller's
// own account.
type Account struct {
	accounts  model.AccountStore
	validator model.Validator
	logger    *logger.Logger
	now       func() time.Time
}

func NewAccount(accounts model.AccountStore, validator model.Validator, logger *logger.Logger) *Account {
	return &Account{
		accounts:  accounts,
		validator: validator,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *Account) Get(ctx context.Context, callerID uuid.UUID, id string) (model.Account, error) {
	accountID, err := policy.AuthorizeClaim(callerID, id, "view this account")
	if err != nil {
		s.logger.Info("Account service: read denied",
			"caller_id", callerID,
			"account_id", id)
		return model.Account{}, err
	}

	return s.load(ctx, accountID)
}

// Edit replaces the profile fields of the caller's account. The email is
// immutable: a body that changes it is rejected.
func (s *Account) Edit(ctx context.Context, callerID uuid.UUID, body []byte) (model.Account, error) {
	target, err := validation.DecodeTarget(body)
	if err != nil {
		return model.Account{}, err
	}
	accountID, err := policy.AuthorizeClaim(callerID, target.ID, "edit this account")
	if err != nil {
		s.logger.Info("Account service: edit denied",
			"caller_id", callerID,
			"account_id", target.ID)
		return model.Account{}, err
	}

	var req validation.EditAccountRequest
	if err := s.validator.Decode(body, &req); err != nil {
		return model.Account{}, err
	}

	existing, err := s.load(ctx, accountID)
	if err != nil {
		return model.Account{}, err
	}
	if req.Email != "" && req.Email != existing.Email {
		return model.Account{}, apierrors.NewValidationFailure("email cannot be changed")
	}

	existing.Profile = model.Profile{
		Name:       req.Name,
		Mobile:     req.Mobile,
		Address:    req.Address,
		Gender:     req.Gender,
		ProfilePic: req.ProfilePic,
	}
	existing.UpdatedAt = s.now().UTC()

	updated, err := s.accounts.Update(context.WithoutCancel(ctx), existing)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Account{}, apierrors.NewNotFound("account", accountID)
		}
		s.logger.Error("Account service: failed to update account",
			"account_id", accountID,
			"error", err.Error())
		return model.Account{}, apierrors.NewStoreUnavailable("update account", err)
	}

	s.logger.Info("Account service: profile updated",
		"account_id", accountID)

	return updated, nil
}

func (s *Account) load(ctx context.Context, id uuid.UUID) (model.Account, error) {
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Account{}, apierrors.NewNotFound("account", id)
		}
		s.logger.Error("Account service: failed to get account",
			"account_id", id,
			"error", err.Error())
		return model.Account{}, apierrors.NewStoreUnavailable("look up account", err)
	}
	return account, nil
}
