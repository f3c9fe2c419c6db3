package handler

import (
	"context"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/saloonbook/saloon-server/internal/api/dto"
	"github.com/saloonbook/saloon-server/internal/logger"
	"github.com/saloonbook/saloon-server/internal/model"
)

var _ AccountsServer = (*Account)(nil)

// Account handles gRPC endpoints for the caller's own account.
type Account struct {
	accountService AccountService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAccount creates a new Account handler.
func NewAccount(accountService AccountService, contextManager model.ContextManager, logger *logger.Logger) *Account {
	return &Account{
		accountService: accountService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Get returns the account named by the "id" field.
func (h *Account) Get(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	callerID, ok := h.contextManager.GetAccountIDFromContext(ctx)
	if !ok {
		return nil, errUnauthenticated()
	}

	account, err := h.accountService.Get(ctx, callerID, stringField(in, "id"))
	if err != nil {
		h.logger.Info("Account handler: get failed",
			"caller_id", callerID,
			"error", err.Error())
		return nil, handleError(err)
	}

	return toStruct(dto.FromAccount(account))
}

// Edit replaces the profile of the caller's account.
func (h *Account) Edit(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	callerID, ok := h.contextManager.GetAccountIDFromContext(ctx)
	if !ok {
		return nil, errUnauthenticated()
	}

	body, err := bodyOf(in)
	if err != nil {
		return nil, err
	}

	account, err := h.accountService.Edit(ctx, callerID, body)
	if err != nil {
		h.logger.Info("Account handler: edit failed",
			"caller_id", callerID,
			"error", err.Error())
		return nil, handleError(err)
	}

	return toStruct(dto.FromAccount(account))
}
