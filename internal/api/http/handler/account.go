package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/saloonbook/saloon-server/internal/api/dto"
	"github.com/saloonbook/saloon-server/internal/api/http/response"
	"github.com/saloonbook/saloon-server/internal/logger"
	"github.com/saloonbook/saloon-server/internal/model"
)

// Account handles HTTP endpoints for the caller's own account.
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

// Get serves GET /api/users/get/{id}.
func (h *Account) Get(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r, h.contextManager)
	if !ok {
		return
	}

	account, err := h.accountService.Get(r.Context(), caller, mux.Vars(r)["id"])
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, dto.FromAccount(account))
}

// Edit serves PUT /api/users/edit.
func (h *Account) Edit(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r, h.contextManager)
	if !ok {
		return
	}
	body, ok := readBody(w, r, MaxJSONBodyBytes)
	if !ok {
		return
	}

	account, err := h.accountService.Edit(r.Context(), caller, body)
	if err != nil {
		h.logger.Info("Account handler: edit failed",
			"caller_id", caller,
			"error", err.Error())
		response.WriteError(w, r, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, dto.FromAccount(account))
}
