package handler

import (
	"net/http"

	"github.com/saloonbook/saloon-server/internal/api/dto"
	"github.com/saloonbook/saloon-server/internal/api/http/response"
	"github.com/saloonbook/saloon-server/internal/apierrors"
	"github.com/saloonbook/saloon-server/internal/logger"
	"github.com/saloonbook/saloon-server/internal/model"
)

// AuthTokenHeader carries a freshly issued token.
const AuthTokenHeader = "Auth-Token"

// Auth handles HTTP endpoints for authentication.
type Auth struct {
	authService    AuthService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, contextManager model.ContextManager, logger *logger.Logger) *Auth {
	return &Auth{
		authService:    authService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Register creates an account and answers 201 with the account and a token.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r, MaxJSONBodyBytes)
	if !ok {
		return
	}

	account, token, err := h.authService.Register(r.Context(), body)
	if err != nil {
		h.logger.Info("Auth handler: registration failed",
			"error", err.Error())
		response.WriteError(w, r, err)
		return
	}

	h.logger.Info("Auth handler: registration completed",
		"account_id", account.ID)

	w.Header().Set(AuthTokenHeader, token)
	response.WriteJSON(w, http.StatusCreated, dto.Registered{Token: token, Account: dto.FromAccount(account)})
}

func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r, MaxJSONBodyBytes)
	if !ok {
		return
	}

	token, err := h.authService.Login(r.Context(), body)
	if err != nil {
		h.logger.Info("Auth handler: login failed",
			"error", err.Error())
		response.WriteError(w, r, err)
		return
	}

	w.Header().Set(AuthTokenHeader, token)
	response.WriteJSON(w, http.StatusOK, dto.Token{Token: token})
}

// Logout revokes the token the request was authenticated with.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.contextManager.GetClaimsFromContext(r.Context())
	if !ok {
		h.logger.Error("Auth handler: logout reached without claims")
		response.WriteProblem(w, r, http.StatusUnauthorized, apierrors.CodeAuthenticationFailure, "missing or invalid authorization token")
		return
	}

	if err := h.authService.Logout(r.Context(), claims); err != nil {
		h.logger.Error("Auth handler: logout failed",
			"account_id", claims.AccountID,
			"error", err.Error())
		response.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
