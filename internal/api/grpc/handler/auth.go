package handler

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/saloonbook/saloon-server/internal/api/dto"
	"github.com/saloonbook/saloon-server/internal/logger"
	"github.com/saloonbook/saloon-server/internal/model"
)

// AuthTokenHeader is the response metadata key carrying a freshly issued
// token.
const AuthTokenHeader = "auth-token"

var _ AuthServer = (*Auth)(nil)

// Auth handles gRPC endpoints for authentication.
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

// Register creates an account and returns it together with a session token.
func (h *Auth) Register(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	h.logger.Debug("Auth handler: processing registration request")

	body, err := bodyOf(in)
	if err != nil {
		return nil, err
	}

	account, token, err := h.authService.Register(ctx, body)
	if err != nil {
		h.logger.Info("Auth handler: registration failed",
			"error", err.Error())
		return nil, handleError(err)
	}

	h.setToken(ctx, token)

	h.logger.Info("Auth handler: registration completed",
		"account_id", account.ID)

	return toStruct(dto.Registered{Token: token, Account: dto.FromAccount(account)})
}

// Login verifies credentials and returns a session token.
func (h *Auth) Login(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	h.logger.Debug("Auth handler: processing login request")

	body, err := bodyOf(in)
	if err != nil {
		return nil, err
	}

	token, err := h.authService.Login(ctx, body)
	if err != nil {
		h.logger.Info("Auth handler: login failed",
			"error", err.Error())
		return nil, handleError(err)
	}

	h.setToken(ctx, token)

	h.logger.Info("Auth handler: login completed")

	return toStruct(dto.Token{Token: token})
}

// Logout revokes the token the call was authenticated with.
func (h *Auth) Logout(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	claims, ok := h.contextManager.GetClaimsFromContext(ctx)
	if !ok {
		return nil, errUnauthenticated()
	}

	if err := h.authService.Logout(ctx, claims); err != nil {
		h.logger.Error("Auth handler: logout failed",
			"account_id", claims.AccountID,
			"error", err.Error())
		return nil, handleError(err)
	}

	h.logger.Info("Auth handler: logout completed",
		"account_id", claims.AccountID)

	return &structpb.Struct{}, nil
}

func (h *Auth) setToken(ctx context.Context, token string) {
	if err := grpc.SetHeader(ctx, metadata.Pairs(AuthTokenHeader, token)); err != nil {
		h.logger.Debug("Auth handler: token header not sent",
			"error", err.Error())
	}
}
