package router

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/selector"
	"google.golang.org/grpc"

	"github.com/saloonbook/saloon-server/internal/api/grpc/handler"
	"github.com/saloonbook/saloon-server/internal/api/grpc/middleware"
	"github.com/saloonbook/saloon-server/internal/logger"
	"github.com/saloonbook/saloon-server/internal/metrics"
	"github.com/saloonbook/saloon-server/internal/model"
)

// publicMethods are served without a token.
var publicMethods = map[string]struct{}{
	"/" + handler.AuthServiceName + "/Register": {},
	"/" + handler.AuthServiceName + "/Login":    {},
}

// Router represents a gRPC router for the saloon services.
// It manages service registration and interceptor configuration.
type Router struct {
	authService    handler.AuthService
	accountService handler.AccountService
	salonService   handler.SalonService
	authenticator  middleware.Authenticator
	contextManager model.ContextManager
	metrics        *metrics.Metrics
	logger         *logger.Logger
}

// New creates new gRPC Router instance.
func New(
	authService handler.AuthService,
	accountService handler.AccountService,
	salonService handler.SalonService,
	authenticator middleware.Authenticator,
	contextManager model.ContextManager,
	metrics *metrics.Metrics,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		accountService: accountService,
		salonService:   salonService,
		authenticator:  authenticator,
		contextManager: contextManager,
		metrics:        metrics,
		logger:         logger,
	}
}

func authRequired(_ context.Context, c interceptors.CallMeta) bool {
	_, public := publicMethods[c.FullMethod()]
	return !public
}

// Register builds a gRPC server with recovery, request logging and
// authentication interceptors and registers every service on it.
func (r *Router) Register(opts ...grpc.ServerOption) *grpc.Server {
	logging := middleware.NewLogging(r.logger, r.metrics)
	authenticate := middleware.NewAuthenticate(r.authenticator, r.contextManager, r.logger)

	opts = append(opts,
		grpc.ChainUnaryInterceptor(
			recovery.UnaryServerInterceptor(middleware.RecoveryOption(r.logger)),
			logging.HandleGRPC,
			selector.UnaryServerInterceptor(
				auth.UnaryServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(authRequired),
			),
		),
	)

	s := grpc.NewServer(opts...)
	handler.RegisterAuthServer(s, handler.NewAuth(r.authService, r.contextManager, r.logger))
	handler.RegisterAccountsServer(s, handler.NewAccount(r.accountService, r.contextManager, r.logger))
	handler.RegisterSaloonsServer(s, handler.NewSalon(r.salonService, r.contextManager, r.logger))

	return s
}
