package router

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/saloonbook/saloon-server/internal/api/http/handler"
	"github.com/saloonbook/saloon-server/internal/api/http/middleware"
	"github.com/saloonbook/saloon-server/internal/api/http/response"
	"github.com/saloonbook/saloon-server/internal/apierrors"
	"github.com/saloonbook/saloon-server/internal/logger"
	"github.com/saloonbook/saloon-server/internal/metrics"
	"github.com/saloonbook/saloon-server/internal/model"
)

// Config carries the collaborators of the HTTP API.
type Config struct {
	AuthService    handler.AuthService
	AccountService handler.AccountService
	SalonService   handler.SalonService
	Authenticator  middleware.Authenticator
	ContextManager model.ContextManager
	Metrics        *metrics.Metrics
	// MetricsHandler serves /metrics when set.
	MetricsHandler http.Handler
	ReadyChecks    map[string]handler.ReadinessCheck
	MaxUploadBytes int64
	Logger         *logger.Logger
}

// Router represents the HTTP router of the saloon API.
type Router struct {
	cfg Config
}

// New creates new HTTP Router instance.
func New(cfg Config) *Router {
	return &Router{cfg: cfg}
}

// Register builds the route table and returns the complete handler with
// request id and panic recovery around it.
func (r *Router) Register() http.Handler {
	logging := middleware.NewLogging(r.cfg.Logger, r.cfg.Metrics)
	authenticate := middleware.NewAuthenticate(r.cfg.Authenticator, r.cfg.ContextManager, r.cfg.Logger)

	system := handler.NewSystem(r.cfg.ReadyChecks, r.cfg.Logger)
	auth := handler.NewAuth(r.cfg.AuthService, r.cfg.ContextManager, r.cfg.Logger)
	accounts := handler.NewAccount(r.cfg.AccountService, r.cfg.ContextManager, r.cfg.Logger)
	salons := handler.NewSalon(r.cfg.SalonService, r.cfg.ContextManager, r.cfg.MaxUploadBytes, r.cfg.Logger)

	root := mux.NewRouter()
	root.Use(logging.Handle)
	root.NotFoundHandler = logging.Handle(http.HandlerFunc(notFound))
	root.MethodNotAllowedHandler = logging.Handle(http.HandlerFunc(methodNotAllowed))

	root.HandleFunc("/", system.Welcome).Methods(http.MethodGet)
	root.HandleFunc("/api", system.WelcomeAPI).Methods(http.MethodGet)
	root.HandleFunc("/healthz", system.Liveness).Methods(http.MethodGet)
	root.HandleFunc("/readyz", system.Readiness).Methods(http.MethodGet)
	if r.cfg.MetricsHandler != nil {
		root.Handle("/metrics", r.cfg.MetricsHandler).Methods(http.MethodGet)
	}

	root.HandleFunc("/api/auth/register", auth.Register).Methods(http.MethodPost)
	root.HandleFunc("/api/auth/login", auth.Login).Methods(http.MethodPost)

	protected := root.PathPrefix("/api").Subrouter()
	protected.Use(authenticate.Handle)

	protected.HandleFunc("/auth/logout", auth.Logout).Methods(http.MethodPost)

	protected.HandleFunc("/users/get/{id}", accounts.Get).Methods(http.MethodGet)
	protected.HandleFunc("/users/edit", accounts.Edit).Methods(http.MethodPut)

	protected.HandleFunc("/saloons/new", salons.Create).Methods(http.MethodPost)
	protected.HandleFunc("/saloons/get", salons.List).Methods(http.MethodGet)
	protected.HandleFunc("/saloons/get/{id}", salons.Get).Methods(http.MethodGet)
	protected.HandleFunc("/saloons/edit", salons.Edit).Methods(http.MethodPut)
	protected.HandleFunc("/saloons/delete", salons.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/saloons/{id}/pictures", salons.AddPicture).Methods(http.MethodPost)
	protected.HandleFunc("/saloons/{id}/pictures/{picture}", salons.GetPicture).Methods(http.MethodGet)

	return middleware.RequestID(middleware.Recoverer(r.cfg.Logger)(root))
}

func notFound(w http.ResponseWriter, r *http.Request) {
	response.WriteProblem(w, r, http.StatusNotFound, apierrors.CodeNotFound, "route not found")
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	response.WriteProblem(w, r, http.StatusMethodNotAllowed, apierrors.CodeValidationFailure, "method not allowed")
}
