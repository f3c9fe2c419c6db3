// Package app assembles the saloon server from its configuration.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	apicontext "github.com/saloonbook/saloon-server/internal/api/context"
	grpcrouter "github.com/saloonbook/saloon-server/internal/api/grpc/router"
	grpcserver "github.com/saloonbook/saloon-server/internal/api/grpc/server"
	"github.com/saloonbook/saloon-server/internal/api/http/handler"
	httprouter "github.com/saloonbook/saloon-server/internal/api/http/router"
	httpserver "github.com/saloonbook/saloon-server/internal/api/http/server"
	"github.com/saloonbook/saloon-server/internal/config"
	"github.com/saloonbook/saloon-server/internal/hasher"
	"github.com/saloonbook/saloon-server/internal/logger"
	"github.com/saloonbook/saloon-server/internal/metrics"
	"github.com/saloonbook/saloon-server/internal/model"
	"github.com/saloonbook/saloon-server/internal/repository/memory"
	"github.com/saloonbook/saloon-server/internal/repository/postgres"
	"github.com/saloonbook/saloon-server/internal/server"
	"github.com/saloonbook/saloon-server/internal/service"
	storage "github.com/saloonbook/saloon-server/internal/storage/minio"
	"github.com/saloonbook/saloon-server/internal/sweeper"
	"github.com/saloonbook/saloon-server/internal/token"
	"github.com/saloonbook/saloon-server/internal/validation"
)

const shutdownTimeout = 10 * time.Second

// stores groups the persistence backends selected by configuration.
type stores struct {
	accounts    model.AccountStore
	credentials model.CredentialStore
	salons      model.SalonStore
	revoked     model.RevokedTokenStore
	storage     model.Storage
	ready       map[string]handler.ReadinessCheck
	closers     []func() error
}

// App owns every long-lived component of one server process.
type App struct {
	cfg     *config.Config
	logger  *logger.Logger
	handler http.Handler
	http    *httpserver.HTTPServer
	grpc    *grpcserver.GRPCServer
	sweeper *sweeper.Sweeper
	closers []func() error
}

// New connects the configured stores and builds both transports. Close
// releases what New opened when Run is not called.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	app := &App{cfg: cfg, logger: log, closers: st.closers}

	keyring, err := token.NewKeyring(cfg.JWT.KeyID, cfg.JWT.Secret, cfg.JWT.PreviousSecrets)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to build keyring: %w", err)
	}
	validator, err := validation.New()
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to build validator: %w", err)
	}

	tokenService := service.NewTokenService(token.NewJWT(keyring, cfg.JWT.TTL), st.revoked, log)
	passwordHasher := hasher.NewArgon2id(hasher.Params{Time: cfg.KDF.Time, MemKiB: cfg.KDF.MemKiB, Par: cfg.KDF.Par})

	authService := service.NewAuth(st.accounts, st.credentials, passwordHasher, validator, tokenService, m, log)
	accountService := service.NewAccount(st.accounts, validator, log)
	salonService := service.NewSalon(st.salons, st.storage, validator, log)
	ctxMgr := apicontext.NewManager()

	app.handler = httprouter.New(httprouter.Config{
		AuthService:    authService,
		AccountService: accountService,
		SalonService:   salonService,
		Authenticator:  tokenService,
		ContextManager: ctxMgr,
		Metrics:        m,
		MetricsHandler: metrics.Handler(reg),
		ReadyChecks:    st.ready,
		MaxUploadBytes: cfg.HTTP.MaxUploadBytes,
		Logger:         log,
	}).Register()
	app.http = httpserver.NewHTTPServer(app.handler, fmt.Sprintf(":%s", cfg.HTTP.Port), httpserver.Timeouts{
		Read:  cfg.HTTP.ReadTimeout,
		Write: cfg.HTTP.WriteTimeout,
	})

	if cfg.GRPC.Enabled {
		r := grpcrouter.New(authService, accountService, salonService, tokenService, ctxMgr, m, log)
		app.grpc = grpcserver.NewGRPCServer(r.Register(), fmt.Sprintf(":%s", cfg.GRPC.Port))
	}

	app.sweeper = sweeper.New(st.revoked, cfg.Sweep.Interval, m, log)

	return app, nil
}

func openStores(ctx context.Context, cfg *config.Config, log *logger.Logger) (stores, error) {
	st := stores{ready: map[string]handler.ReadinessCheck{}}

	switch cfg.Database.Driver {
	case config.DriverMemory:
		log.Warn("App: using in-memory stores, data is lost on exit")
		accounts := memory.NewAccountRepository()
		st.accounts = accounts
		st.credentials = accounts
		st.salons = memory.NewSalonRepository()
		st.revoked = memory.NewRevokedTokenRepository()
	default:
		db, err := postgres.NewConnection(ctx, postgres.ConnectionConfig{
			DSN:         cfg.Database.DSN,
			Attempts:    cfg.Database.ConnectAttempts,
			Backoff:     cfg.Database.ConnectBackoff,
			AutoMigrate: cfg.Database.AutoMigrate,
		}, log)
		if err != nil {
			return stores{}, fmt.Errorf("failed to initialize database: %w", err)
		}
		st.closers = append(st.closers, db.Close)
		st.ready["database"] = db.Ping

		accounts := postgres.NewAccountRepository(db)
		st.accounts = accounts
		st.credentials = accounts
		st.salons = postgres.NewSalonRepository(db)
		st.revoked = postgres.NewRevokedTokenRepository(db)
	}

	if !cfg.Storage.Enabled {
		st.storage = memory.NewStorage()
		return st, nil
	}

	client, err := storage.NewClient(ctx, storage.Config{
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Bucket:    cfg.Storage.Bucket,
		UseSSL:    cfg.Storage.UseSSL,
	})
	if err != nil {
		for _, c := range st.closers {
			_ = c()
		}
		return stores{}, fmt.Errorf("failed to initialize storage: %w", err)
	}
	st.storage = client
	st.ready["storage"] = func(ctx context.Context) error {
		_, err := client.Exists(ctx, "readyz")
		return err
	}

	return st, nil
}

// Handler returns the complete HTTP handler.
func (a *App) Handler() http.Handler {
	return a.handler
}

// Run serves HTTP, and gRPC when enabled, and sweeps the deny-list until ctx
// is cancelled or a server fails. Servers get shutdownTimeout to drain.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	servers := []model.Server{a.http}
	layers := []model.SecurityLayer{server.NewSecurityLayer(a.cfg.HTTP.EnableHTTPS, a.cfg.HTTP.CertFileName, a.cfg.HTTP.PrivateKeyFileName)}
	if a.grpc != nil {
		servers = append(servers, a.grpc)
		layers = append(layers, server.NewSecurityLayer(a.cfg.GRPC.EnableHTTPS, a.cfg.GRPC.CertFileName, a.cfg.GRPC.PrivateKeyFileName))
	}

	var wg sync.WaitGroup
	errCh := make(chan error, len(servers))
	for i, s := range servers {
		wg.Add(1)
		go func(s model.Server, sl model.SecurityLayer) {
			defer wg.Done()
			a.logger.Info("App: starting server", "address", s.Address())
			if err := s.Start(sl); err != nil {
				a.logger.Error("App: server failed", "address", s.Address(), "error", err.Error())
				errCh <- fmt.Errorf("server %s: %w", s.Address(), err)
				cancel()
			}
		}(s, layers[i])
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		a.sweeper.Run(runCtx)
	}()

	<-runCtx.Done()
	a.logger.Info("App: shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	var errs []error
	for _, s := range servers {
		if err := s.Stop(shutdownCtx); err != nil {
			a.logger.Error("App: error during server shutdown", "address", s.Address(), "error", err.Error())
			errs = append(errs, err)
		}
	}

	wg.Wait()
	close(errCh)
	for err := range errCh {
		errs = append(errs, err)
	}

	a.logger.Info("App: shutdown complete")
	return errors.Join(errs...)
}

// Close releases the stores opened by New.
func (a *App) Close() {
	for _, c := range a.closers {
		if err := c(); err != nil {
			a.logger.Warn("App: failed to close store", "error", err.Error())
		}
	}
	a.closers = nil
}
