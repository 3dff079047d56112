package app

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/chambershq/chambers/internal/platform/http"
	"github.com/chambershq/chambers/internal/platform/service"
	"github.com/chambershq/chambers/internal/platform/store"
	"github.com/chambershq/chambers/internal/platform/store/drivers/postgres"
	"github.com/chambershq/chambers/internal/platform/store/drivers/sqlite"
	"github.com/chambershq/chambers/internal/platform/tenancy"
	"github.com/chambershq/chambers/pkg/cryptox"
	"github.com/chambershq/chambers/pkg/jwtx"
	"github.com/chambershq/chambers/pkg/slogx"

	"github.com/go-redis/redis/v8"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the platform service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db      store.Store
	backend tenancy.Backend

	// Tenancy plumbing
	registry *tenancy.Registry
	pool     *tenancy.Pool
	sweeper  *tenancy.Sweeper
	bus      *tenancy.InvalidationBus
	gate     *tenancy.Gate

	// Services
	tenantService *service.TenantService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "chambers-platform",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// Set master key path for tenant secret encryption
	cryptox.SetMasterKeyPath(app.cfg.MasterKeyPath)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	verifier, err := app.initVerifier()
	if err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initTenancy()
	app.initServices()
	app.initHTTP(verifier)

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	// Subscribe to tenant changes before serving so no invalidation is missed
	if err := app.bus.Start(context.Background()); err != nil {
		return fmt.Errorf("failed to start invalidation bus: %w", err)
	}

	app.sweeper.Start()

	app.logger.Info("platform service starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"driver", app.cfg.DBDriver,
	)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		// Perform graceful shutdown
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application: drain the server, stop the
// background workers, then close tenant connections and the control-plane
// store last so in-flight requests keep their handles until the end.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down platform service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	// Shutdown the HTTP server
	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	// Stop the idle sweeper and the invalidation bus
	app.sweeper.Stop()
	app.bus.Stop()

	// Drain all tenant connections
	if err := app.pool.CloseAll(); err != nil {
		app.logger.Error("error closing tenant connections", "error", err)
	}

	// Close the control-plane database connection
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("platform service stopped")
	return nil
}

// initDatabase opens the control-plane store for the configured driver,
// applies global migrations, and selects the matching tenant backend.
func (app *Application) initDatabase() error {
	switch app.cfg.DBDriver {
	case "sqlite":
		dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", app.cfg.DatabaseFile)
		db, err := sqlite.NewStore(dsn)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		app.db = db
		app.backend = sqlite.NewBackend(app.cfg.DataDir, app.cfg.TenantMaxConns, app.cfg.TenantMaxIdle)

	case "postgres":
		db, err := postgres.NewStore(postgres.Config{
			DSN:            app.cfg.DatabaseURL,
			MaxConns:       app.cfg.DBMaxConns,
			MaxIdle:        app.cfg.DBMaxIdle,
			TenantMaxConns: app.cfg.TenantMaxConns,
			TenantMaxIdle:  app.cfg.TenantMaxIdle,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		app.db = db
		app.backend = db // schemas live in the same cluster as the directory

	default:
		return fmt.Errorf("unknown database driver %q (want sqlite or postgres)", app.cfg.DBDriver)
	}

	if err := app.db.ApplyMigrations(); err != nil {
		_ = app.db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "driver", app.cfg.DBDriver)
	return nil
}

// initVerifier builds the bearer-token verifier for the platform admin API.
// Without a configured secret it falls back to an ephemeral one, which means
// tokens minted by anything else will not verify against this process.
func (app *Application) initVerifier() (jwtx.Verifier, error) {
	secret := []byte(app.cfg.TokenSecret)
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("failed to generate ephemeral token secret: %w", err)
		}
		app.logger.Warn("CHAMBERS_TOKEN_SECRET is not set; platform admin tokens minted elsewhere will not verify")
	}

	return jwtx.NewHS256Verifier(secret, app.cfg.Issuer)
}

// initTenancy wires the host registry, schema provisioner, connection pool,
// idle sweeper, invalidation bus and resolution gate.
func (app *Application) initTenancy() {
	app.registry = tenancy.NewRegistry(tenancy.RegistryConfig{
		Tenants: app.db.Tenants(),
		Logger:  app.logger,
		TTL:     app.cfg.RegistryTTL,
	})

	provisioner := &tenancy.SchemaProvisioner{
		Backend: app.backend,
		Prefix:  app.cfg.NamespacePrefix,
		Logger:  app.logger,
	}

	app.pool = tenancy.NewPool(tenancy.PoolConfig{
		Provisioner:    provisioner,
		Backend:        app.backend,
		Logger:         app.logger,
		MaxEntries:     app.cfg.PoolMaxEntries,
		IdleTTL:        app.cfg.PoolIdleTTL,
		ConnectTimeout: app.cfg.PoolConnectTimeout,
	})

	app.sweeper = tenancy.NewSweeper(app.pool, app.logger, app.cfg.SweepInterval)

	// The bus is nil-safe: without Redis it no-ops and invalidation stays local
	var client *redis.Client
	if app.cfg.RedisAddr != "" {
		client = redis.NewClient(&redis.Options{
			Addr:     app.cfg.RedisAddr,
			Password: app.cfg.RedisPassword,
		})
	}
	app.bus = tenancy.NewInvalidationBus(client, app.registry, app.logger)

	app.gate = tenancy.NewGate(tenancy.GateConfig{
		Registry: app.registry,
		Pool:     app.pool,
		Logger:   app.logger,
	})
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.tenantService = &service.TenantService{
		Store:    app.db,
		Registry: app.registry,
		Bus:      app.bus,
	}
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP(verifier jwtx.Verifier) {
	router := httpapi.NewRouter(
		verifier,
		BuildVersion,
		app.db,
		app.pool,
		app.gate,
		app.logger,
	)

	// Wire services to router
	router.TenantService = app.tenantService
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
