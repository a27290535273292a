package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	"github.com/ericfisherdev/omnisearch/internal/adapter/driven/backend"
	"github.com/ericfisherdev/omnisearch/internal/adapter/driven/credential"
	"github.com/ericfisherdev/omnisearch/internal/adapter/driven/notify"
	sqliteadapter "github.com/ericfisherdev/omnisearch/internal/adapter/driven/sqlite"
	httphandler "github.com/ericfisherdev/omnisearch/internal/adapter/driving/http"
	webhandler "github.com/ericfisherdev/omnisearch/internal/adapter/driving/web"
	"github.com/ericfisherdev/omnisearch/internal/application"
	"github.com/ericfisherdev/omnisearch/internal/config"
	"github.com/ericfisherdev/omnisearch/internal/observability"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration (fail fast on missing required env vars).
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)
	slog.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"db_path", cfg.DBPath,
		"backend_url", cfg.BackendURL,
		"credential_source", cfg.CredentialSource,
		"http_cache", cfg.HTTPCache,
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open database (dual reader/writer with WAL mode).
	db, err := sqliteadapter.NewDB(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()
	slog.Info("database opened", "path", cfg.DBPath)

	// 4. Run migrations on writer connection.
	version, err := sqliteadapter.RunMigrations(db.Writer)
	if err != nil {
		return err
	}
	slog.Info("migrations complete", "version", version)

	// 5. Metrics registry.
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := observability.NewMetrics(reg)

	// 6. Wire the backend client.
	creds, err := credential.ForEnvironment(credential.Environment(cfg.CredentialSource), cfg.CookieName)
	if err != nil {
		return err
	}
	notifier := notify.NewCounting(notify.Multi{notify.Toasts{}, notify.NewLog(logger)}, metrics)
	client := backend.NewClient(cfg.BackendURL, creds, notifier,
		backend.WithHTTPClient(&http.Client{Transport: backend.NewTransport(cfg.HTTPCache, metrics)}),
		backend.WithProbeEndpoint(cfg.ProbeEndpoint),
		backend.WithMetrics(metrics),
		backend.WithLogger(logger),
	)
	api := backend.NewAPI(client, cfg.FilesEndpoint, cfg.LogoutEndpoint, logger)

	// 7. Application services.
	fileSvc := application.NewFileService(api)
	sessionSvc := application.NewSessionService(client, api, creds, logger)
	chatSvc := application.NewChatService(sqliteadapter.NewChatRepo(db))

	// 8. Register API and GUI routes on one mux.
	mux := http.NewServeMux()
	httphandler.RegisterAPIRoutes(mux, httphandler.NewHandler(api, sessionSvc, db, reg, logger))
	webhandler.RegisterRoutes(mux, webhandler.NewHandler(
		fileSvc, sessionSvc, chatSvc, cfg.LoginURL(), cfg.CookieName, cfg.SecureCookies, logger,
	))

	// Apply middleware.
	handler := httphandler.ApplyMiddleware(webhandler.RequestScope(mux), logger, metrics)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server error", "error", err)
			stop()
		}
	}()

	// 9. Wait for shutdown signal.
	<-ctx.Done()
	slog.Info("shutting down")

	// 10. Graceful shutdown with 10s timeout for in-flight requests.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.LogJSON {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
