// Package main is the entry point for the quotevault service.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jsamuelsen/quotevault/internal/adapters/clients"
	"github.com/jsamuelsen/quotevault/internal/adapters/clients/acl"
	"github.com/jsamuelsen/quotevault/internal/adapters/http"
	"github.com/jsamuelsen/quotevault/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quotevault/internal/adapters/persistence"
	"github.com/jsamuelsen/quotevault/internal/app"
	"github.com/jsamuelsen/quotevault/internal/platform/config"
	"github.com/jsamuelsen/quotevault/internal/platform/logging"
	"github.com/jsamuelsen/quotevault/internal/platform/telemetry"
	"github.com/jsamuelsen/quotevault/internal/ports"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD)"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	loc, err := cfg.Vault.Location()
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	logging.SetDefault(logger)

	logger.Info("starting quotevault",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
		slog.String("storage", cfg.Storage.Backend),
		slog.String("timezone", loc.String()),
	)

	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(ctx); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	healthRegistry := ports.NewHealthRegistry()

	store, err := persistence.Open(cfg.Storage, logger)
	if err != nil {
		return fmt.Errorf("opening blob store: %w", err)
	}

	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			logger.Error("blob store close error", slog.Any("error", closeErr))
		}
	}()

	if err := healthRegistry.Register(store); err != nil {
		return fmt.Errorf("registering blob store health check: %w", err)
	}

	classifier, err := newClassifier(cfg, logger)
	if err != nil {
		return err
	}

	// The vault keeps working without the classifier; readiness reports degraded.
	if err := healthRegistry.Register(ports.Optional(classifier)); err != nil {
		return fmt.Errorf("registering classifier health check: %w", err)
	}

	vault := app.NewVault(&app.VaultConfig{
		Store:              store,
		Classifier:         classifier,
		Logger:             logger,
		Location:           loc,
		FreeLimit:          cfg.Vault.FreeLimit,
		DailyRewardCredits: cfg.Vault.DailyRewardCredits,
		HistoryRetention:   cfg.Vault.HistoryRetention,
		MaxImages:          cfg.Vault.MaxImages,
		RecentLimit:        cfg.Vault.RecentLimit,
	})

	if err := vault.Load(ctx); err != nil {
		return fmt.Errorf("loading vault: %w", err)
	}

	if err := telemetry.RegisterVaultGauges(prometheus.DefaultRegisterer, vault); err != nil {
		return err
	}

	buildInfo := handlers.NewBuildInfo(Version, Commit, BuildTime)
	buildInfo.Storage = cfg.Storage.Backend

	server := http.New(&cfg.Server, logger)
	http.SetupRouter(server.Engine(), http.NewDefaultRouterConfig(
		logger,
		cfg.Telemetry.ServiceName,
		handlers.NewHealthHandler(healthRegistry, buildInfo),
		handlers.NewVaultHandler(vault),
	))

	serverErr, err := server.Start()
	if err != nil {
		return err
	}

	return waitForShutdown(ctx, logger, server, serverErr, cfg.Server.ShutdownTimeout)
}

func newClassifier(cfg *config.Config, logger *slog.Logger) (*acl.GeminiClassifier, error) {
	gemini := cfg.Services.Gemini

	httpClient, err := clients.New(&clients.Config{
		BaseURL:     gemini.BaseURL,
		ServiceName: gemini.Name,
		Timeout:     cfg.Client.Timeout,
		Retry:       cfg.Client.Retry,
		Circuit:     cfg.Client.CircuitBreaker,
		Transport:   cfg.Client.Transport,
		AuthFunc:    acl.APIKeyAuth(gemini.APIKey),
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating %s client: %w", gemini.Name, err)
	}

	if gemini.APIKey == "" {
		logger.Warn("classifier api key not configured, extraction and intent search are disabled",
			slog.String("service", gemini.Name),
		)
	}

	return acl.NewGeminiClassifier(acl.GeminiConfig{
		Client: httpClient,
		Model:  gemini.Model,
		APIKey: gemini.APIKey,
		Logger: logger,
	}), nil
}

// waitForShutdown blocks until a signal or a server error, then drains
// in-flight requests within shutdownTimeout.
func waitForShutdown(
	ctx context.Context,
	logger *slog.Logger,
	server *http.Server,
	serverErr <-chan error,
	shutdownTimeout time.Duration,
) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err, ok := <-serverErr:
		if !ok {
			return nil
		}

		return fmt.Errorf("server error: %w", err)

	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	logger.Info("initiating graceful shutdown", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}
