// Command fundwise is the FundWise advisory client.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fundwise/fundwise-cli/internal/adapters/driven/advisor"
	"github.com/fundwise/fundwise-cli/internal/adapters/driven/config/file"
	"github.com/fundwise/fundwise-cli/internal/adapters/driven/export"
	"github.com/fundwise/fundwise-cli/internal/adapters/driven/pdfinfo"
	"github.com/fundwise/fundwise-cli/internal/adapters/driven/storage/memory"
	"github.com/fundwise/fundwise-cli/internal/adapters/driven/storage/sqlite"
	"github.com/fundwise/fundwise-cli/internal/adapters/driven/validation"
	"github.com/fundwise/fundwise-cli/internal/adapters/driving/cli"
	"github.com/fundwise/fundwise-cli/internal/core/domain"
	"github.com/fundwise/fundwise-cli/internal/core/ports/driven"
	"github.com/fundwise/fundwise-cli/internal/core/services"
	"github.com/fundwise/fundwise-cli/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	cli.LoadEnv()
	cli.SetVersion(version)

	configStore, err := file.NewConfigStore("")
	if err != nil {
		return report(fmt.Errorf("opening config: %w", err))
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		return report(fmt.Errorf("reading settings: %w", err))
	}
	applyEnvOverrides(settings)

	kv, closeStore, err := openStore(settings.Storage)
	if err != nil {
		return report(err)
	}
	defer closeStore()

	validator, err := validation.NewValidator()
	if err != nil {
		return report(fmt.Errorf("loading record schemas: %w", err))
	}

	profiles := services.NewProfileService(kv, validator)
	documents := services.NewDocumentService(kv, validator, pdfinfo.NewCounter())
	client := advisor.NewClient(advisor.Config{
		BaseURL:       settings.Advisor.BaseURL,
		Timeout:       time.Duration(settings.Advisor.TimeoutSeconds) * time.Second,
		RatePerSecond: settings.Advisor.RatePerSecond,
	})

	cli.Configure(cli.Services{
		Profile:    profiles,
		Documents:  documents,
		Gateway:    services.NewAnalysisGateway(client, profiles, documents),
		Navigation: services.NewNavigationController(),
		Settings:   settingsService,
		Exporter:   export.NewXLSXExporter(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// cobra prints the error itself.
	return cli.ExecuteContext(ctx)
}

// applyEnvOverrides lets the environment win over the config file for
// this run only. Nothing is written back.
func applyEnvOverrides(settings *domain.AppSettings) {
	if url := os.Getenv(cli.EnvAdvisorURL); url != "" {
		settings.Advisor.BaseURL = url
	}
	if dir := os.Getenv(cli.EnvDataDir); dir != "" {
		settings.Storage.DataDir = dir
	}
}

// openStore opens the configured key/value backend.
func openStore(cfg domain.StorageSettings) (driven.KVStore, func(), error) {
	if cfg.Backend == domain.StorageMemory {
		logger.Debug("storage: memory backend, quota %d bytes", cfg.QuotaBytes)
		return memory.NewKVStore(cfg.QuotaBytes), func() {}, nil
	}

	store, err := sqlite.NewStore(cfg.DataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("opening store: %w", err)
	}
	logger.Debug("storage: sqlite at %s", store.Path())
	return store, func() {
		if err := store.Close(); err != nil {
			logger.Warn("storage: close: %v", err)
		}
	}, nil
}

func report(err error) error {
	fmt.Fprintln(os.Stderr, "Error:", err)
	return err
}
