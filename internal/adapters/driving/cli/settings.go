package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/fundwise/fundwise-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the analysis service and storage settings.

Settings are stored in ~/.fundwise/config.toml. The FUNDWISE_ADVISOR_URL and
FUNDWISE_DATA_DIR environment variables take precedence.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsAdvisorCmd = &cobra.Command{
	Use:   "advisor [url]",
	Short: "Set the analysis service URL",
	Long: `Set the base URL of the FundWise analysis service.

Example:
  fundwise settings advisor http://localhost:8000`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsAdvisor,
}

var settingsStorageCmd = &cobra.Command{
	Use:   "storage [backend]",
	Short: "Select the storage backend",
	Long: `Select where the profile and documents are kept.

Available backends:
  sqlite - Durable database under the data directory (default)
  memory - Kept in memory only, lost on exit`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsStorage,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsAdvisorCmd)
	settingsCmd.AddCommand(settingsStorageCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Advisor]")
	cmd.Printf("  Base URL: %s\n", settings.Advisor.BaseURL)
	if settings.Advisor.TimeoutSeconds > 0 {
		cmd.Printf("  Timeout: %ds\n", settings.Advisor.TimeoutSeconds)
	} else {
		cmd.Println("  Timeout: none")
	}
	cmd.Printf("  Rate limit: %g requests/s\n", settings.Advisor.RatePerSecond)
	cmd.Println()

	cmd.Println("[Storage]")
	cmd.Printf("  Backend: %s\n", settings.Storage.Backend)
	dataDir := settings.Storage.DataDir
	if dataDir == "" {
		dataDir = "~/.fundwise/data"
	}
	cmd.Printf("  Data dir: %s\n", dataDir)
	if settings.Storage.QuotaBytes > 0 {
		cmd.Printf("  Quota: %s\n", humanize.Bytes(uint64(settings.Storage.QuotaBytes)))
	} else {
		cmd.Println("  Quota: unlimited")
	}

	return nil
}

func runSettingsAdvisor(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	url := strings.TrimSpace(args[0])
	if err := settingsService.SetAdvisorURL(url); err != nil {
		return fmt.Errorf("failed to set advisor URL: %w", err)
	}
	cmd.Printf("Advisor URL set to: %s\n", url)
	return nil
}

func runSettingsStorage(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	backend := domain.StorageBackend(strings.ToLower(strings.TrimSpace(args[0])))
	if err := settingsService.SetStorageBackend(backend); err != nil {
		return fmt.Errorf("failed to set storage backend: %w", err)
	}
	cmd.Printf("Storage backend set to: %s\n", backend)
	if backend == domain.StorageMemory {
		cmd.Println("Note: the profile and documents will not survive a restart.")
	}
	return nil
}
