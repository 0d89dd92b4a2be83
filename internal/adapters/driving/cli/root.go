// Package cli provides the fundwise command line interface.
package cli

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/fundwise/fundwise-cli/internal/core/ports/driven"
	"github.com/fundwise/fundwise-cli/internal/core/ports/driving"
	"github.com/fundwise/fundwise-cli/internal/logger"
)

// Environment variables that override the config file.
const (
	EnvAdvisorURL = "FUNDWISE_ADVISOR_URL"
	EnvDataDir    = "FUNDWISE_DATA_DIR"
)

// version is set at build time.
var version = "dev"

// verbose enables debug logging.
var verbose bool

// Services used by the commands. Nil until Configure is called.
var (
	profileService  driving.ProfileService
	documentService driving.DocumentService
	analysisGateway driving.AnalysisGateway
	navigation      driving.NavigationController
	settingsService driving.SettingsService
	reportExporter  driven.ReportExporter
)

// Services groups the dependencies the CLI needs.
type Services struct {
	Profile    driving.ProfileService
	Documents  driving.DocumentService
	Gateway    driving.AnalysisGateway
	Navigation driving.NavigationController
	Settings   driving.SettingsService
	Exporter   driven.ReportExporter
}

var rootCmd = &cobra.Command{
	Use:   "fundwise",
	Short: "Financial advisory assistant for farming households",
	Long: `FundWise keeps a household's financial profile and document library on this
machine and asks the FundWise analysis service for scheme matches, loan
suitability and a prioritised action plan.

Run 'fundwise profile set' to get started, then 'fundwise analyse'.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// Configure installs the services used by the commands.
func Configure(s Services) {
	profileService = s.Profile
	documentService = s.Documents
	analysisGateway = s.Gateway
	navigation = s.Navigation
	settingsService = s.Settings
	reportExporter = s.Exporter
}

// SetVersion sets the version reported by 'fundwise version'.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// LoadEnv loads a .env file from the working directory if one exists.
// Variables already set in the environment win.
func LoadEnv() {
	if _, err := os.Stat(".env"); err != nil {
		return
	}
	if err := godotenv.Load(); err != nil {
		logger.Warn("failed to load .env: %v", err)
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx, which commands see as
// cmd.Context().
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
