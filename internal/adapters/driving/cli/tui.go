package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/fundwise/fundwise-cli/internal/adapters/driving/tui"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for FundWise.

The TUI walks through the advisory workflow: profile, snapshot, schemes,
loan check and final decision. Steps after the profile unlock once an
analysis has run.

Controls:
  ↑/k, ↓/j - Move in the sidebar
  Enter    - Open step / next field
  Tab      - Switch between sidebar and main pane
  Ctrl+R   - Run analysis
  Ctrl+N/P - Next / previous wizard step
  Ctrl+S   - Save profile
  ?        - Toggle help
  q        - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// newTUIApp builds the app from the configured services.
func newTUIApp(cmd *cobra.Command) (*tui.App, error) {
	if profileService == nil || analysisGateway == nil || navigation == nil {
		return nil, errors.New("tui: services not configured")
	}

	ports := tui.NewPorts(profileService, documentService, analysisGateway, navigation)
	app, err := tui.NewApp(ports)
	if err != nil {
		return nil, fmt.Errorf("failed to create TUI: %w", err)
	}
	return app.WithContext(cmd.Context()), nil
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panic: %v", r)
		}
	}()

	app, err := newTUIApp(cmd)
	if err != nil {
		return err
	}

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
