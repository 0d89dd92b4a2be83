package cli

import (
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fundwise/fundwise-cli/internal/core/domain"
)

func TestTUICmd_Exists(t *testing.T) {
	found := false
	for _, cmd := range rootCmd.Commands() {
		if cmd.Use == "tui" {
			found = true
			break
		}
	}
	assert.True(t, found, "tui command should be registered")
}

func TestTUICmd_ShortDescription(t *testing.T) {
	assert.Equal(t, "Launch the interactive terminal UI", tuiCmd.Short)
}

func TestTUICmd_HelpOutput(t *testing.T) {
	setupTestServices(t, nil)

	out, err := execute(t, "tui", "--help")

	require.NoError(t, err)
	assert.Contains(t, out, "interactive terminal user interface")
	assert.Contains(t, out, "Controls:")
}

func TestNewTUIApp(t *testing.T) {
	ts := setupTestServices(t, nil)
	ts.saveValidProfile()

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	app, err := newTUIApp(cmd)

	require.NoError(t, err)
	require.NotNil(t, app)
	assert.Equal(t, domain.StepDashboard, app.CurrentStep())
	assert.True(t, ts.nav.HasProfile())
}

func TestNewTUIApp_NotConfigured(t *testing.T) {
	setupTestServices(t, nil)
	Configure(Services{})

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	_, err := newTUIApp(cmd)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
