package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fundwise/fundwise-cli/internal/adapters/driving/mcp"
)

func TestMCPServeCmd_Flags(t *testing.T) {
	flag := mcpServeCmd.Flags().Lookup("port")
	require.NotNil(t, flag)
	assert.Equal(t, "p", flag.Shorthand)
	assert.Equal(t, "0", flag.DefValue)
}

func TestNewMCPServer(t *testing.T) {
	setupTestServices(t, nil)

	server, err := newMCPServer()

	require.NoError(t, err)
	assert.NotNil(t, server)
}

func TestNewMCPServer_NotConfigured(t *testing.T) {
	setupTestServices(t, nil)
	Configure(Services{})

	_, err := newMCPServer()

	assert.ErrorIs(t, err, mcp.ErrMissingProfileService)
}
