package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("nil ports returns error", func(t *testing.T) {
		server, err := NewServer(nil)
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingProfileService)
	})

	t.Run("missing profile service returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{})
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingProfileService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		env := newTestEnv(t, &stubAdvisor{})
		assert.NotNil(t, env.server)
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("profile only is valid", func(t *testing.T) {
		env := newTestEnv(t, &stubAdvisor{})
		ports := &Ports{Profile: env.profiles}
		assert.NoError(t, ports.Validate())
	})

	t.Run("all ports is valid", func(t *testing.T) {
		env := newTestEnv(t, &stubAdvisor{})
		assert.NoError(t, env.server.ports.Validate())
	})
}
