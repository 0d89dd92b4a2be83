package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSteps_BeforeAnalysis(t *testing.T) {
	setupTestServices(t, nil)

	out, err := execute(t, "steps")

	require.NoError(t, err)
	assert.Contains(t, out, "> ")
	assert.Contains(t, out, "(locked)")
	assert.Contains(t, out, "Profile: not saved")
	assert.Contains(t, out, "Run 'fundwise analyse'")
}

func TestSteps_AfterAnalysis(t *testing.T) {
	ts := setupTestServices(t, nil)
	ts.saveValidProfile()
	_, err := execute(t, "analyse")
	require.NoError(t, err)

	out, err := execute(t, "steps")

	require.NoError(t, err)
	assert.NotContains(t, out, "(locked)")
	assert.Contains(t, out, "Profile: saved")
	assert.NotContains(t, out, "Run 'fundwise analyse'")
}

func TestSteps_NotConfigured(t *testing.T) {
	setupTestServices(t, nil)
	Configure(Services{})

	_, err := execute(t, "steps")

	require.Error(t, err)
}
