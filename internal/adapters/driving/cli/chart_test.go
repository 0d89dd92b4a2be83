package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fundwise/fundwise-cli/internal/core/domain"
)

func TestChartDonut_FromArgs(t *testing.T) {
	setupTestServices(t, nil)

	out, err := execute(t, "chart", "donut", "Household=3", "Inputs=1")

	require.NoError(t, err)
	assert.Contains(t, out, "Household")
	assert.Contains(t, out, "75.0%")
	assert.Contains(t, out, "25.0%")
	assert.Contains(t, out, "M 50 10")
}

func TestChartDonut_WritesSVG(t *testing.T) {
	setupTestServices(t, nil)
	dest := filepath.Join(t.TempDir(), "donut.svg")

	out, err := execute(t, "chart", "donut", "A=1", "B=1", "--svg", dest)

	require.NoError(t, err)
	assert.Contains(t, out, "Saved "+dest)
	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
	assert.Contains(t, string(data), "<title>A</title>")
}

func TestChartDonut_ZeroTotal(t *testing.T) {
	setupTestServices(t, nil)

	out, err := execute(t, "chart", "donut", "A=0", "B=-5")

	require.NoError(t, err)
	assert.Contains(t, out, "No data to chart.")
}

func TestChartDonut_FromAnalysis(t *testing.T) {
	ts := setupTestServices(t, nil)
	ts.saveValidProfile()

	out, err := execute(t, "chart", "donut")

	require.NoError(t, err)
	assert.Contains(t, out, "Household")
	assert.Contains(t, out, "Inputs")
	assert.Equal(t, 1, ts.advisor.calls)
}

func TestChartDonut_BadPair(t *testing.T) {
	setupTestServices(t, nil)

	_, err := execute(t, "chart", "donut", "Household")
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = execute(t, "chart", "donut", "Household=lots")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestChartGauge(t *testing.T) {
	setupTestServices(t, nil)

	out, err := execute(t, "chart", "gauge", "150")

	require.NoError(t, err)
	assert.Contains(t, out, "Score: 100")
	assert.Contains(t, out, "Track: ")
	assert.Contains(t, out, "Dash:")
}

func TestChartGauge_NotANumber(t *testing.T) {
	setupTestServices(t, nil)

	_, err := execute(t, "chart", "gauge", "high")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestChartSparkline(t *testing.T) {
	setupTestServices(t, nil)

	out, err := execute(t, "chart", "sparkline", "1", "3", "2", "--width", "100", "--height", "20")

	require.NoError(t, err)
	assert.Contains(t, out, "M ")
}

func TestChartSparkline_TooShort(t *testing.T) {
	setupTestServices(t, nil)

	out, err := execute(t, "chart", "sparkline", "5")

	require.NoError(t, err)
	assert.Contains(t, out, "Need at least two values")
}
