package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/fundwise/fundwise-cli/internal/core/domain"
)

func TestReportExport_RunsAnalysisWhenNoResult(t *testing.T) {
	ts := setupTestServices(t, nil)
	ts.saveValidProfile()
	dest := filepath.Join(t.TempDir(), "report.xlsx")

	out, err := execute(t, "report", "export", dest)

	require.NoError(t, err)
	assert.Contains(t, out, "Report saved to "+dest)
	assert.Equal(t, 1, ts.advisor.calls)

	f, err := excelize.OpenFile(dest)
	require.NoError(t, err)
	defer f.Close()
	assert.NotEmpty(t, f.GetSheetList())
}

func TestReportExport_ReusesSessionResult(t *testing.T) {
	ts := setupTestServices(t, nil)
	ts.saveValidProfile()
	_, err := execute(t, "analyse")
	require.NoError(t, err)

	_, err = execute(t, "report", "export", filepath.Join(t.TempDir(), "r.xlsx"))

	require.NoError(t, err)
	assert.Equal(t, 1, ts.advisor.calls)
}

func TestReportExport_RequiresXLSX(t *testing.T) {
	ts := setupTestServices(t, nil)
	ts.saveValidProfile()
	dest := filepath.Join(t.TempDir(), "report.csv")

	_, err := execute(t, "report", "export", dest)

	require.ErrorIs(t, err, domain.ErrInvalidInput)
	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr))
}

func TestReportExport_InvalidProfileWritesNothing(t *testing.T) {
	setupTestServices(t, nil)
	dest := filepath.Join(t.TempDir(), "report.xlsx")

	_, err := execute(t, "report", "export", dest)

	require.Error(t, err)
	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr))
}
