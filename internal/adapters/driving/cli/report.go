package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fundwise/fundwise-cli/internal/core/domain"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Export analysis reports",
}

var reportExportCmd = &cobra.Command{
	Use:   "export [file.xlsx]",
	Short: "Export the analysis as an Excel workbook",
	Long: `Analyse the saved profile and write the result as an Excel workbook with
summary, expenses, risk scores, schemes, and action plan sheets.`,
	Args: cobra.ExactArgs(1),
	RunE: runReportExport,
}

func init() {
	reportExportCmd.Flags().StringVar(&loanPurpose, "loan-purpose", "", "What the loan is for")
	reportExportCmd.Flags().Float64Var(&loanAmount, "loan-amount", 0, "Loan amount in INR")

	reportCmd.AddCommand(reportExportCmd)
	rootCmd.AddCommand(reportCmd)
}

func runReportExport(cmd *cobra.Command, args []string) error {
	if err := requireAnalysis(); err != nil {
		return err
	}
	if reportExporter == nil {
		return errors.New("report exporter not configured")
	}

	path := args[0]
	if !strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return fmt.Errorf("%w: report file must end in .xlsx", domain.ErrInvalidInput)
	}

	// Reuse a result from this session if there is one.
	result := analysisGateway.Result()
	if result == nil {
		var err error
		result, err = analyseProfile(cmd.Context(), profileInput(cmd))
		if err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := reportExporter.Export(f, profileService.Get(), result); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return fmt.Errorf("failed to export report: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	cmd.Printf("Report saved to %s\n", path)
	return nil
}
