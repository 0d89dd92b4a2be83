package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fundwise/fundwise-cli/internal/core/domain"
	"github.com/fundwise/fundwise-cli/internal/core/geometry"
)

var analyseCmd = &cobra.Command{
	Use:   "analyse",
	Short: "Analyse the saved profile",
	Long: `Send the saved profile to the analysis service and print the snapshot,
matching schemes, and the recommended plan.

Pass --loan-purpose and --loan-amount to include a loan request.`,
	Args: cobra.NoArgs,
	RunE: runAnalyse,
}

var repaymentPlanCmd = &cobra.Command{
	Use:   "repayment-plan",
	Short: "Request an EMI schedule for a loan",
	Args:  cobra.NoArgs,
	RunE:  runRepaymentPlan,
}

var assessLoanCmd = &cobra.Command{
	Use:   "assess-loan",
	Short: "Check whether a loan is suitable",
	Args:  cobra.NoArgs,
	RunE:  runAssessLoan,
}

var analyseDocumentCmd = &cobra.Command{
	Use:   "analyse-document [file]",
	Short: "Scan a document for risky terms",
	Long: `Scan a loan agreement or similar document for red flags.

Pass a file path, or --id to scan a document already in the library.
Supported types: pdf, png, jpg, jpeg.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyseDocument,
}

var schemesCmd = &cobra.Command{
	Use:   "schemes",
	Short: "List government schemes",
	Args:  cobra.NoArgs,
	RunE:  runSchemes,
}

// Flags for analysis commands.
var (
	loanPurpose  string
	loanAmount   float64
	analyseJSON  bool
	analyseDocID string
)

func init() {
	for _, c := range []*cobra.Command{analyseCmd, repaymentPlanCmd, assessLoanCmd} {
		c.Flags().StringVar(&loanPurpose, "loan-purpose", "", "What the loan is for")
		c.Flags().Float64Var(&loanAmount, "loan-amount", 0, "Loan amount in INR")
	}
	for _, c := range []*cobra.Command{analyseCmd, repaymentPlanCmd, assessLoanCmd, analyseDocumentCmd} {
		c.Flags().BoolVar(&analyseJSON, "json", false, "Print the raw service response")
	}
	analyseDocumentCmd.Flags().StringVar(&analyseDocID, "id", "", "Library document ID to scan")

	rootCmd.AddCommand(analyseCmd)
	rootCmd.AddCommand(repaymentPlanCmd)
	rootCmd.AddCommand(assessLoanCmd)
	rootCmd.AddCommand(analyseDocumentCmd)
	rootCmd.AddCommand(schemesCmd)
}

// profileInput combines the saved profile with the loan flags.
func profileInput(cmd *cobra.Command) domain.ProfileInput {
	in := domain.ProfileInput{Profile: profileService.Get()}
	if cmd.Flags().Changed("loan-purpose") {
		in.LoanPurpose = strings.TrimSpace(loanPurpose)
	}
	if cmd.Flags().Changed("loan-amount") {
		amount := loanAmount
		in.LoanAmountINR = &amount
	}
	return in
}

func requireAnalysis() error {
	if profileService == nil {
		return errors.New("profile service not configured")
	}
	if analysisGateway == nil {
		return errors.New("analysis gateway not configured")
	}
	return nil
}

func runAnalyse(cmd *cobra.Command, _ []string) error {
	if err := requireAnalysis(); err != nil {
		return err
	}

	result, err := analyseProfile(cmd.Context(), profileInput(cmd))
	if err != nil {
		return err
	}

	if analyseJSON {
		cmd.Println(string(result.Raw))
		return nil
	}
	printAnalysis(cmd, result)
	return nil
}

// analyseProfile submits in and advances navigation on success.
func analyseProfile(ctx context.Context, in domain.ProfileInput) (*domain.AnalysisResult, error) {
	result, err := analysisGateway.SubmitForAnalysis(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("analysis failed: %w", err)
	}
	if navigation != nil {
		navigation.OnAnalysisSucceeded()
	}
	return result, nil
}

func printAnalysis(cmd *cobra.Command, r *domain.AnalysisResult) {
	s := r.ProfileSummary
	d := r.FinalDecision

	cmd.Printf("Financial snapshot for %s\n", r.FarmerName)
	cmd.Println(strings.Repeat("=", 24+len(r.FarmerName)))
	if s.Summary != "" {
		cmd.Println(s.Summary)
	}
	cmd.Println()

	pct := geometry.ConfidencePercent(s.Confidence)
	cmd.Printf("Confidence  %s %3.0f%% (%s)\n", textBar(pct/100, 20), pct, geometry.ConfidenceBandFor(pct))
	for _, b := range geometry.IncomeExpenseBars(s.IncomeVsExpense) {
		cmd.Printf("%-10s  %s %s\n", b.Label, textBar(b.Fraction, 20), formatINR(b.Value))
	}
	cmd.Println()

	if len(s.RiskScores) > 0 {
		cmd.Println("[Risks]")
		for _, rs := range s.RiskScores {
			cmd.Printf("  %-16s %s %3.0f (%s)\n", rs.Label, textBar(geometry.GaugeFill(rs.Score), 10),
				geometry.ClampScore(rs.Score), geometry.GaugeBand(rs.Score))
		}
		cmd.Println()
	}

	if len(r.SchemeRecommendations) > 0 {
		cmd.Println("[Schemes]")
		for _, sc := range r.SchemeRecommendations {
			label := sc.SuitabilityLabel
			if label == "" {
				label = sc.Suitability
			}
			cmd.Printf("  %s", sc.Name)
			if label != "" {
				cmd.Printf(" - %s", label)
			}
			cmd.Println()
			if sc.ActionRequired != "" {
				cmd.Printf("      %s\n", sc.ActionRequired)
			}
		}
		cmd.Println()
	}

	if r.LoanAssessment.Assessed {
		cmd.Println("[Loan]")
		printLoanAssessment(cmd, &r.LoanAssessment)
		cmd.Println()
	}

	cmd.Println("[Decision]")
	if d.Headline != "" {
		cmd.Printf("  %s\n", d.Headline)
	}
	for _, a := range d.PriorityActions {
		cmd.Printf("  %d. %s\n", a.Step, a.Action)
		if a.Why != "" {
			cmd.Printf("     %s\n", a.Why)
		}
	}
	if d.WhatToAvoid != "" {
		cmd.Printf("  Avoid: %s\n", d.WhatToAvoid)
	}
	if len(d.DocumentsNeeded) > 0 {
		cmd.Printf("  Documents needed: %s\n", strings.Join(d.DocumentsNeeded, ", "))
	}
}

func printLoanAssessment(cmd *cobra.Command, a *domain.LoanAssessment) {
	label := a.LabelDisplay
	if label == "" {
		label = a.Label
	}
	cmd.Printf("  Verdict: %s\n", label)
	if a.Reasoning != "" {
		cmd.Printf("  %s\n", a.Reasoning)
	}
	if a.KeyRisk != "" {
		cmd.Printf("  Key risk: %s\n", a.KeyRisk)
	}
	if a.EMIConcern && a.EMIConcernDetail != nil {
		cmd.Printf("  EMI concern: %s\n", *a.EMIConcernDetail)
	}
	if a.SaferAlternative != nil {
		cmd.Printf("  Safer alternative: %s\n", *a.SaferAlternative)
	}
	if a.EstimatedInterestRate != "" {
		cmd.Printf("  Estimated interest: %s\n", a.EstimatedInterestRate)
	}
	for _, item := range a.Checklist {
		cmd.Printf("  - %s\n", item)
	}
}

func runRepaymentPlan(cmd *cobra.Command, _ []string) error {
	if err := requireAnalysis(); err != nil {
		return err
	}

	plan, err := analysisGateway.RequestRepaymentPlan(cmd.Context(), profileInput(cmd))
	if err != nil {
		return fmt.Errorf("repayment plan failed: %w", err)
	}
	if analyseJSON {
		cmd.Println(string(plan.Raw))
		return nil
	}

	cmd.Println("Repayment plan")
	cmd.Println("==============")
	if plan.Strategy != "" {
		cmd.Printf("  Strategy: %s\n", plan.Strategy)
	}
	if plan.TenureMonths > 0 {
		cmd.Printf("  Tenure:   %.0f months\n", plan.TenureMonths)
	}
	if plan.EMIINR > 0 {
		cmd.Printf("  EMI:      %s\n", formatINR(plan.EMIINR))
	}
	if len(plan.Schedule) > 0 {
		cmd.Println()
		for _, inst := range plan.Schedule {
			cmd.Printf("  Month %-3d %12s", inst.Month, formatINR(inst.AmountINR))
			if inst.Note != "" {
				cmd.Printf("  %s", inst.Note)
			}
			cmd.Println()
		}
	}
	for _, n := range plan.Notes {
		cmd.Printf("  Note: %s\n", n)
	}
	return nil
}

func runAssessLoan(cmd *cobra.Command, _ []string) error {
	if err := requireAnalysis(); err != nil {
		return err
	}

	a, err := analysisGateway.AssessLoan(cmd.Context(), profileInput(cmd))
	if err != nil {
		return fmt.Errorf("loan assessment failed: %w", err)
	}

	cmd.Println("Loan assessment")
	cmd.Println("===============")
	printLoanAssessment(cmd, a)
	return nil
}

func runAnalyseDocument(cmd *cobra.Command, args []string) error {
	if analysisGateway == nil {
		return errors.New("analysis gateway not configured")
	}

	var (
		analysis *domain.DocumentAnalysis
		err      error
	)
	switch {
	case analyseDocID != "" && len(args) > 0:
		return errors.New("pass either a file or --id, not both")
	case analyseDocID != "":
		analysis, err = analysisGateway.AnalyseStoredDocument(cmd.Context(), analyseDocID)
	case len(args) == 1:
		var content []byte
		content, err = os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		name := filepath.Base(args[0])
		analysis, err = analysisGateway.AnalyseDocument(cmd.Context(), name, domain.MIMETypeFor(name), content)
	default:
		return errors.New("a file or --id is required")
	}
	if err != nil {
		return fmt.Errorf("document analysis failed: %w", err)
	}

	if analyseJSON {
		cmd.Println(string(analysis.Raw))
		return nil
	}

	cmd.Println("Document scan")
	cmd.Println("=============")
	if analysis.DocumentType != "" {
		cmd.Printf("  Type:  %s\n", analysis.DocumentType)
	}
	cmd.Printf("  Risk:  %s\n", analysis.RiskLevel)
	if analysis.Summary != "" {
		cmd.Printf("  %s\n", analysis.Summary)
	}
	for _, f := range analysis.RedFlags {
		cmd.Printf("  ! %s\n", f)
	}
	return nil
}

func runSchemes(cmd *cobra.Command, _ []string) error {
	if analysisGateway == nil {
		return errors.New("analysis gateway not configured")
	}

	schemes, err := analysisGateway.FetchSchemes(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load schemes: %w", err)
	}
	if len(schemes) == 0 {
		cmd.Println("No schemes available.")
		return nil
	}

	for _, s := range schemes {
		cmd.Printf("  %s", s.Name)
		if s.Category != "" {
			cmd.Printf(" [%s]", s.Category)
		}
		cmd.Println()
		if s.Description != "" {
			cmd.Printf("    %s\n", s.Description)
		}
		if s.BenefitINR != "" {
			cmd.Printf("    Benefit: %s\n", s.BenefitINR)
		}
	}
	cmd.Printf("\nTotal: %d schemes\n", len(schemes))
	return nil
}

// textBar renders fraction (0..1) as a fixed-width bar.
func textBar(fraction float64, width int) string {
	filled := int(fraction*float64(width) + 0.5)
	filled = max(0, min(width, filled))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
