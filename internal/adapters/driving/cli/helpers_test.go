package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/fundwise/fundwise-cli/internal/adapters/driven/export"
	"github.com/fundwise/fundwise-cli/internal/adapters/driven/storage/memory"
	"github.com/fundwise/fundwise-cli/internal/core/domain"
	"github.com/fundwise/fundwise-cli/internal/core/services"
)

// fakeAdvisor implements driven.AdvisorClient with canned answers.
type fakeAdvisor struct {
	result    *domain.AnalysisResult
	err       error
	schemes   []domain.Scheme
	docResult *domain.DocumentAnalysis
	lastInput domain.ProfileInput
	calls     int
}

func (f *fakeAdvisor) Analyse(_ context.Context, in domain.ProfileInput) (*domain.AnalysisResult, error) {
	f.calls++
	f.lastInput = in
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result, nil
	}
	return sampleResult(in.Name), nil
}

func (f *fakeAdvisor) RepaymentPlan(_ context.Context, in domain.ProfileInput) (*domain.RepaymentPlan, error) {
	f.lastInput = in
	if f.err != nil {
		return nil, f.err
	}
	return &domain.RepaymentPlan{
		Strategy:     "Harvest-linked instalments",
		TenureMonths: 12,
		EMIINR:       4500,
		Schedule:     []domain.RepaymentInstallment{{Month: 1, AmountINR: 4500, Note: "after kharif"}},
	}, nil
}

func (f *fakeAdvisor) AssessLoan(_ context.Context, in domain.ProfileInput) (*domain.LoanAssessment, error) {
	f.lastInput = in
	if f.err != nil {
		return nil, f.err
	}
	alt := "Kisan Credit Card"
	return &domain.LoanAssessment{
		Assessed:         true,
		Label:            "risky",
		LabelDisplay:     "Risky",
		Reasoning:        "EMI is a large share of income.",
		SaferAlternative: &alt,
		Checklist:        []string{"Land record"},
	}, nil
}

func (f *fakeAdvisor) Schemes(context.Context) ([]domain.Scheme, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.schemes, nil
}

func (f *fakeAdvisor) AnalyseDocument(context.Context, string, string, []byte) (*domain.DocumentAnalysis, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.docResult != nil {
		return f.docResult, nil
	}
	return &domain.DocumentAnalysis{DocumentType: "Loan agreement", RiskLevel: domain.RiskLevelHigh,
		RedFlags: []string{"Compounding penalty interest"}}, nil
}

func sampleResult(name string) *domain.AnalysisResult {
	first, second := 1.0, 2.0
	raw, _ := json.Marshal(map[string]string{"farmer_name": name})
	return &domain.AnalysisResult{
		FarmerName: name,
		ProfileSummary: domain.FinancialProfile{
			Confidence:       "high",
			Summary:          "Seasonal income with a thin buffer.",
			ExpenseBreakdown: []domain.ChartSlice{{Label: "Household", Value: 6000}, {Label: "Inputs", Value: 2000}},
			RiskScores:       []domain.RiskScore{{Label: "Weather", Score: 72}},
			IncomeVsExpense:  domain.IncomeVsExpense{Income: 15000, Expenses: 8000, Surplus: 7000},
		},
		SchemeRecommendations: []domain.Scheme{
			{Name: "PM-KISAN", Priority: &second},
			{Name: "PM Fasal Bima Yojana", Priority: &first, SuitabilityLabel: "Highly suitable"},
		},
		FinalDecision: domain.FinalDecision{
			Headline:        "Insure before borrowing",
			PriorityActions: []domain.PriorityAction{{Step: 1, Action: "Enrol in PMFBY", Why: "Covers drought"}},
			WhatToAvoid:     "Moneylenders",
		},
		Raw: raw,
	}
}

// testServices is the wiring used by command tests.
type testServices struct {
	advisor  *fakeAdvisor
	profiles *services.ProfileService
	docs     *services.DocumentService
	gateway  *services.AnalysisGateway
	nav      *services.NavigationController
	settings *services.SettingsService
}

// setupTestServices configures the package with real services over an
// in-memory store and restores the globals afterwards.
func setupTestServices(t *testing.T, advisor *fakeAdvisor) *testServices {
	t.Helper()
	if advisor == nil {
		advisor = &fakeAdvisor{}
	}

	kv := memory.NewKVStore(0)
	ts := &testServices{advisor: advisor}
	ts.profiles = services.NewProfileService(kv, nil)
	ts.docs = services.NewDocumentService(kv, nil, nil)
	ts.gateway = services.NewAnalysisGateway(advisor, ts.profiles, ts.docs)
	ts.nav = services.NewNavigationController()
	ts.settings = services.NewSettingsService(memory.NewConfigStore())

	Configure(Services{
		Profile:    ts.profiles,
		Documents:  ts.docs,
		Gateway:    ts.gateway,
		Navigation: ts.nav,
		Settings:   ts.settings,
		Exporter:   export.NewXLSXExporter(),
	})

	t.Cleanup(func() {
		Configure(Services{})
		resetFlags(rootCmd)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	return ts
}

// resetFlags restores every flag to its default so tests sharing the
// command tree do not leak values into each other.
func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	})
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

// saveValidProfile stores a profile that passes analysis validation.
func (ts *testServices) saveValidProfile() {
	ts.profiles.Save(domain.ProfileInput{Profile: domain.Profile{
		Name:             "Asha",
		State:            domain.StateMaharashtra,
		LandAcres:        2.5,
		CropType:         domain.CropSoybean,
		IncomeType:       domain.IncomeSeasonal,
		MonthlyIncomeINR: 15000,
		HouseholdSize:    4,
	}})
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
