// Package export writes analysis reports as XLSX workbooks using excelize.
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/fundwise/fundwise-cli/internal/core/domain"
	"github.com/fundwise/fundwise-cli/internal/core/ports/driven"
)

// Ensure XLSXExporter implements the interface.
var _ driven.ReportExporter = (*XLSXExporter)(nil)

// Sheet names in workbook order.
const (
	SheetSummary  = "Summary"
	SheetExpenses = "Expenses"
	SheetRisks    = "Risk Scores"
	SheetSchemes  = "Schemes"
	SheetActions  = "Action Plan"
)

// XLSXExporter renders a profile and its analysis into a workbook.
type XLSXExporter struct{}

// NewXLSXExporter creates a new exporter.
func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

// Export writes the report workbook to w.
func (e *XLSXExporter) Export(w io.Writer, profile domain.Profile, result *domain.AnalysisResult) error {
	if result == nil {
		return domain.ErrNoResult
	}

	f := excelize.NewFile()
	defer f.Close()

	// The default workbook starts with "Sheet1"; reuse it for the summary.
	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{SheetExpenses, SheetRisks, SheetSchemes, SheetActions} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	writers := []func(*excelize.File) error{
		func(f *excelize.File) error { return writeSummary(f, profile, result) },
		func(f *excelize.File) error { return writeExpenses(f, result.ProfileSummary.ExpenseBreakdown) },
		func(f *excelize.File) error { return writeRisks(f, result.ProfileSummary.RiskScores) },
		func(f *excelize.File) error { return writeSchemes(f, result.SchemeRecommendations) },
		func(f *excelize.File) error { return writeActions(f, result.FinalDecision) },
	}
	var errs []error
	for _, write := range writers {
		errs = append(errs, write(f))
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, profile domain.Profile, result *domain.AnalysisResult) error {
	name := result.FarmerName
	if name == "" {
		name = profile.Name
	}
	risks := make([]string, 0, len(profile.RiskExposure))
	for _, r := range profile.RiskExposure {
		risks = append(risks, r.Label())
	}

	summary := result.ProfileSummary
	decision := result.FinalDecision
	rows := [][]any{
		{"Farmer", name},
		{"State", string(profile.State)},
		{"Land (acres)", profile.LandAcres},
		{"Crop", string(profile.CropType)},
		{"Income type", string(profile.IncomeType)},
		{"Monthly income (INR)", profile.MonthlyIncomeINR},
		{"Household size", profile.HouseholdSize},
		{"Existing debt (INR)", profile.ExistingDebtINR},
		{"Risk exposure", strings.Join(risks, ", ")},
		{},
		{"Income pattern", summary.IncomePattern},
		{"Debt load", summary.DebtLoad},
		{"Monthly surplus (INR)", summary.MonthlySurplusINR},
		{"Vulnerability", summary.FinancialVulnerability},
		{"Confidence", summary.Confidence},
		{"Summary", summary.Summary},
		{},
		{"Recommendation", decision.Recommendation},
		{"Headline", decision.Headline},
		{"Reasoning", decision.Reasoning},
		{"What to avoid", decision.WhatToAvoid},
		{"Loan verdict", loanVerdict(result.LoanAssessment)},
	}
	if err := writeRows(f, SheetSummary, 1, rows); err != nil {
		return err
	}

	_ = f.SetColWidth(SheetSummary, "A", "A", 24)
	_ = f.SetColWidth(SheetSummary, "B", "B", 60)
	return nil
}

func loanVerdict(a domain.LoanAssessment) string {
	if !a.Assessed {
		return "not assessed"
	}
	if a.LabelDisplay != "" {
		return a.LabelDisplay
	}
	return a.Label
}

func writeExpenses(f *excelize.File, slices []domain.ChartSlice) error {
	var total float64
	for _, s := range slices {
		if s.Value > 0 {
			total += s.Value
		}
	}

	rows := [][]any{{"Category", "Monthly (INR)", "Share"}}
	for _, s := range slices {
		share := 0.0
		if total > 0 && s.Value > 0 {
			share = s.Value / total
		}
		rows = append(rows, []any{s.Label, s.Value, share})
	}
	if err := writeRows(f, SheetExpenses, 1, rows); err != nil {
		return err
	}

	_ = f.SetColWidth(SheetExpenses, "A", "A", 22)
	_ = f.SetColWidth(SheetExpenses, "B", "C", 14)
	return nil
}

func writeRisks(f *excelize.File, scores []domain.RiskScore) error {
	rows := [][]any{{"Risk", "Score", "Description"}}
	for _, s := range scores {
		rows = append(rows, []any{s.Label, s.Score, s.Description})
	}
	if err := writeRows(f, SheetRisks, 1, rows); err != nil {
		return err
	}

	_ = f.SetColWidth(SheetRisks, "A", "A", 20)
	_ = f.SetColWidth(SheetRisks, "C", "C", 60)
	return nil
}

func writeSchemes(f *excelize.File, schemes []domain.Scheme) error {
	sorted := make([]domain.Scheme, len(schemes))
	copy(sorted, schemes)
	domain.SortSchemesByPriority(sorted)

	rows := [][]any{{"Priority", "Scheme", "Category", "Suitability", "Benefit (INR)", "Action"}}
	for _, s := range sorted {
		var priority any = ""
		if s.Priority != nil {
			priority = *s.Priority
		}
		suitability := s.SuitabilityLabel
		if suitability == "" {
			suitability = s.Suitability
		}
		rows = append(rows, []any{priority, s.Name, s.Category, suitability, s.BenefitINR, s.ActionRequired})
	}
	if err := writeRows(f, SheetSchemes, 1, rows); err != nil {
		return err
	}

	_ = f.SetColWidth(SheetSchemes, "B", "B", 36)
	_ = f.SetColWidth(SheetSchemes, "F", "F", 48)
	return nil
}

func writeActions(f *excelize.File, decision domain.FinalDecision) error {
	rows := [][]any{{"Step", "Action", "Why"}}
	for _, a := range decision.PriorityActions {
		rows = append(rows, []any{a.Step, a.Action, a.Why})
	}
	if len(decision.DocumentsNeeded) > 0 {
		rows = append(rows, []any{}, []any{"Documents needed"})
		for _, d := range decision.DocumentsNeeded {
			rows = append(rows, []any{"", d})
		}
	}
	if err := writeRows(f, SheetActions, 1, rows); err != nil {
		return err
	}

	_ = f.SetColWidth(SheetActions, "B", "C", 48)
	return nil
}

// writeRows writes rows starting at startRow. Empty rows are left blank.
func writeRows(f *excelize.File, sheet string, startRow int, rows [][]any) error {
	for i, row := range rows {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, startRow+i)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("%s!%s: %w", sheet, cell, err)
			}
		}
	}
	return nil
}
