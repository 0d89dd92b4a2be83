package domain

import (
	"encoding/json"
	"sort"
)

// ChartSlice is one labelled value of a chart series.
type ChartSlice struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

// RiskScore is a 0-100 score for one risk dimension.
type RiskScore struct {
	Label       string  `json:"label"`
	Score       float64 `json:"score"`
	Description string  `json:"description"`
}

// IncomeVsExpense compares monthly income with estimated spending.
type IncomeVsExpense struct {
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Surplus  float64 `json:"surplus"`
}

// FinancialProfile is the service's reading of the household's finances.
type FinancialProfile struct {
	IncomePattern          string          `json:"income_pattern"`
	IncomeStability        string          `json:"income_stability"`
	DebtLoad               string          `json:"debt_load"`
	MonthlySurplusINR      float64         `json:"monthly_surplus_estimate_inr"`
	FinancialVulnerability string          `json:"financial_vulnerability"`
	Confidence             string          `json:"confidence"`
	ConfidenceReason       string          `json:"confidence_reason"`
	KeyFinancialRisks      []string        `json:"key_financial_risks"`
	Summary                string          `json:"profile_summary"`
	ExpenseBreakdown       []ChartSlice    `json:"expense_breakdown"`
	RiskScores             []RiskScore     `json:"risk_scores"`
	IncomeVsExpense        IncomeVsExpense `json:"income_vs_expense"`
}

// Scheme is a government scheme, either from the catalog or as a
// recommendation with suitability fields filled in.
type Scheme struct {
	ID               string   `json:"id,omitempty"`
	SchemeID         string   `json:"scheme_id,omitempty"`
	Name             string   `json:"name"`
	Category         string   `json:"category"`
	Description      string   `json:"description"`
	BenefitINR       string   `json:"benefit_inr"`
	EligibilityHints []string `json:"eligibility_hints,omitempty"`

	Eligible           *bool    `json:"eligible,omitempty"`
	Suitability        string   `json:"suitability,omitempty"`
	SuitabilityLabel   string   `json:"suitability_label,omitempty"`
	Reason             string   `json:"reason,omitempty"`
	BenefitEffortScore float64  `json:"benefit_effort_score,omitempty"`
	Priority           *float64 `json:"priority,omitempty"`
	ActionRequired     string   `json:"action_required,omitempty"`
}

// missingPriority sorts schemes without a priority last.
const missingPriority = 99

// SortPriority returns the scheme's priority, or 99 when absent.
func (s Scheme) SortPriority() float64 {
	if s.Priority == nil {
		return missingPriority
	}
	return *s.Priority
}

// SortSchemesByPriority orders schemes by ascending priority, stably.
func SortSchemesByPriority(schemes []Scheme) {
	sort.SliceStable(schemes, func(i, j int) bool {
		return schemes[i].SortPriority() < schemes[j].SortPriority()
	})
}

// LoanAssessment is the suitability verdict for a requested loan.
type LoanAssessment struct {
	Assessed                bool     `json:"assessed"`
	Label                   string   `json:"label"`
	LabelDisplay            string   `json:"label_display,omitempty"`
	Message                 string   `json:"message,omitempty"`
	Reasoning               string   `json:"reasoning,omitempty"`
	KeyRisk                 string   `json:"key_risk,omitempty"`
	EMIConcern              bool     `json:"emi_concern,omitempty"`
	EMIConcernDetail        *string  `json:"emi_concern_detail,omitempty"`
	SaferAlternative        *string  `json:"safer_alternative,omitempty"`
	Confidence              string   `json:"confidence,omitempty"`
	EstimatedInterestRate   string   `json:"estimated_interest_rate,omitempty"`
	RecommendedTenureMonths float64  `json:"recommended_tenure_months,omitempty"`
	RepaymentStrategy       string   `json:"repayment_strategy,omitempty"`
	Checklist               []string `json:"checklist,omitempty"`
}

// PriorityAction is one numbered step of the final decision.
type PriorityAction struct {
	Step   int    `json:"step"`
	Action string `json:"action"`
	Why    string `json:"why"`
}

// FinalDecision is the single prioritised recommendation.
type FinalDecision struct {
	Recommendation    string           `json:"recommendation"`
	Headline          string           `json:"headline"`
	Reasoning         string           `json:"reasoning"`
	PriorityActions   []PriorityAction `json:"priority_actions"`
	WhatToAvoid       string           `json:"what_to_avoid"`
	DocumentsNeeded   []string         `json:"documents_needed"`
	TimelineWeeks     float64          `json:"timeline_weeks,omitempty"`
	OverallRiskLevel  string           `json:"overall_risk_level,omitempty"`
	SuccessLikelihood string           `json:"success_likelihood,omitempty"`
	KeyBenefit        string           `json:"key_benefit,omitempty"`
}

// AnalysisResult is the service's full answer for one submitted profile.
// It is immutable once received; Raw keeps the exact payload.
type AnalysisResult struct {
	FarmerName            string           `json:"farmer_name"`
	ProfileSummary        FinancialProfile `json:"profile_summary"`
	SchemeRecommendations []Scheme         `json:"scheme_recommendations"`
	LoanAssessment        LoanAssessment   `json:"loan_assessment"`
	FinalDecision         FinalDecision    `json:"final_decision"`

	Raw json.RawMessage `json:"-"`
}

// RepaymentInstallment is one row of a repayment schedule.
type RepaymentInstallment struct {
	Month     int     `json:"month"`
	AmountINR float64 `json:"amount_inr"`
	Note      string  `json:"note,omitempty"`
}

// RepaymentPlan is an EMI schedule proposal for a loan request.
type RepaymentPlan struct {
	Strategy     string                 `json:"strategy,omitempty"`
	TenureMonths float64                `json:"tenure_months,omitempty"`
	EMIINR       float64                `json:"emi_inr,omitempty"`
	Schedule     []RepaymentInstallment `json:"schedule,omitempty"`
	Notes        []string               `json:"notes,omitempty"`

	Raw json.RawMessage `json:"-"`
}

// DocumentAnalysis is the risk scan of one uploaded document.
type DocumentAnalysis struct {
	DocumentType string    `json:"document_type,omitempty"`
	RiskLevel    RiskLevel `json:"risk_level"`
	Summary      string    `json:"summary,omitempty"`
	RedFlags     []string  `json:"red_flags,omitempty"`
	KeyTerms     []string  `json:"key_terms,omitempty"`

	Raw json.RawMessage `json:"-"`
}

// Operation names one call-site of the analysis service.
type Operation string

// Analysis service operations.
const (
	OpAnalyse         Operation = "analyse"
	OpRepaymentPlan   Operation = "repayment-plan"
	OpAssessLoan      Operation = "assess-loan"
	OpAnalyseDocument Operation = "analyse-document"
	OpSchemes         Operation = "schemes"
)

// AllOperations lists every operation in a stable order.
func AllOperations() []Operation {
	return []Operation{OpAnalyse, OpRepaymentPlan, OpAssessLoan, OpAnalyseDocument, OpSchemes}
}

// CallStatus is the lifecycle position of one operation.
type CallStatus string

// Call lifecycle: idle -> pending -> success | failure.
const (
	CallIdle    CallStatus = "idle"
	CallPending CallStatus = "pending"
	CallSuccess CallStatus = "success"
	CallFailure CallStatus = "failure"
)

// CallState is the observable state of one operation's call-site.
type CallState struct {
	Status CallStatus
	// Err is set only when Status is CallFailure.
	Err error
}

// Message returns the user-facing error text, or "" when not failed.
func (s CallState) Message() string {
	if s.Err == nil {
		return ""
	}
	return s.Err.Error()
}
