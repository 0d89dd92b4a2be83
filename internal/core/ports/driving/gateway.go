package driving

import (
	"context"

	"github.com/fundwise/fundwise-cli/internal/core/domain"
)

// AnalysisGateway coordinates calls to the analysis service, tracking
// lifecycle state independently per operation.
type AnalysisGateway interface {
	// SubmitForAnalysis persists the profile, then requests a full analysis.
	// On failure the previous result is left untouched.
	SubmitForAnalysis(ctx context.Context, in domain.ProfileInput) (*domain.AnalysisResult, error)

	// RequestRepaymentPlan asks for an EMI schedule for the loan in input.
	RequestRepaymentPlan(ctx context.Context, in domain.ProfileInput) (*domain.RepaymentPlan, error)

	// AssessLoan asks for a single loan suitability verdict.
	AssessLoan(ctx context.Context, in domain.ProfileInput) (*domain.LoanAssessment, error)

	// AnalyseDocument scans an uploaded file.
	AnalyseDocument(ctx context.Context, name, mimeType string, content []byte) (*domain.DocumentAnalysis, error)

	// AnalyseStoredDocument scans a library document and records its risk level.
	AnalyseStoredDocument(ctx context.Context, id string) (*domain.DocumentAnalysis, error)

	// FetchSchemes loads the scheme catalog ordered by priority.
	FetchSchemes(ctx context.Context) ([]domain.Scheme, error)

	// Result returns the current analysis result, or nil.
	Result() *domain.AnalysisResult

	// ClearResult discards the current analysis result.
	ClearResult()

	// State returns the lifecycle state of one operation.
	State(op domain.Operation) domain.CallState

	// OnResultChange registers fn to be called whenever the result is
	// replaced or cleared. fn receives nil on clear.
	OnResultChange(fn func(*domain.AnalysisResult))
}
