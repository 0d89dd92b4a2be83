package driven

import (
	"context"

	"github.com/fundwise/fundwise-cli/internal/core/domain"
)

// AdvisorClient talks to the external analysis service.
// Every failure is returned as a *domain.RemoteError.
type AdvisorClient interface {
	// Analyse runs the full profile analysis (POST /analyse).
	Analyse(ctx context.Context, in domain.ProfileInput) (*domain.AnalysisResult, error)

	// RepaymentPlan proposes an EMI schedule (POST /repayment-plan).
	RepaymentPlan(ctx context.Context, in domain.ProfileInput) (*domain.RepaymentPlan, error)

	// AssessLoan judges a single loan request (POST /assess-loan).
	AssessLoan(ctx context.Context, in domain.ProfileInput) (*domain.LoanAssessment, error)

	// Schemes fetches the static scheme catalog (GET /schemes).
	Schemes(ctx context.Context) ([]domain.Scheme, error)

	// AnalyseDocument uploads one file for a risk scan (POST /analyse-document).
	AnalyseDocument(ctx context.Context, name, mimeType string, content []byte) (*domain.DocumentAnalysis, error)
}
