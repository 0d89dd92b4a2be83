package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/fundwise/fundwise-cli/internal/core/domain"
	"github.com/fundwise/fundwise-cli/internal/core/ports/driven"
	"github.com/fundwise/fundwise-cli/internal/core/ports/driving"
	"github.com/fundwise/fundwise-cli/internal/logger"
)

// Ensure AnalysisGateway implements the interface.
var _ driving.AnalysisGateway = (*AnalysisGateway)(nil)

// AnalysisGateway wraps the advisor client with per-operation call state.
// Operations are independent: a failure only touches its own slot. When
// calls of one operation overlap, only the most recent one settles the
// slot (and, for analysis, the result).
type AnalysisGateway struct {
	client    driven.AdvisorClient
	profiles  driving.ProfileService
	documents driving.DocumentService

	mu        sync.RWMutex
	result    *domain.AnalysisResult
	states    map[domain.Operation]domain.CallState
	gens      map[domain.Operation]uint64
	listeners []func(*domain.AnalysisResult)
}

// NewAnalysisGateway creates a gateway. documents may be nil, in which case
// AnalyseStoredDocument is unavailable.
func NewAnalysisGateway(
	client driven.AdvisorClient,
	profiles driving.ProfileService,
	documents driving.DocumentService,
) *AnalysisGateway {
	states := make(map[domain.Operation]domain.CallState)
	for _, op := range domain.AllOperations() {
		states[op] = domain.CallState{Status: domain.CallIdle}
	}
	return &AnalysisGateway{
		client:    client,
		profiles:  profiles,
		documents: documents,
		states:    states,
		gens:      make(map[domain.Operation]uint64),
	}
}

// SubmitForAnalysis saves the profile before sending it, so the input
// survives a failed call.
func (g *AnalysisGateway) SubmitForAnalysis(ctx context.Context, in domain.ProfileInput) (*domain.AnalysisResult, error) {
	if err := in.Validate(); err != nil {
		g.reject(domain.OpAnalyse, err)
		return nil, err
	}

	g.profiles.Save(in)

	gen := g.begin(domain.OpAnalyse)
	result, err := g.client.Analyse(ctx, in)
	if err != nil {
		g.fail(domain.OpAnalyse, gen, err)
		return nil, err
	}

	domain.SortSchemesByPriority(result.SchemeRecommendations)

	g.mu.Lock()
	if g.gens[domain.OpAnalyse] != gen {
		g.mu.Unlock()
		logger.Debug("analysis: dropping superseded result for %s", result.FarmerName)
		return result, nil
	}
	g.result = result
	g.states[domain.OpAnalyse] = domain.CallState{Status: domain.CallSuccess}
	listeners := slices.Clone(g.listeners)
	g.mu.Unlock()

	logger.Info("analysis: received result for %s", result.FarmerName)
	for _, fn := range listeners {
		fn(result)
	}
	return result, nil
}

// RequestRepaymentPlan asks for an EMI schedule.
func (g *AnalysisGateway) RequestRepaymentPlan(ctx context.Context, in domain.ProfileInput) (*domain.RepaymentPlan, error) {
	if err := requireLoan(in); err != nil {
		g.reject(domain.OpRepaymentPlan, err)
		return nil, err
	}

	gen := g.begin(domain.OpRepaymentPlan)
	plan, err := g.client.RepaymentPlan(ctx, in)
	if err != nil {
		g.fail(domain.OpRepaymentPlan, gen, err)
		return nil, err
	}
	g.succeed(domain.OpRepaymentPlan, gen)
	return plan, nil
}

// AssessLoan asks for a loan suitability verdict.
func (g *AnalysisGateway) AssessLoan(ctx context.Context, in domain.ProfileInput) (*domain.LoanAssessment, error) {
	if err := requireLoan(in); err != nil {
		g.reject(domain.OpAssessLoan, err)
		return nil, err
	}

	gen := g.begin(domain.OpAssessLoan)
	assessment, err := g.client.AssessLoan(ctx, in)
	if err != nil {
		g.fail(domain.OpAssessLoan, gen, err)
		return nil, err
	}
	g.succeed(domain.OpAssessLoan, gen)
	return assessment, nil
}

// AnalyseDocument scans an uploaded file.
func (g *AnalysisGateway) AnalyseDocument(
	ctx context.Context,
	name, mimeType string,
	content []byte,
) (*domain.DocumentAnalysis, error) {
	if !domain.IsAnalysableFile(name) {
		err := fmt.Errorf("%s: %w", name, domain.ErrUnsupportedFileType)
		g.reject(domain.OpAnalyseDocument, err)
		return nil, err
	}
	if mimeType == "" {
		mimeType = domain.MIMETypeFor(name)
	}

	gen := g.begin(domain.OpAnalyseDocument)
	analysis, err := g.client.AnalyseDocument(ctx, name, mimeType, content)
	if err != nil {
		g.fail(domain.OpAnalyseDocument, gen, err)
		return nil, err
	}
	g.succeed(domain.OpAnalyseDocument, gen)
	return analysis, nil
}

// AnalyseStoredDocument scans a library document and records its risk level.
func (g *AnalysisGateway) AnalyseStoredDocument(ctx context.Context, id string) (*domain.DocumentAnalysis, error) {
	if g.documents == nil {
		return nil, errors.New("document service not configured")
	}

	doc, err := g.documents.Get(id)
	if err != nil {
		return nil, err
	}
	content, err := g.documents.Download(id)
	if err != nil {
		return nil, err
	}

	analysis, err := g.AnalyseDocument(ctx, doc.Name, doc.MIMEType, content)
	if err != nil {
		return nil, err
	}

	if analysis.RiskLevel.IsValid() {
		if err := g.documents.SetRiskLevel(id, analysis.RiskLevel); err != nil {
			logger.Warn("analysis: record risk level for %s: %v", id, err)
		}
	}
	return analysis, nil
}

// FetchSchemes loads the catalog ordered by priority.
func (g *AnalysisGateway) FetchSchemes(ctx context.Context) ([]domain.Scheme, error) {
	gen := g.begin(domain.OpSchemes)
	schemes, err := g.client.Schemes(ctx)
	if err != nil {
		g.fail(domain.OpSchemes, gen, err)
		return nil, err
	}
	domain.SortSchemesByPriority(schemes)
	g.succeed(domain.OpSchemes, gen)
	return schemes, nil
}

// Result returns the current analysis result, or nil.
func (g *AnalysisGateway) Result() *domain.AnalysisResult {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.result
}

// ClearResult discards the current result. An analysis still in flight
// will not restore it.
func (g *AnalysisGateway) ClearResult() {
	g.mu.Lock()
	g.result = nil
	g.gens[domain.OpAnalyse]++
	g.states[domain.OpAnalyse] = domain.CallState{Status: domain.CallIdle}
	listeners := slices.Clone(g.listeners)
	g.mu.Unlock()

	for _, fn := range listeners {
		fn(nil)
	}
}

// State returns the lifecycle state of op.
func (g *AnalysisGateway) State(op domain.Operation) domain.CallState {
	g.mu.RLock()
	defer g.mu.RUnlock()

	state, ok := g.states[op]
	if !ok {
		return domain.CallState{Status: domain.CallIdle}
	}
	return state
}

// OnResultChange registers a listener for result replacement or clearing.
func (g *AnalysisGateway) OnResultChange(fn func(*domain.AnalysisResult)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.listeners = append(g.listeners, fn)
}

// begin marks op pending and returns the generation of this call.
func (g *AnalysisGateway) begin(op domain.Operation) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.gens[op]++
	g.states[op] = domain.CallState{Status: domain.CallPending}
	return g.gens[op]
}

func (g *AnalysisGateway) succeed(op domain.Operation, gen uint64) {
	g.settle(op, gen, domain.CallState{Status: domain.CallSuccess})
}

func (g *AnalysisGateway) fail(op domain.Operation, gen uint64, err error) {
	logger.Warn("analysis: %s failed: %v", op, err)
	g.settle(op, gen, domain.CallState{Status: domain.CallFailure, Err: err})
}

// reject records a failure caught before any call was made. It
// supersedes calls of op still in flight.
func (g *AnalysisGateway) reject(op domain.Operation, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.gens[op]++
	g.states[op] = domain.CallState{Status: domain.CallFailure, Err: err}
}

// settle writes state only if gen is still the latest call of op.
func (g *AnalysisGateway) settle(op domain.Operation, gen uint64, state domain.CallState) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.gens[op] != gen {
		return
	}
	g.states[op] = state
}

func requireLoan(in domain.ProfileInput) error {
	if err := in.Validate(); err != nil {
		return err
	}
	if !in.HasLoanRequest() {
		return fmt.Errorf("%w: loan_purpose and loan_amount_inr are required", domain.ErrInvalidInput)
	}
	return nil
}
