package mcp

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fundwise/fundwise-cli/internal/adapters/driven/storage/memory"
	"github.com/fundwise/fundwise-cli/internal/core/domain"
	"github.com/fundwise/fundwise-cli/internal/core/services"
)

// stubAdvisor implements driven.AdvisorClient with canned answers.
type stubAdvisor struct {
	result *domain.AnalysisResult
}

func (s *stubAdvisor) Analyse(_ context.Context, in domain.ProfileInput) (*domain.AnalysisResult, error) {
	if s.result != nil {
		return s.result, nil
	}
	return &domain.AnalysisResult{FarmerName: in.Name}, nil
}

func (s *stubAdvisor) RepaymentPlan(context.Context, domain.ProfileInput) (*domain.RepaymentPlan, error) {
	return &domain.RepaymentPlan{}, nil
}

func (s *stubAdvisor) AssessLoan(context.Context, domain.ProfileInput) (*domain.LoanAssessment, error) {
	return &domain.LoanAssessment{Assessed: true, Label: "suitable"}, nil
}

func (s *stubAdvisor) Schemes(context.Context) ([]domain.Scheme, error) {
	return nil, nil
}

func (s *stubAdvisor) AnalyseDocument(context.Context, string, string, []byte) (*domain.DocumentAnalysis, error) {
	return &domain.DocumentAnalysis{RiskLevel: domain.RiskLevelLow}, nil
}

type testEnv struct {
	profiles *services.ProfileService
	docs     *services.DocumentService
	gateway  *services.AnalysisGateway
	server   *Server
}

func newTestEnv(t *testing.T, advisor *stubAdvisor) *testEnv {
	t.Helper()
	kv := memory.NewKVStore(0)
	profiles := services.NewProfileService(kv, nil)
	docs := services.NewDocumentService(kv, nil, nil)
	gateway := services.NewAnalysisGateway(advisor, profiles, docs)

	server, err := NewServer(&Ports{Profile: profiles, Documents: docs, Gateway: gateway})
	require.NoError(t, err)
	return &testEnv{profiles: profiles, docs: docs, gateway: gateway, server: server}
}

func validInput() domain.ProfileInput {
	return domain.ProfileInput{Profile: domain.Profile{
		Name:             "Sunita",
		State:            domain.StateMaharashtra,
		LandAcres:        2.5,
		CropType:         domain.CropSoybean,
		IncomeType:       domain.IncomeSeasonal,
		MonthlyIncomeINR: 15000,
		HouseholdSize:    5,
	}}
}

func (e *testEnv) addDocument(t *testing.T, name, folder, content string) domain.DocumentRecord {
	t.Helper()
	added, err := e.docs.Add(context.Background(), []domain.FileUpload{{
		Name:   name,
		Size:   int64(len(content)),
		Folder: folder,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(content)), nil
		},
	}})
	require.NoError(t, err)
	require.Len(t, added, 1)
	e.docs.Wait()
	return added[0]
}
