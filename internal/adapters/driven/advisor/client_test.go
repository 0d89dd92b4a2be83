package advisor

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fundwise/fundwise-cli/internal/core/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(Config{BaseURL: server.URL + "/", RatePerSecond: 1000})
}

func sampleInput() domain.ProfileInput {
	amount := 80000.0
	return domain.ProfileInput{
		Profile: domain.Profile{
			Name:             "Asha",
			State:            domain.StateMaharashtra,
			LandAcres:        3,
			CropType:         domain.CropCotton,
			IncomeType:       domain.IncomeSeasonal,
			MonthlyIncomeINR: 15000,
			HouseholdSize:    5,
			RiskExposure:     []domain.RiskExposure{domain.RiskDrought, domain.RiskPriceCrash},
		},
		LoanPurpose:   "Drip irrigation",
		LoanAmountINR: &amount,
	}
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(Config{})

	assert.Equal(t, "http://localhost:8000", c.BaseURL())
	assert.Zero(t, c.client.Timeout, "no timeout by default")
}

func TestClient_Analyse(t *testing.T) {
	var received map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/analyse", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		_, _ = io.WriteString(w, `{
			"farmer_name": "Asha",
			"profile_summary": {
				"confidence": "medium",
				"expense_breakdown": [{"label": "Household", "value": 12500, "color": "#4a8fd4"}],
				"risk_scores": [{"label": "Weather Risk", "score": 72, "description": "dry belt"}],
				"income_vs_expense": {"income": 15000, "expenses": 14000, "surplus": 1000}
			},
			"scheme_recommendations": [{"scheme_id": "pmfby", "name": "PM Fasal Bima Yojana", "priority": 1}],
			"loan_assessment": {"assessed": true, "label": "risky", "emi_concern": true},
			"final_decision": {"recommendation": "scheme_first", "headline": "Insure first",
				"priority_actions": [{"step": 1, "action": "Enrol in PMFBY", "why": "weather risk"}]}
		}`)
	})

	result, err := c.Analyse(context.Background(), sampleInput())

	require.NoError(t, err)
	assert.Equal(t, "Asha", received["name"])
	assert.Equal(t, "Drip irrigation", received["loan_purpose"])
	assert.EqualValues(t, 80000, received["loan_amount_inr"])

	assert.Equal(t, "Asha", result.FarmerName)
	assert.Equal(t, "medium", result.ProfileSummary.Confidence)
	require.Len(t, result.ProfileSummary.ExpenseBreakdown, 1)
	assert.Equal(t, 12500.0, result.ProfileSummary.ExpenseBreakdown[0].Value)
	assert.Equal(t, 72.0, result.ProfileSummary.RiskScores[0].Score)
	assert.Equal(t, "risky", result.LoanAssessment.Label)
	assert.Equal(t, "scheme_first", result.FinalDecision.Recommendation)
	assert.Equal(t, 1, result.FinalDecision.PriorityActions[0].Step)
	assert.Contains(t, string(result.Raw), "farmer_name")
}

func TestClient_Analyse_OmitsEmptyLoanFields(t *testing.T) {
	var received map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		_, _ = io.WriteString(w, `{"farmer_name": "Asha"}`)
	})

	in := sampleInput()
	in.LoanPurpose = ""
	in.LoanAmountINR = nil
	_, err := c.Analyse(context.Background(), in)

	require.NoError(t, err)
	assert.NotContains(t, received, "loan_purpose")
	assert.NotContains(t, received, "loan_amount_inr")
}

func TestClient_Analyse_MismatchedFieldType(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{
			"farmer_name": "Asha",
			"loan_assessment": {"assessed": true, "label": "risky", "recommended_tenure_months": "12-18",
				"repayment_strategy": "after harvest"},
			"final_decision": {"headline": "Insure first", "priority_actions": [{"step": "1", "action": "Enrol"}]}
		}`)
	})

	result, err := c.Analyse(context.Background(), sampleInput())

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "Asha", result.FarmerName)
	assert.Equal(t, "risky", result.LoanAssessment.Label)
	assert.Equal(t, "after harvest", result.LoanAssessment.RepaymentStrategy)
	assert.Zero(t, result.LoanAssessment.RecommendedTenureMonths)
	assert.Equal(t, "Insure first", result.FinalDecision.Headline)
	require.Len(t, result.FinalDecision.PriorityActions, 1)
	assert.Equal(t, "Enrol", result.FinalDecision.PriorityActions[0].Action)
	assert.Contains(t, string(result.Raw), `"12-18"`)
}

func TestClient_Analyse_NonObjectBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `["not", "a", "result"]`)
	})

	result, err := c.Analyse(context.Background(), sampleInput())

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrRemoteCallFailed)
}

func TestClient_AssessLoan_MismatchedFieldType(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"loan_assessment": {"assessed": true, "label": "suitable",
			"emi_concern": "maybe"}}`)
	})

	got, err := c.AssessLoan(context.Background(), sampleInput())

	require.NoError(t, err)
	assert.Equal(t, "suitable", got.Label)
	assert.False(t, got.EMIConcern)
}

func TestClient_ErrorDetail(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantDetail string
	}{
		{
			name:       "string detail",
			status:     http.StatusBadGateway,
			body:       `{"detail": "AI service unavailable"}`,
			wantDetail: "AI service unavailable",
		},
		{
			name:       "validation list",
			status:     http.StatusUnprocessableEntity,
			body:       `{"detail": [{"loc": ["body", "land_acres"], "msg": "field required"}]}`,
			wantDetail: "land_acres: field required",
		},
		{
			name:       "no detail falls back to generic",
			status:     http.StatusInternalServerError,
			body:       `Internal Server Error`,
			wantDetail: "analysis failed, check that the advisor service is running",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			_, err := c.Analyse(context.Background(), sampleInput())

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrRemoteCallFailed)
			var remote *domain.RemoteError
			require.ErrorAs(t, err, &remote)
			assert.Equal(t, tt.status, remote.StatusCode)
			assert.Equal(t, tt.wantDetail, remote.Detail)
			assert.Equal(t, domain.OpAnalyse, remote.Op)
		})
	}
}

func TestClient_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	c := NewClient(Config{BaseURL: url, RatePerSecond: 1000})
	_, err := c.Schemes(context.Background())

	var remote *domain.RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Zero(t, remote.StatusCode)
	assert.Equal(t, "could not load the scheme catalog", remote.Detail)
	assert.Error(t, remote.Unwrap())
}

func TestClient_MalformedSuccessBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"loan_assessment": "nope"`)
	})

	_, err := c.AssessLoan(context.Background(), sampleInput())

	assert.ErrorIs(t, err, domain.ErrRemoteCallFailed)
}

func TestClient_RepaymentPlan(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repayment-plan", r.URL.Path)
		_, _ = io.WriteString(w, `{"repayment_plan": {"strategy": "seasonal", "tenure_months": 12, "emi_inr": 7200,
			"schedule": [{"month": 1, "amount_inr": 0, "note": "grace"}, {"month": 6, "amount_inr": 40000}]}}`)
	})

	plan, err := c.RepaymentPlan(context.Background(), sampleInput())

	require.NoError(t, err)
	assert.Equal(t, "seasonal", plan.Strategy)
	assert.Equal(t, 12.0, plan.TenureMonths)
	require.Len(t, plan.Schedule, 2)
	assert.Equal(t, "grace", plan.Schedule[0].Note)
	assert.Contains(t, string(plan.Raw), "tenure_months")
}

func TestClient_RepaymentPlan_MissingEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{}`)
	})

	_, err := c.RepaymentPlan(context.Background(), sampleInput())
	assert.ErrorIs(t, err, domain.ErrRemoteCallFailed)
}

func TestClient_AssessLoan(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/assess-loan", r.URL.Path)
		_, _ = io.WriteString(w, `{"loan_assessment": {"assessed": true, "label": "suitable",
			"estimated_interest_rate": "7-9%", "checklist": ["Land record", "Aadhaar"]}}`)
	})

	got, err := c.AssessLoan(context.Background(), sampleInput())

	require.NoError(t, err)
	assert.True(t, got.Assessed)
	assert.Equal(t, "7-9%", got.EstimatedInterestRate)
	assert.Equal(t, []string{"Land record", "Aadhaar"}, got.Checklist)
}

func TestClient_Schemes(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/schemes", r.URL.Path)
		_, _ = io.WriteString(w, `[{"id": "kcc", "name": "Kisan Credit Card", "category": "Credit",
			"eligibility_hints": ["Land-owning farmer"]}]`)
	})

	schemes, err := c.Schemes(context.Background())

	require.NoError(t, err)
	require.Len(t, schemes, 1)
	assert.Equal(t, "kcc", schemes[0].ID)
	assert.Nil(t, schemes[0].Priority)
	assert.Equal(t, float64(99), schemes[0].SortPriority())
}

func TestClient_AnalyseDocument(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/analyse-document", r.URL.Path)
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()

		data, _ := io.ReadAll(file)
		assert.Equal(t, "loan-agreement.pdf", header.Filename)
		assert.Equal(t, "application/pdf", header.Header.Get("Content-Type"))
		assert.Equal(t, "%PDF-1.4", string(data))

		_, _ = io.WriteString(w, `{"analysis": {"risk_level": "HIGH", "red_flags": ["balloon payment"]}}`)
	})

	analysis, err := c.AnalyseDocument(context.Background(), "loan-agreement.pdf", "application/pdf", []byte("%PDF-1.4"))

	require.NoError(t, err)
	assert.Equal(t, domain.RiskLevelHigh, analysis.RiskLevel)
	assert.Equal(t, []string{"balloon payment"}, analysis.RedFlags)
}

func TestClient_AnalyseDocument_FailureDetail(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"detail": "Could not read document"}`)
	})

	_, err := c.AnalyseDocument(context.Background(), "scan.png", "image/png", []byte{0x89})

	var remote *domain.RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, "Could not read document", remote.Detail)
}

func TestClient_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `[]`)
	}))
	t.Cleanup(server.Close)
	c := NewClient(Config{BaseURL: server.URL, RatePerSecond: 10})

	start := time.Now()
	for i := 0; i < 3; i++ {
		_, err := c.Schemes(context.Background())
		require.NoError(t, err)
	}

	assert.GreaterOrEqual(t, time.Since(start), 150*time.Millisecond)
}

func TestClient_CancelledContext(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `[]`)
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Schemes(ctx)

	assert.ErrorIs(t, err, domain.ErrRemoteCallFailed)
	assert.ErrorIs(t, err, context.Canceled)
}
