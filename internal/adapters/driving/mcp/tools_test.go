package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fundwise/fundwise-cli/internal/core/domain"
)

func TestServer_handleGetProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("default profile is incomplete", func(t *testing.T) {
		env := newTestEnv(t, &stubAdvisor{})

		_, out, err := env.server.handleGetProfile(ctx, nil, GetProfileInput{})

		require.NoError(t, err)
		assert.False(t, out.Complete)
		assert.Equal(t, domain.DefaultProfile().State, out.Profile.State)
	})

	t.Run("saved profile is returned", func(t *testing.T) {
		env := newTestEnv(t, &stubAdvisor{})
		env.profiles.Save(validInput())

		_, out, err := env.server.handleGetProfile(ctx, nil, GetProfileInput{})

		require.NoError(t, err)
		assert.True(t, out.Complete)
		assert.Equal(t, "Sunita", out.Profile.Name)
		assert.Equal(t, 15000.0, out.Profile.MonthlyIncomeINR)
	})
}

func TestServer_handleListDocuments(t *testing.T) {
	ctx := context.Background()

	t.Run("empty library", func(t *testing.T) {
		env := newTestEnv(t, &stubAdvisor{})

		_, out, err := env.server.handleListDocuments(ctx, nil, ListDocumentsInput{})

		require.NoError(t, err)
		assert.Equal(t, 0, out.Count)
		assert.NotNil(t, out.Documents)
	})

	t.Run("lists and filters by folder", func(t *testing.T) {
		env := newTestEnv(t, &stubAdvisor{})
		land := env.addDocument(t, "land-record.pdf", "Land", "pdf")
		env.addDocument(t, "notes.txt", "", "hello")

		_, all, err := env.server.handleListDocuments(ctx, nil, ListDocumentsInput{})
		require.NoError(t, err)
		assert.Equal(t, 2, all.Count)

		_, filtered, err := env.server.handleListDocuments(ctx, nil, ListDocumentsInput{Folder: "Land"})
		require.NoError(t, err)
		require.Equal(t, 1, filtered.Count)
		assert.Equal(t, land.ID, filtered.Documents[0].ID)
		assert.Equal(t, "land-record.pdf", filtered.Documents[0].Name)
		assert.Equal(t, "small", filtered.Documents[0].SizeClass)
		assert.True(t, filtered.Documents[0].Available)
	})

	t.Run("nil document service returns empty list", func(t *testing.T) {
		env := newTestEnv(t, &stubAdvisor{})
		server, err := NewServer(&Ports{Profile: env.profiles})
		require.NoError(t, err)

		_, out, err := server.handleListDocuments(ctx, nil, ListDocumentsInput{})

		require.NoError(t, err)
		assert.Equal(t, 0, out.Count)
	})
}

func TestServer_handleExpenseChart(t *testing.T) {
	ctx := context.Background()

	t.Run("no result yet", func(t *testing.T) {
		env := newTestEnv(t, &stubAdvisor{})

		_, _, err := env.server.handleExpenseChart(ctx, nil, ExpenseChartInput{})

		assert.ErrorIs(t, err, ErrNoResult)
	})

	t.Run("nil gateway", func(t *testing.T) {
		env := newTestEnv(t, &stubAdvisor{})
		server, err := NewServer(&Ports{Profile: env.profiles})
		require.NoError(t, err)

		_, _, err = server.handleExpenseChart(ctx, nil, ExpenseChartInput{})

		assert.ErrorIs(t, err, ErrNoResult)
	})

	t.Run("segments follow the expense breakdown", func(t *testing.T) {
		advisor := &stubAdvisor{result: &domain.AnalysisResult{
			FarmerName: "Sunita",
			ProfileSummary: domain.FinancialProfile{
				ExpenseBreakdown: []domain.ChartSlice{
					{Label: "Household", Value: 3, Color: "#f00"},
					{Label: "Inputs", Value: 1, Color: "#0f0"},
				},
			},
		}}
		env := newTestEnv(t, advisor)
		_, err := env.gateway.SubmitForAnalysis(ctx, validInput())
		require.NoError(t, err)

		_, out, err := env.server.handleExpenseChart(ctx, nil, ExpenseChartInput{})

		require.NoError(t, err)
		assert.Equal(t, "Sunita", out.FarmerName)
		require.Len(t, out.Segments, 2)
		assert.Equal(t, "Household", out.Segments[0].Label)
		assert.InDelta(t, 0.75, out.Segments[0].Fraction, 1e-9)
		assert.InDelta(t, -90.0, out.Segments[0].StartAngle, 1e-9)
		assert.InDelta(t, 270.0, out.Segments[0].Sweep, 1e-9)
		assert.InDelta(t, 180.0, out.Segments[1].StartAngle, 1e-9)
		assert.NotEmpty(t, out.Segments[1].Path)
	})

	t.Run("empty breakdown yields no segments", func(t *testing.T) {
		env := newTestEnv(t, &stubAdvisor{})
		_, err := env.gateway.SubmitForAnalysis(ctx, validInput())
		require.NoError(t, err)

		_, out, err := env.server.handleExpenseChart(ctx, nil, ExpenseChartInput{})

		require.NoError(t, err)
		assert.Empty(t, out.Segments)
	})
}
