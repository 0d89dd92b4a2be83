package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fundwise/fundwise-cli/internal/adapters/driving/tui/components/status"
	"github.com/fundwise/fundwise-cli/internal/adapters/driving/tui/messages"
	"github.com/fundwise/fundwise-cli/internal/core/domain"
)

func validInput() domain.ProfileInput {
	return domain.ProfileInput{Profile: domain.Profile{
		Name:             "Asha",
		State:            domain.StateMaharashtra,
		LandAcres:        2,
		CropType:         domain.CropCotton,
		IncomeType:       domain.IncomeSeasonal,
		MonthlyIncomeINR: 15000,
		HouseholdSize:    4,
	}}
}

func newTestApp(t *testing.T, advisor *fakeAdvisor) (*App, *Ports) {
	t.Helper()
	ports := newTestPorts(advisor)
	app, err := NewApp(ports)
	require.NoError(t, err)
	app.SetDimensions(120, 40)
	return app, ports
}

func key(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send runs msg through the app and feeds resulting messages back in
// until no command remains. Batches are not expanded.
func send(app *App, msg tea.Msg) {
	for msg != nil {
		_, cmd := app.Update(msg)
		if cmd == nil {
			return
		}
		msg = cmd()
	}
}

func TestNewApp_Success(t *testing.T) {
	app, _ := newTestApp(t, &fakeAdvisor{})

	assert.Equal(t, domain.StepDashboard, app.CurrentStep())
	assert.Equal(t, messages.PaneSidebar, app.Focus())
	assert.True(t, app.Ready())
}

func TestNewApp_InvalidPorts(t *testing.T) {
	ports := newTestPorts(&fakeAdvisor{})
	ports.Gateway = nil

	app, err := NewApp(ports)

	assert.ErrorIs(t, err, ErrMissingAnalysisGateway)
	assert.Nil(t, app)
}

func TestNewApp_SyncsProfileFlag(t *testing.T) {
	ports := newTestPorts(&fakeAdvisor{})
	ports.Profile.Save(validInput())

	_, err := NewApp(ports)
	require.NoError(t, err)

	assert.True(t, ports.Navigation.HasProfile())
}

func TestApp_WithContext(t *testing.T) {
	app, _ := newTestApp(t, &fakeAdvisor{})

	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")

	assert.Equal(t, app, app.WithContext(ctx))
}

func TestApp_Init(t *testing.T) {
	app, _ := newTestApp(t, &fakeAdvisor{})

	assert.NotNil(t, app.Init())
}

func TestApp_View_NotReady(t *testing.T) {
	app, err := NewApp(newTestPorts(&fakeAdvisor{}))
	require.NoError(t, err)

	assert.Equal(t, "Initialising...", app.View())
}

func TestApp_Update_WindowSize(t *testing.T) {
	app, err := NewApp(newTestPorts(&fakeAdvisor{}))
	require.NoError(t, err)

	model, cmd := app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	assert.Equal(t, app, model)
	assert.Nil(t, cmd)
	assert.True(t, app.Ready())
}

func TestApp_CtrlCQuits(t *testing.T) {
	app, _ := newTestApp(t, &fakeAdvisor{})

	_, cmd := app.Update(key(tea.KeyCtrlC))
	require.NotNil(t, cmd)

	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_QuitMessage(t *testing.T) {
	app, _ := newTestApp(t, &fakeAdvisor{})

	_, cmd := app.Update(messages.Quit{})
	require.NotNil(t, cmd)

	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_SidebarSelectsUtilityStep(t *testing.T) {
	app, _ := newTestApp(t, &fakeAdvisor{schemes: []domain.Scheme{{Name: "PM-KISAN"}}})

	// Dashboard -> ... -> Scheme Catalog is the ninth entry.
	for i := 0; i < 8; i++ {
		send(app, key(tea.KeyDown))
	}
	send(app, key(tea.KeyEnter))

	assert.Equal(t, domain.StepCatalog, app.CurrentStep())
	assert.Equal(t, messages.PaneMain, app.Focus())
	assert.Contains(t, app.View(), "PM-KISAN")
}

func TestApp_LockedStepStaysPut(t *testing.T) {
	app, ports := newTestApp(t, &fakeAdvisor{})

	send(app, messages.StepRequested{Step: domain.StepSnapshot})

	assert.Equal(t, domain.StepDashboard, app.CurrentStep())
	state, msg := app.Status()
	assert.Equal(t, status.StateLocked, state)
	assert.Contains(t, msg, "Snapshot is locked")
	assert.False(t, ports.Navigation.HasResult())
}

func TestApp_TabAndEscMoveFocus(t *testing.T) {
	app, _ := newTestApp(t, &fakeAdvisor{})

	send(app, key(tea.KeyTab))
	assert.Equal(t, messages.PaneMain, app.Focus())

	send(app, key(tea.KeyEsc))
	assert.Equal(t, messages.PaneSidebar, app.Focus())
}

func TestApp_HelpOverlay(t *testing.T) {
	app, _ := newTestApp(t, &fakeAdvisor{})

	send(app, runes("?"))
	require.True(t, app.ShowingHelp())
	assert.Contains(t, app.View(), "clear result")

	send(app, key(tea.KeyEsc))
	assert.False(t, app.ShowingHelp())
}

func TestApp_AnalyseFromForm(t *testing.T) {
	var got domain.ProfileInput
	advisor := &fakeAdvisor{analyse: func(_ context.Context, in domain.ProfileInput) (*domain.AnalysisResult, error) {
		got = in
		return sampleResult(in.Name), nil
	}}
	app, ports := newTestApp(t, advisor)
	send(app, messages.StepRequested{Step: domain.StepProfile})
	app.profileView.Load(validInput().Profile)

	_, cmd := app.Update(key(tea.KeyCtrlR))
	require.NotNil(t, cmd)
	assert.True(t, app.Analysing())

	send(app, cmd())

	assert.False(t, app.Analysing())
	assert.Equal(t, "Asha", got.Name)
	assert.Equal(t, domain.StepSnapshot, app.CurrentStep())
	assert.True(t, ports.Navigation.HasResult())
	assert.True(t, ports.Navigation.HasProfile())
	assert.Equal(t, "Asha", ports.Profile.Get().Name)
	assert.Contains(t, app.View(), "Step 2 of 4: Snapshot")

	state, msg := app.Status()
	assert.Equal(t, status.StateSuccess, state)
	assert.Equal(t, "Analysis ready for Asha", msg)
}

func TestApp_AnalyseRejectsInvalidProfile(t *testing.T) {
	called := false
	advisor := &fakeAdvisor{analyse: func(context.Context, domain.ProfileInput) (*domain.AnalysisResult, error) {
		called = true
		return nil, nil
	}}
	app, _ := newTestApp(t, advisor)

	_, cmd := app.Update(key(tea.KeyCtrlR))

	assert.Nil(t, cmd)
	assert.False(t, called)
	assert.ErrorIs(t, app.Err(), domain.ErrInvalidInput)
	state, _ := app.Status()
	assert.Equal(t, status.StateError, state)
}

func TestApp_AnalyseFailureKeepsStep(t *testing.T) {
	advisor := &fakeAdvisor{analyse: func(context.Context, domain.ProfileInput) (*domain.AnalysisResult, error) {
		return nil, errors.New("analysis failed, check that the advisor service is running")
	}}
	app, ports := newTestApp(t, advisor)
	ports.Profile.Save(validInput())

	send(app, key(tea.KeyCtrlR))

	assert.Equal(t, domain.StepDashboard, app.CurrentStep())
	assert.False(t, ports.Navigation.HasResult())
	_, msg := app.Status()
	assert.Contains(t, msg, "advisor service is running")
}

func TestApp_WizardNextPrev(t *testing.T) {
	app, ports := newTestApp(t, &fakeAdvisor{})
	ports.Profile.Save(validInput())
	send(app, key(tea.KeyCtrlR))
	require.Equal(t, domain.StepSnapshot, app.CurrentStep())

	send(app, key(tea.KeyCtrlN))
	assert.Equal(t, domain.StepSchemes, app.CurrentStep())
	assert.Contains(t, app.View(), "PM Fasal Bima Yojana")

	send(app, key(tea.KeyCtrlN))
	assert.Equal(t, domain.StepDecisions, app.CurrentStep())
	assert.Contains(t, app.View(), "Insure before borrowing")

	send(app, key(tea.KeyCtrlN))
	assert.Equal(t, domain.StepDecisions, app.CurrentStep())

	send(app, key(tea.KeyCtrlP))
	send(app, key(tea.KeyCtrlP))
	send(app, key(tea.KeyCtrlP))
	assert.Equal(t, domain.StepProfile, app.CurrentStep())
}

func TestApp_ClearResultFallsBackToProfile(t *testing.T) {
	app, ports := newTestApp(t, &fakeAdvisor{})
	ports.Profile.Save(validInput())
	send(app, key(tea.KeyCtrlR))
	require.Equal(t, domain.StepSnapshot, app.CurrentStep())

	send(app, key(tea.KeyCtrlX))

	assert.Nil(t, ports.Gateway.Result())
	assert.False(t, ports.Navigation.HasResult())
	assert.Equal(t, domain.StepProfile, app.CurrentStep())
	assert.False(t, ports.Navigation.CanEnter(domain.StepSnapshot))
}

func TestApp_ProfileSaveUpdatesFlag(t *testing.T) {
	app, ports := newTestApp(t, &fakeAdvisor{})
	send(app, messages.StepRequested{Step: domain.StepProfileEditor})
	app.profileView.Load(validInput().Profile)

	send(app, key(tea.KeyCtrlS))

	assert.True(t, ports.Navigation.HasProfile())
	_, msg := app.Status()
	assert.Equal(t, "Profile saved", msg)
}

func TestApp_LoanCheck(t *testing.T) {
	app, ports := newTestApp(t, &fakeAdvisor{})
	ports.Profile.Save(validInput())
	send(app, messages.StepRequested{Step: domain.StepLoanCheck})

	for _, r := range "Seeds" {
		send(app, runes(string(r)))
	}
	send(app, key(tea.KeyEnter))
	for _, r := range "10000" {
		send(app, runes(string(r)))
	}
	send(app, key(tea.KeyEnter))

	_, msg := app.Status()
	assert.Equal(t, "Loan assessed", msg)
	assert.Contains(t, app.View(), "suitable")
}

func TestApp_DocumentsStepLoadsLibrary(t *testing.T) {
	app, _ := newTestApp(t, &fakeAdvisor{})

	send(app, messages.StepRequested{Step: domain.StepDocuments})

	assert.Equal(t, domain.StepDocuments, app.CurrentStep())
	assert.Contains(t, app.View(), "Library (0)")
}

func TestApp_ErrorOccurred(t *testing.T) {
	app, _ := newTestApp(t, &fakeAdvisor{})

	send(app, messages.ErrorOccurred{Err: errors.New("boom")})

	assert.EqualError(t, app.Err(), "boom")
	state, _ := app.Status()
	assert.Equal(t, status.StateError, state)
}
