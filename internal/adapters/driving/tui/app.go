package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fundwise/fundwise-cli/internal/adapters/driving/tui/components/sidebar"
	"github.com/fundwise/fundwise-cli/internal/adapters/driving/tui/components/status"
	"github.com/fundwise/fundwise-cli/internal/adapters/driving/tui/components/stepbar"
	"github.com/fundwise/fundwise-cli/internal/adapters/driving/tui/keymap"
	"github.com/fundwise/fundwise-cli/internal/adapters/driving/tui/messages"
	"github.com/fundwise/fundwise-cli/internal/adapters/driving/tui/styles"
	"github.com/fundwise/fundwise-cli/internal/adapters/driving/tui/views/catalog"
	"github.com/fundwise/fundwise-cli/internal/adapters/driving/tui/views/dashboard"
	"github.com/fundwise/fundwise-cli/internal/adapters/driving/tui/views/decision"
	"github.com/fundwise/fundwise-cli/internal/adapters/driving/tui/views/documents"
	"github.com/fundwise/fundwise-cli/internal/adapters/driving/tui/views/loan"
	"github.com/fundwise/fundwise-cli/internal/adapters/driving/tui/views/profile"
	"github.com/fundwise/fundwise-cli/internal/adapters/driving/tui/views/schemes"
	"github.com/fundwise/fundwise-cli/internal/adapters/driving/tui/views/snapshot"
	"github.com/fundwise/fundwise-cli/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
//
// The active step always comes from the navigation controller; the app
// only renders it and forwards input.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	sidebar *sidebar.Sidebar
	stepbar *stepbar.Bar
	status  *status.Bar

	dashboardView *dashboard.View
	profileView   *profile.View
	snapshotView  *snapshot.View
	schemesView   *schemes.View
	loanView      *loan.View
	decisionView  *decision.View
	documentsView *documents.View
	catalogView   *catalog.View

	// focus is the pane receiving key input.
	focus messages.Pane

	showHelp  bool
	analysing bool

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	nav := ports.Navigation

	nav.SetHasProfile(ports.Profile.HasProfile())
	nav.SetHasResult(ports.Gateway.Result() != nil)
	ports.Gateway.OnResultChange(func(r *domain.AnalysisResult) {
		if r == nil {
			nav.SetHasResult(false)
		}
	})

	a := &App{
		ports:         ports,
		ctx:           context.Background(),
		styles:        s,
		keymap:        km,
		sidebar:       sidebar.New(s, nav),
		stepbar:       stepbar.New(s, nav),
		status:        status.NewBar(s, km),
		dashboardView: dashboard.NewView(s, ports.Profile, ports.Gateway, ports.Documents),
		profileView:   profile.NewView(s, ports.Profile),
		snapshotView:  snapshot.NewView(s),
		schemesView:   schemes.NewView(s),
		loanView:      loan.NewView(s, ports.Profile, ports.Gateway),
		decisionView:  decision.NewView(s),
		documentsView: documents.NewView(s, ports.Documents, ports.Gateway),
		catalogView:   catalog.NewView(s, ports.Gateway),
		focus:         messages.PaneSidebar,
	}
	a.profileView.Reload()
	a.setResult(ports.Gateway.Result())
	a.sidebar.Select(nav.Current())
	return a, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("FundWise"),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a, a.handleKey(msg)

	case messages.StepRequested:
		return a, a.goTo(msg.Step)

	case messages.AnalysisCompleted:
		a.analysing = false
		if msg.Err != nil {
			a.fail(msg.Err)
			return a, nil
		}
		a.err = nil
		a.ports.Navigation.SetHasProfile(a.ports.Profile.HasProfile())
		a.ports.Navigation.OnAnalysisSucceeded()
		a.setResult(msg.Result)
		a.status.Set(status.StateSuccess, "Analysis ready for "+msg.Result.FarmerName)
		return a, a.enter(a.ports.Navigation.Current())

	case messages.ProfileSaved:
		a.profileView, cmd = a.profileView.Update(msg)
		if msg.Err != nil {
			a.fail(msg.Err)
			return a, cmd
		}
		a.ports.Navigation.SetHasProfile(a.ports.Profile.HasProfile())
		a.status.Set(status.StateSuccess, "Profile saved")
		return a, cmd

	case messages.LoanAssessed:
		a.loanView, cmd = a.loanView.Update(msg)
		if msg.Err != nil {
			a.fail(msg.Err)
		} else {
			a.status.Set(status.StateSuccess, "Loan assessed")
		}
		return a, cmd

	case messages.SchemesLoaded:
		a.catalogView, cmd = a.catalogView.Update(msg)
		if msg.Err != nil {
			a.fail(msg.Err)
		}
		return a, cmd

	case messages.DocumentsLoaded, messages.DocumentDeleted:
		a.documentsView, cmd = a.documentsView.Update(msg)
		return a, cmd

	case messages.DocumentScanned:
		a.documentsView, cmd = a.documentsView.Update(msg)
		if msg.Err != nil {
			a.fail(msg.Err)
		} else if msg.Analysis != nil {
			a.status.Set(status.StateSuccess, fmt.Sprintf("Scan complete: %s risk", msg.Analysis.RiskLevel))
		}
		return a, cmd

	case messages.ErrorOccurred:
		a.fail(msg.Err)
		a.documentsView, cmd = a.documentsView.Update(msg)
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()

	if keymap.Matches(key, a.keymap.Quit) && (key == "ctrl+c" || a.focus == messages.PaneSidebar) {
		return tea.Quit
	}

	if a.showHelp {
		if keymap.Matches(key, a.keymap.Help) || keymap.Matches(key, a.keymap.Back) {
			a.showHelp = false
		}
		return nil
	}

	switch {
	case keymap.Matches(key, a.keymap.Help) && a.focus == messages.PaneSidebar:
		a.showHelp = true
		return nil

	case keymap.Matches(key, a.keymap.Focus):
		a.setFocus(1 - a.focus)
		return nil

	case keymap.Matches(key, a.keymap.Back) && a.focus == messages.PaneMain:
		a.setFocus(messages.PaneSidebar)
		return nil

	case keymap.Matches(key, a.keymap.Next):
		if next, ok := a.ports.Navigation.Next(a.CurrentStep()); ok {
			return a.goTo(next)
		}
		return nil

	case keymap.Matches(key, a.keymap.Prev):
		if prev, ok := a.ports.Navigation.Prev(a.CurrentStep()); ok {
			return a.goTo(prev)
		}
		return nil

	case keymap.Matches(key, a.keymap.Analyse):
		return a.analyse()

	case keymap.Matches(key, a.keymap.ClearResult):
		return a.clearResult()
	}

	if a.focus == messages.PaneSidebar {
		var cmd tea.Cmd
		a.sidebar, cmd = a.sidebar.Update(msg)
		return cmd
	}
	return a.updateCurrent(msg)
}

// goTo asks the navigation controller for step and loads the view.
func (a *App) goTo(step domain.Step) tea.Cmd {
	if err := a.ports.Navigation.GoTo(step); err != nil {
		if errors.Is(err, domain.ErrStepLocked) {
			a.status.Set(status.StateLocked, lockedMessage(step))
		} else {
			a.fail(err)
		}
		return nil
	}
	a.status.Clear()
	a.setFocus(messages.PaneMain)
	return a.enter(step)
}

func lockedMessage(step domain.Step) string {
	return fmt.Sprintf("%s is locked until an analysis has run (ctrl+r)", step.Title())
}

// enter prepares the view for step after navigation moved there.
func (a *App) enter(step domain.Step) tea.Cmd {
	a.sidebar.Select(step)
	_, wizard := a.ports.Navigation.OrdinalOf(step)
	a.status.SetWizard(wizard)

	switch step {
	case domain.StepProfile, domain.StepProfileEditor:
		a.profileView.Reload()
	case domain.StepDocuments, domain.StepDocumentScan:
		return a.documentsView.Load()
	case domain.StepCatalog:
		return a.catalogView.Load()
	}
	return nil
}

// analysisInput reads the profile form when it is on screen and the
// stored profile otherwise.
func (a *App) analysisInput() (domain.ProfileInput, error) {
	switch a.CurrentStep() {
	case domain.StepProfile, domain.StepProfileEditor:
		return a.profileView.Input()
	}
	return domain.ProfileInput{Profile: a.ports.Profile.Get()}, nil
}

func (a *App) analyse() tea.Cmd {
	if a.analysing {
		return nil
	}
	in, err := a.analysisInput()
	if err == nil {
		err = in.Validate()
	}
	if err != nil {
		a.fail(err)
		return nil
	}

	a.analysing = true
	a.status.Set(status.StateWorking, "Analysing profile...")
	gateway, ctx := a.ports.Gateway, a.ctx
	return func() tea.Msg {
		result, err := gateway.SubmitForAnalysis(ctx, in)
		return messages.AnalysisCompleted{Result: result, Err: err}
	}
}

// clearResult discards the analysis. Navigation falls back to the profile
// step if the current step needed the result.
func (a *App) clearResult() tea.Cmd {
	if a.ports.Gateway.Result() == nil {
		return nil
	}
	a.ports.Gateway.ClearResult()
	a.setResult(nil)
	cmd := a.enter(a.CurrentStep())
	a.status.Set(status.StateReady, "Result cleared")
	return cmd
}

// setResult pushes r into every view that renders analysis output.
func (a *App) setResult(r *domain.AnalysisResult) {
	a.snapshotView.SetResult(r)
	a.schemesView.SetResult(r)
	a.decisionView.SetResult(r)
	a.loanView.SetResult(r)
}

func (a *App) fail(err error) {
	a.err = err
	a.status.Set(status.StateError, err.Error())
}

func (a *App) setFocus(p messages.Pane) {
	a.focus = p
	a.sidebar.SetFocused(p == messages.PaneSidebar)
}

// updateCurrent forwards msg to the active step's view.
func (a *App) updateCurrent(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.CurrentStep() {
	case domain.StepDashboard:
		a.dashboardView, cmd = a.dashboardView.Update(msg)
	case domain.StepProfile, domain.StepProfileEditor:
		a.profileView, cmd = a.profileView.Update(msg)
	case domain.StepSnapshot:
		a.snapshotView, cmd = a.snapshotView.Update(msg)
	case domain.StepSchemes:
		a.schemesView, cmd = a.schemesView.Update(msg)
	case domain.StepLoan, domain.StepLoanCheck:
		a.loanView, cmd = a.loanView.Update(msg)
	case domain.StepDecisions:
		a.decisionView, cmd = a.decisionView.Update(msg)
	case domain.StepDocuments, domain.StepDocumentScan:
		a.documentsView, cmd = a.documentsView.Update(msg)
	case domain.StepCatalog:
		a.catalogView, cmd = a.catalogView.Update(msg)
	}
	return cmd
}

func (a *App) currentView() string {
	switch a.CurrentStep() {
	case domain.StepDashboard:
		return a.dashboardView.View()
	case domain.StepProfile, domain.StepProfileEditor:
		return a.profileView.View()
	case domain.StepSnapshot:
		return a.snapshotView.View()
	case domain.StepSchemes:
		return a.schemesView.View()
	case domain.StepLoan, domain.StepLoanCheck:
		return a.loanView.View()
	case domain.StepDecisions:
		return a.decisionView.View()
	case domain.StepDocuments, domain.StepDocumentScan:
		return a.documentsView.View()
	case domain.StepCatalog:
		return a.catalogView.View()
	}
	return ""
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	if a.showHelp {
		return a.viewHelp()
	}

	main := a.stepbar.View(a.CurrentStep()) + "\n\n" + a.currentView()
	mainPane := lipgloss.NewStyle().
		Padding(0, 2).
		Width(a.mainWidth()).
		Render(main)

	body := lipgloss.JoinHorizontal(lipgloss.Top, a.sidebar.View(), mainPane)
	return lipgloss.JoinVertical(lipgloss.Left, body, a.status.View())
}

// viewHelp renders the key binding reference.
func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Keys"))
	b.WriteString("\n\n")
	for _, group := range a.keymap.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %-10s %s\n", h.Key, h.Desc))
		}
		b.WriteString("\n")
	}
	b.WriteString(a.styles.Help.Render("[?/esc] close"))
	return b.String()
}

func (a *App) mainWidth() int {
	w := a.width - sidebar.Width - 4
	if w < 20 {
		w = 20
	}
	return w
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentStep returns the active workflow step.
func (a *App) CurrentStep() domain.Step {
	return a.ports.Navigation.Current()
}

// Focus returns the pane receiving key input.
func (a *App) Focus() messages.Pane {
	return a.focus
}

// Analysing reports whether an analysis call is in flight.
func (a *App) Analysing() bool {
	return a.analysing
}

// ShowingHelp reports whether the help overlay is visible.
func (a *App) ShowingHelp() bool {
	return a.showHelp
}

// Status returns the status bar state and message.
func (a *App) Status() (status.State, string) {
	return a.status.State(), a.status.Message()
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions and sizes every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	mainW, mainH := a.mainWidth()-4, height-4
	a.sidebar.SetHeight(height - 2)
	a.status.SetWidth(width)
	a.dashboardView.SetDimensions(mainW, mainH)
	a.profileView.SetDimensions(mainW, mainH)
	a.snapshotView.SetDimensions(mainW, mainH)
	a.schemesView.SetDimensions(mainW, mainH)
	a.loanView.SetDimensions(mainW, mainH)
	a.decisionView.SetDimensions(mainW, mainH)
	a.documentsView.SetDimensions(mainW, mainH)
	a.catalogView.SetDimensions(mainW, mainH)
}
