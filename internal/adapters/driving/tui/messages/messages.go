// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/fundwise/fundwise-cli/internal/core/domain"
)

// StepRequested asks the app to move to a workflow step. The navigation
// controller decides whether the move is allowed.
type StepRequested struct {
	Step domain.Step
}

// Pane identifies which pane has keyboard focus.
type Pane int

const (
	// PaneSidebar is the step list.
	PaneSidebar Pane = iota
	// PaneMain is the active step's view.
	PaneMain
)

// String returns the string representation of the pane.
func (p Pane) String() string {
	switch p {
	case PaneSidebar:
		return "sidebar"
	case PaneMain:
		return "main"
	default:
		return "unknown"
	}
}

// AnalysisCompleted carries the outcome of a profile analysis.
type AnalysisCompleted struct {
	Result *domain.AnalysisResult
	Err    error
}

// ResultCleared signals the analysis result was discarded.
type ResultCleared struct{}

// ProfileSaved signals the profile form was stored.
type ProfileSaved struct {
	Profile domain.Profile
	Err     error
}

// LoanAssessed carries a loan suitability verdict.
type LoanAssessed struct {
	Assessment *domain.LoanAssessment
	Err        error
}

// SchemesLoaded carries the scheme catalog.
type SchemesLoaded struct {
	Schemes []domain.Scheme
	Err     error
}

// DocumentsLoaded carries the document library.
type DocumentsLoaded struct {
	Documents []domain.DocumentRecord
}

// DocumentDeleted signals a document was removed.
type DocumentDeleted struct {
	ID  string
	Err error
}

// DocumentScanned carries the risk scan of a library document.
type DocumentScanned struct {
	ID       string
	Analysis *domain.DocumentAnalysis
	Err      error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
