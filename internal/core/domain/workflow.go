package domain

// Step is a named stage of the assessment workflow.
type Step string

// Wizard steps, in order after profile.
const (
	StepProfile   Step = "profile"
	StepSnapshot  Step = "snapshot"
	StepSchemes   Step = "schemes"
	StepLoan      Step = "loan"
	StepDecisions Step = "decisions"
)

// Utility steps are self-contained and always reachable.
const (
	StepDashboard     Step = "dashboard"
	StepProfileEditor Step = "profile_editor"
	StepDocuments     Step = "documents"
	StepCatalog       Step = "catalog"
	StepLoanCheck     Step = "loan_check"
	StepDocumentScan  Step = "document_scan"
)

// WizardOrder is the linear order used for progress display and next/back.
var WizardOrder = []Step{StepProfile, StepSnapshot, StepSchemes, StepDecisions}

// AllSteps lists every step in sidebar order.
func AllSteps() []Step {
	return []Step{
		StepDashboard, StepProfile, StepSnapshot, StepSchemes, StepLoan, StepDecisions,
		StepProfileEditor, StepDocuments, StepCatalog, StepLoanCheck, StepDocumentScan,
	}
}

// IsUtility reports whether the step is a self-contained utility screen.
func (s Step) IsUtility() bool {
	switch s {
	case StepDashboard, StepProfileEditor, StepDocuments, StepCatalog, StepLoanCheck, StepDocumentScan:
		return true
	}
	return false
}

// IsValid reports whether s is a known step.
func (s Step) IsValid() bool {
	return contains(AllSteps(), s)
}

// Title returns the display title of the step.
func (s Step) Title() string {
	switch s {
	case StepDashboard:
		return "Dashboard"
	case StepProfile:
		return "Profile"
	case StepSnapshot:
		return "Snapshot"
	case StepSchemes:
		return "Schemes"
	case StepLoan:
		return "Loan"
	case StepDecisions:
		return "Decision"
	case StepProfileEditor:
		return "Edit Profile"
	case StepDocuments:
		return "Documents"
	case StepCatalog:
		return "Scheme Catalog"
	case StepLoanCheck:
		return "Loan Check"
	case StepDocumentScan:
		return "Document Scan"
	default:
		return string(s)
	}
}
