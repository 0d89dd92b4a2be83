// Package documents provides the document library view for the TUI.
package documents

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/fundwise/fundwise-cli/internal/adapters/driving/tui/messages"
	"github.com/fundwise/fundwise-cli/internal/adapters/driving/tui/styles"
	"github.com/fundwise/fundwise-cli/internal/core/domain"
	"github.com/fundwise/fundwise-cli/internal/core/ports/driving"
)

// View is the document library list. It can delete a document or send it
// for a risk scan.
type View struct {
	styles          *styles.Styles
	documentService driving.DocumentService
	gateway         driving.AnalysisGateway

	documents    []domain.DocumentRecord
	selected     int
	scrollOffset int
	width        int
	height       int
	err          error

	scanning string
	scan     *domain.DocumentAnalysis
	scanName string
}

// NewView creates a new documents view. gateway may be nil, which
// disables scanning.
func NewView(s *styles.Styles, documentService driving.DocumentService, gateway driving.AnalysisGateway) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:          s,
		documentService: documentService,
		gateway:         gateway,
		documents:       []domain.DocumentRecord{},
		width:           80,
		height:          24,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Load returns a command that reads the library.
func (v *View) Load() tea.Cmd {
	svc := v.documentService
	return func() tea.Msg {
		if svc == nil {
			return messages.ErrorOccurred{Err: fmt.Errorf("document service not available")}
		}
		return messages.DocumentsLoaded{Documents: svc.List()}
	}
}

// Update handles messages for the documents view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.DocumentsLoaded:
		v.documents = msg.Documents
		if v.selected >= len(v.documents) {
			v.selected = max(len(v.documents)-1, 0)
		}
		v.adjustScroll()
		return v, nil

	case messages.DocumentDeleted:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		return v, v.Load()

	case messages.DocumentScanned:
		v.scanning = ""
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.scan = msg.Analysis
		return v, v.Load()

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles key presses in list mode.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
			v.adjustScroll()
		}
	case "down", "j":
		if v.selected < len(v.documents)-1 {
			v.selected++
			v.adjustScroll()
		}
	case "r":
		return v, v.Load()
	case "d":
		if doc := v.SelectedDocument(); doc != nil {
			return v, v.deleteDocument(doc.ID)
		}
	case "s":
		if doc := v.SelectedDocument(); doc != nil && v.scanning == "" {
			return v, v.scanDocument(*doc)
		}
	}

	return v, nil
}

// deleteDocument returns a command that removes the document.
func (v *View) deleteDocument(id string) tea.Cmd {
	svc := v.documentService
	return func() tea.Msg {
		if svc == nil {
			return messages.DocumentDeleted{ID: id, Err: fmt.Errorf("document service not available")}
		}
		return messages.DocumentDeleted{ID: id, Err: svc.Delete(id)}
	}
}

// scanDocument returns a command that sends the document for a risk scan.
func (v *View) scanDocument(doc domain.DocumentRecord) tea.Cmd {
	if v.gateway == nil {
		v.err = fmt.Errorf("analysis gateway not available")
		return nil
	}
	if !domain.IsAnalysableFile(doc.Name) {
		v.err = fmt.Errorf("%s: %w", doc.Name, domain.ErrUnsupportedFileType)
		return nil
	}

	v.scanning = doc.ID
	v.scanName = doc.Name
	v.err = nil
	gateway := v.gateway
	return func() tea.Msg {
		analysis, err := gateway.AnalyseStoredDocument(context.Background(), doc.ID)
		return messages.DocumentScanned{ID: doc.ID, Analysis: analysis, Err: err}
	}
}

// adjustScroll adjusts the scroll offset to keep the selected item visible.
func (v *View) adjustScroll() {
	visibleItems := v.visibleItemCount()
	if v.selected < v.scrollOffset {
		v.scrollOffset = v.selected
	} else if v.selected >= v.scrollOffset+visibleItems {
		v.scrollOffset = v.selected - visibleItems + 1
	}
}

// visibleItemCount returns the number of items that can be displayed.
func (v *View) visibleItemCount() int {
	// Reserve lines for title, scan panel and help
	available := v.height - 14
	if available < 1 {
		available = 1
	}
	return available
}

// View renders the documents view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Subtitle.Render(fmt.Sprintf("Library (%d)", len(v.documents))))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Risk.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	if len(v.documents) == 0 {
		b.WriteString(v.styles.Muted.Render("No documents. Add some with: fundwise documents add <file>"))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	visibleItems := v.visibleItemCount()
	for i := v.scrollOffset; i < len(v.documents) && i < v.scrollOffset+visibleItems; i++ {
		b.WriteString(v.renderDocument(i, &v.documents[i]))
		b.WriteString("\n")
	}

	if len(v.documents) > visibleItems {
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d-%d of %d]",
			v.scrollOffset+1,
			min(v.scrollOffset+visibleItems, len(v.documents)),
			len(v.documents))))
		b.WriteString("\n")
	}

	if panel := v.renderScan(); panel != "" {
		b.WriteString("\n")
		b.WriteString(panel)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

// renderDocument renders a single document line.
func (v *View) renderDocument(index int, doc *domain.DocumentRecord) string {
	indicator := "  "
	if index == v.selected {
		indicator = "> "
	}

	name := doc.Name
	maxNameLen := v.width/2 - 4
	if maxNameLen < 10 {
		maxNameLen = 10
	}
	if len(name) > maxNameLen {
		name = name[:maxNameLen-3] + "..."
	}

	meta := fmt.Sprintf("%-8s %-10s %s", humanize.Bytes(uint64(doc.Size)), doc.Folder, humanize.Time(doc.UploadedAt))
	if doc.PageCount > 0 {
		meta += fmt.Sprintf(" %dp", doc.PageCount)
	}
	if !doc.HasContent() {
		meta += " (reading)"
	}

	risk := ""
	if doc.RiskLevel != nil {
		risk = " " + v.styles.Band(riskBand(*doc.RiskLevel)).Render(strings.ToUpper(string(*doc.RiskLevel)))
	}

	if index == v.selected {
		return v.styles.Selected.Render(fmt.Sprintf("%s%-*s  %s", indicator, maxNameLen, name, meta)) + risk
	}
	return v.styles.Normal.Render(fmt.Sprintf("%s%-*s  ", indicator, maxNameLen, name)) +
		v.styles.Muted.Render(meta) + risk
}

func riskBand(level domain.RiskLevel) string {
	switch level {
	case domain.RiskLevelLow:
		return "good"
	case domain.RiskLevelMedium:
		return "caution"
	default:
		return "risk"
	}
}

func (v *View) renderScan() string {
	if v.scanning != "" {
		return v.styles.Caution.Render("Scanning " + v.scanName + "...")
	}
	if v.scan == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(v.styles.Subtitle.Render("Scan: " + v.scanName))
	b.WriteString("  ")
	b.WriteString(v.styles.Band(riskBand(v.scan.RiskLevel)).Render(strings.ToUpper(string(v.scan.RiskLevel))))
	if v.scan.DocumentType != "" {
		b.WriteString(v.styles.Muted.Render("  " + v.scan.DocumentType))
	}
	if v.scan.Summary != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.Normal.Render(v.scan.Summary))
	}
	for _, flag := range v.scan.RedFlags {
		b.WriteString("\n")
		b.WriteString(v.styles.Risk.Render("  ! " + flag))
	}
	return b.String()
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓] navigate  [s] scan  [d] delete  [r] reload")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// Documents returns the current list of documents.
func (v *View) Documents() []domain.DocumentRecord {
	return v.documents
}

// SelectedIndex returns the currently selected document index.
func (v *View) SelectedIndex() int {
	return v.selected
}

// SelectedDocument returns the currently selected document.
func (v *View) SelectedDocument() *domain.DocumentRecord {
	if v.selected < len(v.documents) {
		return &v.documents[v.selected]
	}
	return nil
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
