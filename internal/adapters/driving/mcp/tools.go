package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/fundwise/fundwise-cli/internal/core/domain"
	"github.com/fundwise/fundwise-cli/internal/core/geometry"
)

// chartCircle is the viewBox geometry expense_chart paths are drawn in.
var chartCircle = geometry.Circle{CX: 50, CY: 50, R: 40}

// GetProfileInput is the (empty) input of get_profile.
type GetProfileInput struct{}

// ProfileOutput is the saved profile plus its completeness flag.
type ProfileOutput struct {
	Profile  domain.Profile `json:"profile"`
	Complete bool           `json:"complete"`
}

// ListDocumentsInput filters list_documents.
type ListDocumentsInput struct {
	Folder string `json:"folder,omitempty" jsonschema:"only return documents in this folder"`
}

// ListDocumentsOutput is the output schema for list_documents.
type ListDocumentsOutput struct {
	Documents []DocumentOutput `json:"documents"`
	Count     int              `json:"count"`
}

// DocumentOutput is a document's metadata without its content.
type DocumentOutput struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Folder     string `json:"folder"`
	MIMEType   string `json:"mime_type"`
	Size       int64  `json:"size"`
	SizeClass  string `json:"size_class"`
	UploadedAt string `json:"uploaded_at"`
	PageCount  int    `json:"page_count,omitempty"`
	RiskLevel  string `json:"risk_level,omitempty"`
	Available  bool   `json:"available"`
}

// ExpenseChartInput is the (empty) input of expense_chart.
type ExpenseChartInput struct{}

// ExpenseChartOutput is the donut layout of the current expense breakdown.
type ExpenseChartOutput struct {
	FarmerName string          `json:"farmer_name"`
	Segments   []SegmentOutput `json:"segments"`
}

// SegmentOutput is one donut slice.
type SegmentOutput struct {
	Label      string  `json:"label"`
	Color      string  `json:"color"`
	Fraction   float64 `json:"fraction"`
	StartAngle float64 `json:"start_angle"`
	Sweep      float64 `json:"sweep"`
	Path       string  `json:"path"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_profile",
		Description: "Return the saved farmer household profile",
	}, s.handleGetProfile)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_documents",
		Description: "List documents in the library, optionally by folder",
	}, s.handleListDocuments)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "expense_chart",
		Description: "Donut chart segments for the current analysis expense breakdown",
	}, s.handleExpenseChart)
}

func (s *Server) handleGetProfile(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ GetProfileInput,
) (*mcp.CallToolResult, ProfileOutput, error) {
	return nil, ProfileOutput{
		Profile:  s.ports.Profile.Get(),
		Complete: s.ports.Profile.HasProfile(),
	}, nil
}

func (s *Server) handleListDocuments(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ListDocumentsInput,
) (*mcp.CallToolResult, ListDocumentsOutput, error) {
	output := ListDocumentsOutput{Documents: []DocumentOutput{}}
	if s.ports.Documents == nil {
		return nil, output, nil
	}

	for _, doc := range s.ports.Documents.List() {
		if input.Folder != "" && doc.Folder != input.Folder {
			continue
		}
		output.Documents = append(output.Documents, toDocumentOutput(doc))
	}
	output.Count = len(output.Documents)
	return nil, output, nil
}

func (s *Server) handleExpenseChart(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ ExpenseChartInput,
) (*mcp.CallToolResult, ExpenseChartOutput, error) {
	if s.ports.Gateway == nil {
		return nil, ExpenseChartOutput{}, ErrNoResult
	}
	result := s.ports.Gateway.Result()
	if result == nil {
		return nil, ExpenseChartOutput{}, ErrNoResult
	}

	segments := geometry.DonutSegments(chartCircle, result.ProfileSummary.ExpenseBreakdown)
	output := ExpenseChartOutput{
		FarmerName: result.FarmerName,
		Segments:   make([]SegmentOutput, len(segments)),
	}
	for i, seg := range segments {
		output.Segments[i] = SegmentOutput{
			Label:      seg.Label,
			Color:      seg.Color,
			Fraction:   seg.Fraction,
			StartAngle: seg.StartAngle,
			Sweep:      seg.Sweep,
			Path:       seg.Path,
		}
	}
	return nil, output, nil
}

func toDocumentOutput(doc domain.DocumentRecord) DocumentOutput {
	out := DocumentOutput{
		ID:         doc.ID,
		Name:       doc.Name,
		Folder:     doc.Folder,
		MIMEType:   doc.MIMEType,
		Size:       doc.Size,
		SizeClass:  string(doc.SizeClass()),
		UploadedAt: doc.UploadedAt.UTC().Format("2006-01-02T15:04:05Z"),
		PageCount:  doc.PageCount,
		Available:  doc.HasContent(),
	}
	if doc.RiskLevel != nil {
		out.RiskLevel = string(*doc.RiskLevel)
	}
	return out
}
