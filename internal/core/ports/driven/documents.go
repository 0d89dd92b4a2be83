package driven

import (
	"io"

	"github.com/fundwise/fundwise-cli/internal/core/domain"
)

// PageCounter reads page metrics from document content.
type PageCounter interface {
	// PageCount returns the number of pages in a PDF.
	PageCount(content []byte) (int, error)
}

// ReportExporter writes an analysis result in a shareable format.
type ReportExporter interface {
	// Export writes a report for profile and result to w.
	Export(w io.Writer, profile domain.Profile, result *domain.AnalysisResult) error
}
