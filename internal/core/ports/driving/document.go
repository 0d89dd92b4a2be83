package driving

import (
	"context"

	"github.com/fundwise/fundwise-cli/internal/core/domain"
)

// DocumentService manages the document library.
type DocumentService interface {
	// List returns all documents in insertion order.
	List() []domain.DocumentRecord

	// Get returns one document by ID.
	Get(id string) (*domain.DocumentRecord, error)

	// Add creates a placeholder record per file, persists them, and fills
	// content asynchronously. Returns the placeholders. Fails with
	// domain.ErrUnsupportedFileType before any change if a file is disallowed.
	Add(ctx context.Context, files []domain.FileUpload) ([]domain.DocumentRecord, error)

	// Wait blocks until all pending content fills have finished.
	Wait()

	// Rename changes a document's name. Unknown IDs change nothing.
	Rename(id, newName string) error

	// Move changes a document's folder. Unknown IDs change nothing.
	Move(id, folder string) error

	// Delete removes a document by ID.
	Delete(id string) error

	// ClearAll empties the library.
	ClearAll()

	// Folders returns the distinct folder names in first-use order.
	Folders() []string

	// Download returns the decoded content.
	// Fails with domain.ErrContentUnavailable for metadata-only records.
	Download(id string) ([]byte, error)

	// SetRiskLevel records the outcome of a document risk scan.
	SetRiskLevel(id string, level domain.RiskLevel) error
}
