package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/fundwise/fundwise-cli/internal/core/domain"
	"github.com/fundwise/fundwise-cli/internal/core/ports/driven"
	"github.com/fundwise/fundwise-cli/internal/core/ports/driving"
	"github.com/fundwise/fundwise-cli/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// maxConcurrentFills bounds how many files are read at once per Add.
const maxConcurrentFills = 4

// DocumentService owns the document library.
//
// Add writes a placeholder per file immediately and fills content in the
// background. Every fill merges by id into the current collection, so
// concurrent intakes never overwrite each other.
type DocumentService struct {
	store *PersistentStore[[]domain.DocumentRecord]
	pages driven.PageCounter

	mu   sync.Mutex
	docs []domain.DocumentRecord

	pending sync.WaitGroup
	now     func() time.Time
}

// NewDocumentService loads the persisted library. pages may be nil.
func NewDocumentService(kv driven.KVStore, validator driven.RecordValidator, pages driven.PageCounter) *DocumentService {
	store := NewPersistentStore[[]domain.DocumentRecord](kv, validator)
	loaded := store.Load(domain.KeyDocuments, []domain.DocumentRecord{})

	docs := make([]domain.DocumentRecord, 0, len(loaded))
	for _, d := range loaded {
		if d.ID == "" {
			continue
		}
		if d.Folder == "" {
			d.Folder = domain.DefaultFolder
		}
		docs = append(docs, d)
	}

	return &DocumentService{
		store: store,
		pages: pages,
		docs:  docs,
		now:   time.Now,
	}
}

// List returns all documents in insertion order.
func (s *DocumentService) List() []domain.DocumentRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.DocumentRecord(nil), s.docs...)
}

// Get returns one document by ID.
func (s *DocumentService) Get(id string) (*domain.DocumentRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}
	doc := s.docs[idx]
	return &doc, nil
}

// Add creates placeholders for files and fills their content asynchronously.
func (s *DocumentService) Add(ctx context.Context, files []domain.FileUpload) ([]domain.DocumentRecord, error) {
	for _, f := range files {
		if !domain.IsLibraryFile(f.Name) {
			return nil, fmt.Errorf("%s: %w", f.Name, domain.ErrUnsupportedFileType)
		}
	}
	if len(files) == 0 {
		return nil, nil
	}

	placeholders := make([]domain.DocumentRecord, len(files))
	for i, f := range files {
		placeholders[i] = s.placeholder(f)
	}

	s.mu.Lock()
	s.docs = append(s.docs, placeholders...)
	s.persistLocked()
	s.mu.Unlock()

	logger.Debug("documents: added %d placeholder(s)", len(placeholders))

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()

		var g errgroup.Group
		g.SetLimit(maxConcurrentFills)
		for i, f := range files {
			id := placeholders[i].ID
			g.Go(func() error {
				return s.fill(ctx, id, f)
			})
		}
		if err := g.Wait(); err != nil {
			logger.Warn("documents: content fill: %v", err)
		}
	}()

	return placeholders, nil
}

// Wait blocks until all pending content fills have finished.
func (s *DocumentService) Wait() {
	s.pending.Wait()
}

// Rename changes a document's name.
func (s *DocumentService) Rename(id, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return fmt.Errorf("%w: name cannot be empty", domain.ErrInvalidInput)
	}
	return s.update(id, func(d *domain.DocumentRecord) {
		d.Name = newName
	})
}

// Move changes a document's folder. An empty folder means the default.
func (s *DocumentService) Move(id, folder string) error {
	folder = strings.TrimSpace(folder)
	if folder == "" {
		folder = domain.DefaultFolder
	}
	return s.update(id, func(d *domain.DocumentRecord) {
		d.Folder = folder
	})
}

// SetRiskLevel records a document risk scan outcome.
func (s *DocumentService) SetRiskLevel(id string, level domain.RiskLevel) error {
	if !level.IsValid() {
		return fmt.Errorf("%w: unknown risk level %q", domain.ErrInvalidInput, level)
	}
	return s.update(id, func(d *domain.DocumentRecord) {
		d.RiskLevel = &level
	})
}

// Delete removes a document by ID.
func (s *DocumentService) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}

	kept := make([]domain.DocumentRecord, 0, len(s.docs)-1)
	kept = append(kept, s.docs[:idx]...)
	kept = append(kept, s.docs[idx+1:]...)
	s.docs = kept
	s.persistLocked()
	return nil
}

// ClearAll empties the library.
func (s *DocumentService) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.docs = []domain.DocumentRecord{}
	s.persistLocked()
}

// Folders returns the distinct folder names in first-use order.
func (s *DocumentService) Folders() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool)
	var folders []string
	for _, d := range s.docs {
		if !seen[d.Folder] {
			seen[d.Folder] = true
			folders = append(folders, d.Folder)
		}
	}
	return folders
}

// Download returns the decoded content of a document.
func (s *DocumentService) Download(id string) ([]byte, error) {
	doc, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if !doc.HasContent() {
		return nil, fmt.Errorf("%s: %w", doc.Name, domain.ErrContentUnavailable)
	}

	data, err := base64.StdEncoding.DecodeString(*doc.Content)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", doc.Name, err)
	}
	return data, nil
}

func (s *DocumentService) placeholder(f domain.FileUpload) domain.DocumentRecord {
	folder := strings.TrimSpace(f.Folder)
	if folder == "" {
		folder = domain.DefaultFolder
	}
	mimeType := f.MIMEType
	if mimeType == "" {
		mimeType = domain.MIMETypeFor(f.Name)
	}
	return domain.DocumentRecord{
		ID:         uuid.Must(uuid.NewV7()).String(),
		Name:       f.Name,
		Size:       f.Size,
		MIMEType:   mimeType,
		Folder:     folder,
		UploadedAt: s.now().UTC(),
	}
}

// fill reads one file and merges its content into the current collection.
func (s *DocumentService) fill(ctx context.Context, id string, f domain.FileUpload) error {
	if f.Open == nil {
		return nil
	}

	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return fmt.Errorf("read %s: %w", f.Name, err)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("fill %s: %w", f.Name, err)
	}

	encoded := base64.StdEncoding.EncodeToString(data)

	var pages int
	if s.pages != nil && domain.FileExtension(f.Name) == "pdf" {
		if n, err := s.pages.PageCount(data); err == nil {
			pages = n
		} else {
			logger.Debug("documents: page count %s: %v", f.Name, err)
		}
	}

	err = s.update(id, func(d *domain.DocumentRecord) {
		d.Content = &encoded
		d.Size = int64(len(data))
		d.PageCount = pages
	})
	if err != nil {
		// Deleted or cleared while the content was being read.
		logger.Debug("documents: drop fill for %s: %v", id, err)
	}
	return nil
}

// update applies fn to the current record with id and persists.
func (s *DocumentService) update(id string, fn func(*domain.DocumentRecord)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}
	fn(&s.docs[idx])
	s.persistLocked()
	return nil
}

func (s *DocumentService) indexOf(id string) int {
	for i := range s.docs {
		if s.docs[i].ID == id {
			return i
		}
	}
	return -1
}

// persistLocked writes the collection. Callers hold s.mu.
func (s *DocumentService) persistLocked() {
	s.store.Save(domain.KeyDocuments, s.docs)
}
