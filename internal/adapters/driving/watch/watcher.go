// Package watch feeds files dropped into an intake folder into the
// document library.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/fundwise/fundwise-cli/internal/core/domain"
	"github.com/fundwise/fundwise-cli/internal/logger"
)

// DefaultDebounce coalesces bursts of create/write events for one file.
const DefaultDebounce = 500 * time.Millisecond

// Intake accepts uploads. driving.DocumentService satisfies it.
type Intake interface {
	Add(ctx context.Context, files []domain.FileUpload) ([]domain.DocumentRecord, error)
}

// Config controls a Watcher.
type Config struct {
	// Dir is the intake directory. It is not watched recursively.
	Dir string

	// Folder is the library folder new documents are filed under.
	Folder string

	// Debounce is how long a file must be quiet before it is added.
	Debounce time.Duration

	// InitialScan adds files already present when Run starts.
	InitialScan bool

	// OnAdded, if set, is called with each batch of new records.
	OnAdded func([]domain.DocumentRecord)
}

// Watcher adds library files that appear in a directory.
type Watcher struct {
	intake Intake
	cfg    Config

	// seen holds path|size|mtime keys already handed to intake.
	seen map[string]struct{}
}

// New creates a watcher for cfg.Dir.
func New(intake Intake, cfg Config) (*Watcher, error) {
	if intake == nil {
		return nil, errors.New("watch: intake is required")
	}
	if cfg.Dir == "" {
		return nil, fmt.Errorf("watch: %w: directory is required", domain.ErrInvalidInput)
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	return &Watcher{intake: intake, cfg: cfg, seen: make(map[string]struct{})}, nil
}

// Run watches until ctx is cancelled. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	info, err := os.Stat(w.cfg.Dir)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("watch: %w: %s is not a directory", domain.ErrInvalidInput, w.cfg.Dir)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.cfg.Dir); err != nil {
		return fmt.Errorf("watch: add %s: %w", w.cfg.Dir, err)
	}
	logger.Info("watching %s for new documents", w.cfg.Dir)

	if w.cfg.InitialScan {
		if err := w.scan(ctx); err != nil {
			return err
		}
	}

	pending := make(map[string]struct{})
	timer := time.NewTimer(w.cfg.Debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 || !candidate(ev.Name) {
				continue
			}
			pending[ev.Name] = struct{}{}
			timer.Reset(w.cfg.Debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch: %v", err)

		case <-timer.C:
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			clear(pending)
			w.submit(ctx, paths)
		}
	}
}

func (w *Watcher) scan(ctx context.Context) error {
	entries, err := os.ReadDir(w.cfg.Dir)
	if err != nil {
		return fmt.Errorf("watch: scan %s: %w", w.cfg.Dir, err)
	}

	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		path := filepath.Join(w.cfg.Dir, e.Name())
		if !e.IsDir() && candidate(path) {
			paths = append(paths, path)
		}
	}
	w.submit(ctx, paths)
	return nil
}

// submit hands new files to intake in one batch.
func (w *Watcher) submit(ctx context.Context, paths []string) {
	sort.Strings(paths)

	var uploads []domain.FileUpload
	var keys []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			// Removed or replaced before the debounce fired.
			continue
		}

		key := fmt.Sprintf("%s|%d|%d", path, info.Size(), info.ModTime().UnixNano())
		if _, ok := w.seen[key]; ok {
			continue
		}
		keys = append(keys, key)

		name := filepath.Base(path)
		uploads = append(uploads, domain.FileUpload{
			Name:     name,
			Size:     info.Size(),
			MIMEType: domain.MIMETypeFor(name),
			Folder:   w.cfg.Folder,
			Open:     opener(path),
		})
	}
	if len(uploads) == 0 {
		return
	}

	records, err := w.intake.Add(ctx, uploads)
	if err != nil {
		logger.Warn("watch: add %d file(s): %v", len(uploads), err)
		return
	}
	for _, k := range keys {
		w.seen[k] = struct{}{}
	}

	logger.Info("watch: added %d document(s)", len(records))
	if w.cfg.OnAdded != nil {
		w.cfg.OnAdded(records)
	}
}

func opener(path string) func() (io.ReadCloser, error) {
	return func() (io.ReadCloser, error) {
		return os.Open(path)
	}
}

// candidate reports whether path names a visible library file.
func candidate(path string) bool {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "~$") {
		return false
	}
	return domain.IsLibraryFile(name)
}
