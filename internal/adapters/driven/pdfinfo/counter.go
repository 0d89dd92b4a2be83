// Package pdfinfo reads page metrics from PDF content using pdfcpu.
package pdfinfo

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/fundwise/fundwise-cli/internal/core/ports/driven"
)

// Ensure Counter implements the interface.
var _ driven.PageCounter = (*Counter)(nil)

var disableConfigDir sync.Once

// Counter counts PDF pages.
type Counter struct {
	conf *model.Configuration
}

// NewCounter creates a page counter with relaxed validation so that
// slightly malformed scans from phones still open.
func NewCounter() *Counter {
	// pdfcpu otherwise creates a config directory under the user's home.
	disableConfigDir.Do(api.DisableConfigDir)

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Counter{conf: conf}
}

// PageCount returns the number of pages in content.
func (c *Counter) PageCount(content []byte) (int, error) {
	if len(content) == 0 {
		return 0, fmt.Errorf("page count: empty content")
	}

	n, err := api.PageCount(bytes.NewReader(content), c.conf)
	if err != nil {
		return 0, fmt.Errorf("page count: %w", err)
	}
	return n, nil
}
