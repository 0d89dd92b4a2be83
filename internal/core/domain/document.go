package domain

import (
	"io"
	"path/filepath"
	"strings"
	"time"
)

// DefaultFolder is the folder assigned to documents added without one.
const DefaultFolder = "Uncategorized"

// RiskLevel is the outcome of a document risk scan.
type RiskLevel string

// Risk levels reported by document analysis.
const (
	RiskLevelLow    RiskLevel = "low"
	RiskLevelMedium RiskLevel = "medium"
	RiskLevelHigh   RiskLevel = "high"
)

// IsValid reports whether l is one of the known levels.
func (l RiskLevel) IsValid() bool {
	switch l {
	case RiskLevelLow, RiskLevelMedium, RiskLevelHigh:
		return true
	}
	return false
}

// SizeClass buckets documents by size for the library view.
type SizeClass string

// Size classes.
const (
	SizeSmall  SizeClass = "small"
	SizeMedium SizeClass = "medium"
	SizeLarge  SizeClass = "large"
)

const (
	mebibyte        = 1 << 20
	smallLimitBytes = 1 * mebibyte
	mediumLimit     = 10 * mebibyte
)

// ClassifySize returns the size class for a byte count.
func ClassifySize(size int64) SizeClass {
	switch {
	case size < smallLimitBytes:
		return SizeSmall
	case size < mediumLimit:
		return SizeMedium
	default:
		return SizeLarge
	}
}

// DocumentRecord is one uploaded file in the document library.
// Content is base64 and may be nil until the asynchronous fill completes,
// or permanently for metadata-only records.
type DocumentRecord struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Size       int64      `json:"size"`
	MIMEType   string     `json:"mime_type"`
	Content    *string    `json:"content,omitempty"`
	Folder     string     `json:"folder"`
	UploadedAt time.Time  `json:"uploaded_at"`
	RiskLevel  *RiskLevel `json:"risk_level,omitempty"`
	PageCount  int        `json:"page_count,omitempty"`
}

// HasContent reports whether the record can be downloaded.
func (d DocumentRecord) HasContent() bool {
	return d.Content != nil
}

// SizeClass returns the record's size bucket.
func (d DocumentRecord) SizeClass() SizeClass {
	return ClassifySize(d.Size)
}

// Extension returns the lower-cased file extension without the dot.
func (d DocumentRecord) Extension() string {
	return FileExtension(d.Name)
}

// FileUpload describes a file offered for intake. Open is called
// asynchronously to read the content.
type FileUpload struct {
	Name     string
	Size     int64
	MIMEType string
	Folder   string
	Open     func() (io.ReadCloser, error)
}

// libraryExtensions are accepted into the document library.
var libraryExtensions = []string{"pdf", "png", "jpg", "jpeg", "doc", "docx", "txt", "csv", "xls", "xlsx"}

// analysisExtensions are accepted by the document risk scan.
var analysisExtensions = []string{"pdf", "png", "jpg", "jpeg"}

// FileExtension returns the lower-cased extension of name without the dot.
func FileExtension(name string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
}

// IsLibraryFile reports whether name may be added to the document library.
func IsLibraryFile(name string) bool {
	return contains(libraryExtensions, FileExtension(name))
}

// IsAnalysableFile reports whether name may be sent for a risk scan.
func IsAnalysableFile(name string) bool {
	return contains(analysisExtensions, FileExtension(name))
}

// MIMETypeFor guesses a MIME type from the file extension.
func MIMETypeFor(name string) string {
	switch FileExtension(name) {
	case "pdf":
		return "application/pdf"
	case "png":
		return "image/png"
	case "jpg", "jpeg":
		return "image/jpeg"
	case "doc":
		return "application/msword"
	case "docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case "txt":
		return "text/plain"
	case "csv":
		return "text/csv"
	case "xls":
		return "application/vnd.ms-excel"
	case "xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/octet-stream"
	}
}
