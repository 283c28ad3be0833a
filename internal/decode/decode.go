// Package decode turns uploaded statement files into tables the
// extraction strategies can work on.
package decode

import (
	"errors"
	"path/filepath"
	"strings"
)

// Format identifies a supported input file type.
type Format string

const (
	// FormatCSV is a plain comma-separated export.
	FormatCSV Format = "csv"
	// FormatDocument is a paginated document (PDF and friends) whose
	// tables arrive through a DocumentExtractor.
	FormatDocument Format = "document"
)

var (
	// ErrUnsupportedFormat indicates a file extension nothing here can
	// decode.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrTooLarge indicates the input exceeds the configured page cap.
	ErrTooLarge = errors.New("document exceeds the page limit")
)

// Detect maps a filename to its format by extension.
func Detect(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".txt":
		return FormatCSV, nil
	case ".pdf":
		return FormatDocument, nil
	default:
		return "", ErrUnsupportedFormat
	}
}
