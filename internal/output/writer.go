// Package output serializes analysis reports.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/praneeth-alaghari/web-apps/statement-analyzer/internal/pipeline"
)

// WriteOptions configures where the report is written.
type WriteOptions struct {
	FilePath string // Output path (empty = stdout)
}

// WriteReport serializes a report to JSON with 2-space indentation.
func WriteReport(report *pipeline.Report, w io.Writer) error {
	if report == nil {
		return fmt.Errorf("report cannot be nil")
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("failed to encode report as JSON: %w", err)
	}

	return nil
}

// WriteReportToFile writes a report to file or stdout based on options.
// File writes go through a temp file in the target directory and a
// rename, so a crash mid-write never leaves a truncated report behind.
func WriteReportToFile(report *pipeline.Report, opts WriteOptions) (err error) {
	if report == nil {
		return fmt.Errorf("report cannot be nil")
	}

	if opts.FilePath == "" {
		return WriteReport(report, os.Stdout)
	}

	dir := filepath.Dir(opts.FilePath)
	f, err := os.CreateTemp(dir, filepath.Base(opts.FilePath)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create output file in %s: %w", dir, err)
	}
	tmpName := f.Name()
	defer func() {
		if err != nil {
			os.Remove(tmpName)
		}
	}()

	if err = WriteReport(report, f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write report to %s: %w", opts.FilePath, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("failed to close output file %s: %w", tmpName, err)
	}

	if err = os.Rename(tmpName, opts.FilePath); err != nil {
		return fmt.Errorf("failed to move report into place at %s: %w", opts.FilePath, err)
	}
	return nil
}
