// Package scanner finds statement files under a directory tree for
// batch analysis.
package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/praneeth-alaghari/web-apps/statement-analyzer/internal/decode"
)

// Scanner walks a directory tree and finds analyzable statement files.
type Scanner struct {
	rootDir string
}

// New creates a scanner for the given root directory.
func New(rootDir string) *Scanner {
	return &Scanner{rootDir: rootDir}
}

// ScanResult is one found statement file.
type ScanResult struct {
	Path   string
	Format decode.Format
}

// Scan walks the tree and returns supported files in path order.
func (s *Scanner) Scan() ([]ScanResult, error) {
	var results []ScanResult

	rootDir := s.expandHome(s.rootDir)

	err := filepath.Walk(rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		format, err := decode.Detect(path)
		if err != nil {
			// Unsupported extensions are not an error at scan time.
			return nil
		}

		results = append(results, ScanResult{Path: path, Format: format})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })
	return results, nil
}

// expandHome expands ~ to home directory
func (s *Scanner) expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}
