package decode

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/praneeth-alaghari/web-apps/statement-analyzer/internal/domain"
)

// DefaultMaxPages bounds per-request work for paginated documents.
const DefaultMaxPages = 50

// DocumentExtractor pulls per-page tables out of a paginated document.
// Implementations wrap whatever external tooling does the actual table
// detection; this package only assembles their output.
type DocumentExtractor interface {
	// ExtractTables returns one [][]string of rows per page, in page
	// order. Pages without tables come back as empty slices.
	ExtractTables(ctx context.Context, r io.Reader) ([][][]string, error)
}

// FromPages concatenates per-page tables into one table. The first
// page's first row is taken as the candidate header; later pages often
// repeat it, and those repeats are dropped so they cannot surface as
// rejected rows. Rows split across a page boundary are left as they
// are, two incomplete rows, and surface in rejection counts downstream.
func FromPages(ctx context.Context, extractor DocumentExtractor, r io.Reader, maxPages int) (*domain.Table, error) {
	if maxPages < 1 {
		maxPages = DefaultMaxPages
	}

	pages, err := extractor.ExtractTables(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("failed to extract tables: %w", err)
	}
	if len(pages) > maxPages {
		return nil, fmt.Errorf("%w: %d pages, limit %d", ErrTooLarge, len(pages), maxPages)
	}

	var rows [][]string
	var header []string
	for _, page := range pages {
		for _, row := range page {
			if header == nil {
				header = row
				rows = append(rows, row)
				continue
			}
			if sameRow(row, header) {
				continue
			}
			rows = append(rows, row)
		}
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("document contains no tables")
	}

	// Whether row zero really is a header is the strategies' call; -1
	// leaves it to their probing.
	return domain.NewTable(rows, -1)
}

func sameRow(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if strings.TrimSpace(a[i]) != strings.TrimSpace(b[i]) {
			return false
		}
	}
	return true
}
