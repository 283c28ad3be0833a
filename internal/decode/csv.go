package decode

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/praneeth-alaghari/web-apps/statement-analyzer/internal/domain"
)

// FromCSV reads a CSV export into a table with the first row flagged as
// the header. Bank exports are sloppy with quoting and ragged row
// widths, so the reader is configured to tolerate both.
func FromCSV(r io.Reader) (*domain.Table, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("csv input is empty")
	}

	return domain.NewTable(rows, 0)
}
