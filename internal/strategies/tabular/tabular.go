// Package tabular extracts transactions from tables that carry
// recognizable column headers.
package tabular

import (
	"context"
	"fmt"
	"strings"

	"github.com/praneeth-alaghari/web-apps/statement-analyzer/internal/domain"
	"github.com/praneeth-alaghari/web-apps/statement-analyzer/internal/extract"
	"github.com/praneeth-alaghari/web-apps/statement-analyzer/internal/transform"
)

// columnMapping holds resolved cell indexes for the semantic fields.
// An index of -1 means the column is absent.
type columnMapping struct {
	date   int
	desc   int
	debit  int
	credit int
	amount int
}

// complete reports whether the mapping satisfies the minimum column set:
// a date column, a description column, and some amount representation
// (single signed column, or debit and/or credit columns).
func (m columnMapping) complete() bool {
	return m.date >= 0 && m.desc >= 0 && (m.amount >= 0 || m.debit >= 0 || m.credit >= 0)
}

// Header synonym tables. Matching is case-insensitive; exact synonyms are
// checked before substring cores so short headers like "Dr" never collide
// with unrelated column names.
var (
	dateExact   = []string{"date", "dt", "txn date", "value date", "transaction date", "posting date"}
	dateCores   = []string{"date"}
	descExact   = []string{"description", "narration", "particulars", "details", "merchant", "payee", "remarks"}
	descCores   = []string{"desc", "narration", "particular", "detail", "merchant", "remark"}
	debitExact  = []string{"debit", "dr", "withdrawal", "withdrawal amt", "withdrawal amount", "paid out", "money out"}
	debitCores  = []string{"debit", "withdrawal"}
	creditExact = []string{"credit", "cr", "deposit", "deposit amt", "deposit amount", "paid in", "money in"}
	creditCores = []string{"credit", "deposit"}
	amountExact = []string{"amount", "amt", "transaction amount"}
	amountCores = []string{"amount"}
)

// Strategy implements header-driven extraction with a stateless design:
// per-request accumulation lives in the Result, so one instance is safe
// for concurrent uploads.
type Strategy struct {
	converter *transform.Converter
}

// New creates the tabular strategy around a shared row converter.
func New(converter *transform.Converter) *Strategy {
	return &Strategy{converter: converter}
}

// Name returns the strategy identifier
func (s *Strategy) Name() string {
	return "tabular"
}

// CanExtract reports whether the table's candidate header row maps to the
// minimum recognizable column set. Tables without a flagged header are
// probed on their first row, since exports often omit the header flag.
func (s *Strategy) CanExtract(t *domain.Table) bool {
	_, ok := s.mapColumns(t)
	return ok
}

// Extract reads each body row through the column mapping and the shared
// converter. Rows failing normalization are dropped and counted, never
// emitted with placeholder values.
func (s *Strategy) Extract(ctx context.Context, t *domain.Table) (*extract.Result, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	mapping, ok := s.mapColumns(t)
	if !ok {
		return nil, fmt.Errorf("table header does not map to known columns")
	}

	result := &extract.Result{}
	for i, row := range s.body(t) {
		if isBlankRow(row) {
			continue
		}

		fields := transform.RowFields{
			Date:        cellAt(row, mapping.date),
			Description: cellAt(row, mapping.desc),
		}
		if mapping.debit >= 0 || mapping.credit >= 0 {
			fields.Debit = cellAt(row, mapping.debit)
			fields.Credit = cellAt(row, mapping.credit)
		} else {
			fields.Amount = cellAt(row, mapping.amount)
		}

		txn, err := s.converter.Convert(fields, &result.Stats)
		if err != nil {
			result.Stats.RecordRejected(fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		result.Stats.RecordAccepted()
		result.Transactions = append(result.Transactions, *txn)
	}

	return result, nil
}

// mapColumns resolves the header row to a column mapping. When the table
// carries no header flag, the first row is probed as a candidate.
func (s *Strategy) mapColumns(t *domain.Table) (columnMapping, bool) {
	header := t.Header()
	if header == nil && len(t.Rows) > 0 {
		header = t.Rows[0]
	}
	if header == nil {
		return columnMapping{}, false
	}

	mapping := columnMapping{date: -1, desc: -1, debit: -1, credit: -1, amount: -1}
	for i, cell := range header {
		name := normalizeHeader(cell)
		if name == "" {
			continue
		}
		switch {
		case mapping.date < 0 && matches(name, dateExact, dateCores):
			mapping.date = i
		case mapping.desc < 0 && matches(name, descExact, descCores):
			mapping.desc = i
		case mapping.debit < 0 && matches(name, debitExact, debitCores):
			mapping.debit = i
		case mapping.credit < 0 && matches(name, creditExact, creditCores):
			mapping.credit = i
		case mapping.amount < 0 && matches(name, amountExact, amountCores):
			mapping.amount = i
		}
	}

	return mapping, mapping.complete()
}

// body returns the rows to scan: everything after the row used as header.
func (s *Strategy) body(t *domain.Table) [][]string {
	if t.Header() != nil {
		return t.Body()
	}
	if len(t.Rows) > 0 {
		return t.Rows[1:]
	}
	return nil
}

func normalizeHeader(cell string) string {
	return strings.Join(strings.Fields(strings.ToLower(cell)), " ")
}

func matches(name string, exact, cores []string) bool {
	for _, e := range exact {
		if name == e {
			return true
		}
	}
	for _, c := range cores {
		if strings.Contains(name, c) {
			return true
		}
	}
	return false
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
