// Package messy extracts transactions from tables with no reliable
// header, using content-shape heuristics to locate columns positionally.
package messy

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/praneeth-alaghari/web-apps/statement-analyzer/internal/domain"
	"github.com/praneeth-alaghari/web-apps/statement-analyzer/internal/extract"
	"github.com/praneeth-alaghari/web-apps/statement-analyzer/internal/normalize"
	"github.com/praneeth-alaghari/web-apps/statement-analyzer/internal/transform"
)

// Strategy implements positional extraction. Stateless; per-request
// accumulation lives in the Result.
type Strategy struct {
	converter *transform.Converter
}

// New creates the messy-layout strategy around a shared row converter.
func New(converter *transform.Converter) *Strategy {
	return &Strategy{converter: converter}
}

// Name returns the strategy identifier
func (s *Strategy) Name() string {
	return "messy"
}

// CanExtract reports whether at least one row carries both a date-like
// and an amount-like cell, the minimum shape the positional scan needs.
func (s *Strategy) CanExtract(t *domain.Table) bool {
	for _, row := range t.Rows {
		if hasDateCell(row) && hasAmountCell(row) {
			return true
		}
	}
	return false
}

// columnVotes tallies, per column index, how many rows look date-like or
// amount-like at that position. Rows from all pages are already
// concatenated before this runs; rows split across a page boundary stay
// two independent rows and simply fail the shape checks (surfaced via
// rejection counts, never stitched).
type columnVotes struct {
	date   map[int]int
	amount map[int]int
}

// Extract scans every row positionally. Column positions are voted on
// across the whole table first so that one noisy row cannot shift the
// layout, then each row is read through the voted positions with a
// per-row fallback for ragged rows.
func (s *Strategy) Extract(ctx context.Context, t *domain.Table) (*extract.Result, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	votes := voteColumns(t.Rows)
	dateCol := votes.dateColumn()
	amountCols := votes.amountColumns(t.Rows, dateCol)

	result := &extract.Result{}
	for i, row := range t.Rows {
		if isBlankRow(row) {
			continue
		}

		fields, ok := s.locateFields(row, dateCol, amountCols)
		if !ok {
			// Headers, page footers, and running-balance-only lines land
			// here: noise, not data.
			result.Stats.RecordRejected(fmt.Sprintf("row %d: no date-like and amount-like cells: %s", i+1, previewRow(row)))
			continue
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

// locateFields picks the date cell, amount cell(s), and description for
// one row. Voted columns are preferred; if the voted position does not
// hold the expected shape in this row (ragged page extraction), the row
// is rescanned for any cell of the right shape.
func (s *Strategy) locateFields(row []string, dateCol int, amountCols []int) (transform.RowFields, bool) {
	dateIdx := -1
	if dateCol >= 0 && dateCol < len(row) && normalize.LooksLikeDate(row[dateCol]) {
		dateIdx = dateCol
	} else {
		for i, cell := range row {
			if normalize.LooksLikeDate(cell) {
				dateIdx = i
				break
			}
		}
	}
	if dateIdx < 0 {
		return transform.RowFields{}, false
	}

	used := map[int]bool{dateIdx: true}
	fields := transform.RowFields{Date: row[dateIdx]}
	assigned := false

	// Two voted columns mean a debit/credit split: direction comes from
	// which column holds the value. A cell carrying its own Dr/Cr marker
	// is excluded here so the marker wins over column position.
	if len(amountCols) == 2 {
		d, c := amountCols[0], amountCols[1]
		var debit, credit string
		if !used[d] && d < len(row) && normalize.LooksLikeAmount(row[d]) && !selfSigned(row[d]) {
			debit = row[d]
			used[d] = true
		}
		if !used[c] && c < len(row) && normalize.LooksLikeAmount(row[c]) && !selfSigned(row[c]) {
			credit = row[c]
			used[c] = true
		}
		if debit != "" || credit != "" {
			fields.Debit, fields.Credit = debit, credit
			assigned = true
		}
	}

	if !assigned {
		amountIdx := -1
		for _, col := range amountCols {
			if !used[col] && col < len(row) && normalize.LooksLikeAmount(row[col]) {
				amountIdx = col
				break
			}
		}
		if amountIdx < 0 {
			for i, cell := range row {
				if !used[i] && normalize.LooksLikeAmount(cell) {
					amountIdx = i
					break
				}
			}
		}
		if amountIdx < 0 {
			return transform.RowFields{}, false
		}
		fields.Amount = row[amountIdx]
		used[amountIdx] = true
	}

	// Remaining non-empty cells form the description.
	var descParts []string
	for i, cell := range row {
		if used[i] {
			continue
		}
		if strings.TrimSpace(cell) == "" {
			continue
		}
		// Leftover amount-shaped cells are usually running balances,
		// not narrative.
		if normalize.LooksLikeAmount(cell) {
			continue
		}
		descParts = append(descParts, strings.TrimSpace(cell))
	}
	fields.Description = strings.Join(descParts, " ")

	return fields, true
}

func voteColumns(rows [][]string) columnVotes {
	votes := columnVotes{date: make(map[int]int), amount: make(map[int]int)}
	for _, row := range rows {
		for i, cell := range row {
			switch {
			case normalize.LooksLikeDate(cell):
				votes.date[i]++
			case normalize.LooksLikeAmount(cell):
				votes.amount[i]++
			}
		}
	}
	return votes
}

// dateColumn returns the column with the most date-shaped cells, or -1.
// Ties go to the leftmost column for determinism.
func (v columnVotes) dateColumn() int {
	best, bestCount := -1, 0
	for col, count := range v.date {
		if count > bestCount || (count == bestCount && best >= 0 && col < best) {
			best, bestCount = col, count
		}
	}
	return best
}

// amountColumns returns up to two amount columns ordered left to right,
// excluding the date column. Running-balance columns are recognized and
// dropped: a balance always appears alongside a real amount in the same
// row, while debit and credit columns are mutually exclusive per row.
func (v columnVotes) amountColumns(rows [][]string, dateCol int) []int {
	var cols []int
	for col, count := range v.amount {
		if col == dateCol || count == 0 {
			continue
		}
		cols = append(cols, col)
	}
	sort.Ints(cols)

	for len(cols) > 1 {
		rightmost := cols[len(cols)-1]
		rest := cols[:len(cols)-1]
		appears, coexists := 0, 0
		for _, row := range rows {
			if rightmost >= len(row) || !normalize.LooksLikeAmount(row[rightmost]) {
				continue
			}
			appears++
			for _, c := range rest {
				if c < len(row) && normalize.LooksLikeAmount(row[c]) {
					coexists++
					break
				}
			}
		}
		if appears == 0 || coexists != appears {
			break
		}
		cols = rest
	}

	if len(cols) > 2 {
		cols = cols[:2]
	}
	return cols
}

// selfSigned reports whether the cell encodes its own direction, via a
// leading sign, parentheses, or a Dr/Cr marker.
func selfSigned(cell string) bool {
	_, signed, err := normalize.Amount(cell)
	return err == nil && signed
}

func hasDateCell(row []string) bool {
	for _, cell := range row {
		if normalize.LooksLikeDate(cell) {
			return true
		}
	}
	return false
}

func hasAmountCell(row []string) bool {
	for _, cell := range row {
		if normalize.LooksLikeAmount(cell) {
			return true
		}
	}
	return false
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func previewRow(row []string) string {
	joined := strings.Join(row, " | ")
	if len(joined) > 60 {
		joined = joined[:60] + "…"
	}
	return joined
}
