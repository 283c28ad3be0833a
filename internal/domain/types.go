package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Category represents the spending category enum.
// Use ValidateCategory to ensure validity before use.
type Category string

const (
	CategoryFood          Category = "food"
	CategoryTransport     Category = "transport"
	CategoryShopping      Category = "shopping"
	CategoryEntertainment Category = "entertainment"
	CategoryBills         Category = "bills"
	CategoryTransfer      Category = "transfer"
	CategoryOther         Category = "other"
)

var validCategories = map[Category]struct{}{
	CategoryFood: {}, CategoryTransport: {}, CategoryShopping: {},
	CategoryEntertainment: {}, CategoryBills: {}, CategoryTransfer: {},
	CategoryOther: {},
}

// ValidateCategory checks if category is valid
func ValidateCategory(c Category) bool {
	_, ok := validCategories[c]
	return ok
}

// Categories returns all valid categories in a fixed display order.
func Categories() []Category {
	return []Category{
		CategoryFood, CategoryTransport, CategoryShopping,
		CategoryEntertainment, CategoryBills, CategoryTransfer,
		CategoryOther,
	}
}

// Table is a decoded statement table: ordered rows of raw string cells,
// independent of the source file format. Blank cells are empty strings.
// HeaderIndex points at the candidate header row, or -1 when the decoder
// detected none. Strategies must verify the candidate actually maps to
// known columns before trusting it.
type Table struct {
	Rows        [][]string
	HeaderIndex int
}

// NewTable creates a table with a candidate header row.
func NewTable(rows [][]string, headerIndex int) (*Table, error) {
	if headerIndex < -1 {
		return nil, fmt.Errorf("header index must be -1 or a row index, got %d", headerIndex)
	}
	if headerIndex >= len(rows) {
		return nil, fmt.Errorf("header index %d out of range for %d rows", headerIndex, len(rows))
	}
	return &Table{Rows: rows, HeaderIndex: headerIndex}, nil
}

// Header returns the candidate header row, or nil when there is none.
func (t *Table) Header() []string {
	if t.HeaderIndex < 0 || t.HeaderIndex >= len(t.Rows) {
		return nil
	}
	return t.Rows[t.HeaderIndex]
}

// Body returns the rows following the candidate header. When no header is
// flagged, every row is body.
func (t *Table) Body() [][]string {
	if t.HeaderIndex < 0 {
		return t.Rows
	}
	return t.Rows[t.HeaderIndex+1:]
}

// Transaction is the core output unit.
//
// Sign convention:
//
//	Negative = debit/outflow (spending)
//	Positive = credit/inflow (deposits, refunds)
//
// Strategies must normalize to this convention regardless of how the
// source table represents direction (split columns, Dr/Cr markers,
// parenthesized negatives).
type Transaction struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Category    Category
}

// NewTransaction creates a validated transaction
func NewTransaction(date time.Time, description string, amount decimal.Decimal, category Category) (*Transaction, error) {
	if date.IsZero() {
		return nil, fmt.Errorf("transaction date cannot be zero")
	}
	if description == "" {
		return nil, fmt.Errorf("description cannot be empty")
	}
	if !ValidateCategory(category) {
		return nil, fmt.Errorf("invalid category: %s", category)
	}
	return &Transaction{
		Date:        date,
		Description: description,
		Amount:      amount,
		Category:    category,
	}, nil
}

// IsDebit reports whether the transaction is an outflow.
func (t *Transaction) IsDebit() bool {
	return t.Amount.IsNegative()
}

// MarshalJSON implements custom JSON marshaling for Transaction.
// Dates are serialized as YYYY-MM-DD (no time component).
func (t Transaction) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Date        string          `json:"date"`
		Description string          `json:"description"`
		Amount      decimal.Decimal `json:"amount"`
		Category    Category        `json:"category"`
	}{
		Date:        t.Date.Format("2006-01-02"),
		Description: t.Description,
		Amount:      t.Amount,
		Category:    t.Category,
	})
}

// UnmarshalJSON implements custom JSON unmarshaling for Transaction
func (t *Transaction) UnmarshalJSON(data []byte) error {
	aux := &struct {
		Date        string          `json:"date"`
		Description string          `json:"description"`
		Amount      decimal.Decimal `json:"amount"`
		Category    Category        `json:"category"`
	}{}
	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}
	date, err := time.Parse("2006-01-02", aux.Date)
	if err != nil {
		return fmt.Errorf("invalid date format: %w", err)
	}
	t.Date = date
	t.Description = aux.Description
	t.Amount = aux.Amount
	t.Category = aux.Category
	return nil
}

// Provenance records how the extraction went: which strategy ran and the
// per-request row bookkeeping. Counters are plain values threaded through
// the call chain, never shared process state, so concurrent uploads stay
// isolated.
type Provenance struct {
	Strategy     string `json:"strategy"`
	RowsSeen     int    `json:"rowsSeen"`
	RowsAccepted int    `json:"rowsAccepted"`
	RowsRejected int    `json:"rowsRejected"`
}

// RejectionRate returns the fraction of seen rows that were rejected.
func (p *Provenance) RejectionRate() float64 {
	if p.RowsSeen == 0 {
		return 0
	}
	return float64(p.RowsRejected) / float64(p.RowsSeen)
}

// Statement is the validated transaction list plus provenance metadata.
// Built fresh per upload and discarded after the response; never persisted.
type Statement struct {
	ID           string        `json:"id"`
	Transactions []Transaction `json:"transactions"`
	Provenance   Provenance    `json:"provenance"`
}

// NewStatement creates a validated statement
func NewStatement(id string, transactions []Transaction, prov Provenance) (*Statement, error) {
	if id == "" {
		return nil, fmt.Errorf("statement ID cannot be empty")
	}
	if prov.Strategy == "" {
		return nil, fmt.Errorf("provenance strategy cannot be empty")
	}
	if prov.RowsAccepted != len(transactions) {
		return nil, fmt.Errorf("provenance mismatch: %d accepted rows but %d transactions",
			prov.RowsAccepted, len(transactions))
	}
	return &Statement{
		ID:           id,
		Transactions: transactions,
		Provenance:   prov,
	}, nil
}

// Period returns the earliest and latest transaction dates.
func (s *Statement) Period() (start, end time.Time) {
	for _, txn := range s.Transactions {
		if start.IsZero() || txn.Date.Before(start) {
			start = txn.Date
		}
		if end.IsZero() || txn.Date.After(end) {
			end = txn.Date
		}
	}
	return start, end
}
