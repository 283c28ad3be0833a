// Package transform converts candidate row fields into validated domain
// transactions, threading per-request statistics through the call chain.
package transform

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/praneeth-alaghari/web-apps/statement-analyzer/internal/domain"
	"github.com/praneeth-alaghari/web-apps/statement-analyzer/internal/normalize"
	"github.com/praneeth-alaghari/web-apps/statement-analyzer/internal/rules"
)

// RowFields holds the raw cells a strategy located for one candidate row.
// Either Debit/Credit (split columns) or Amount (single column) is set;
// strategies never populate both forms for the same row.
type RowFields struct {
	Date        string
	Description string
	Debit       string
	Credit      string
	Amount      string
}

// Converter applies the normalizers and the categorizer to candidate rows.
// Configured once per request; holds no mutable state of its own.
type Converter struct {
	locale normalize.Locale
	engine *rules.Engine
}

// NewConverter creates a converter for the given locale and rules engine.
func NewConverter(locale normalize.Locale, engine *rules.Engine) (*Converter, error) {
	if engine == nil {
		return nil, fmt.Errorf("rules engine cannot be nil")
	}
	if _, err := normalize.ParseLocale(string(locale)); err != nil {
		return nil, err
	}
	return &Converter{locale: locale, engine: engine}, nil
}

// Locale returns the configured date locale.
func (c *Converter) Locale() normalize.Locale { return c.locale }

// Convert turns located row fields into a validated Transaction. Any
// failure means the whole row is dropped by the caller: partial records
// must never reach the transaction list with placeholder values.
//
// Sign normalization: a cell from a debit column is an outflow regardless
// of its own sign; a credit column cell is an inflow. A single amount
// column without an explicit sign marker follows the original export
// convention where positive means spend, so unsigned values become debits.
func (c *Converter) Convert(fields RowFields, stats *Stats) (*domain.Transaction, error) {
	date, err := normalize.Date(fields.Date, c.locale)
	if err != nil {
		return nil, fmt.Errorf("date %q: %w", fields.Date, err)
	}

	description := cleanDescription(fields.Description)
	if description == "" {
		return nil, fmt.Errorf("row has no description")
	}

	amount, err := c.resolveAmount(fields)
	if err != nil {
		return nil, err
	}

	category := domain.CategoryOther
	if result, ok := c.engine.Match(description); ok {
		category = result.Category
		stats.RulesMatched++
	} else {
		stats.RulesUnmatched++
	}

	return domain.NewTransaction(date, description, amount, category)
}

func (c *Converter) resolveAmount(fields RowFields) (decimal.Decimal, error) {
	hasDebit := strings.TrimSpace(fields.Debit) != ""
	hasCredit := strings.TrimSpace(fields.Credit) != ""

	if hasDebit || hasCredit {
		var debit, credit decimal.Decimal
		if hasDebit {
			v, _, err := normalize.Amount(fields.Debit)
			if err != nil {
				return decimal.Zero, fmt.Errorf("debit %q: %w", fields.Debit, err)
			}
			debit = v.Abs()
		}
		if hasCredit {
			v, _, err := normalize.Amount(fields.Credit)
			if err != nil {
				return decimal.Zero, fmt.Errorf("credit %q: %w", fields.Credit, err)
			}
			credit = v.Abs()
		}
		// A row carrying both (rare, usually a reversal pair) nets out.
		return credit.Sub(debit), nil
	}

	if strings.TrimSpace(fields.Amount) == "" {
		return decimal.Zero, fmt.Errorf("row has no amount")
	}

	v, signed, err := normalize.Amount(fields.Amount)
	if err != nil {
		return decimal.Zero, fmt.Errorf("amount %q: %w", fields.Amount, err)
	}
	if signed {
		return v, nil
	}
	// Unsigned single-column amount: positive means spend.
	return v.Neg(), nil
}

// cleanDescription trims and collapses internal whitespace.
func cleanDescription(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
