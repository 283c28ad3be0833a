// Package extract defines the strategy interface shared by the table
// extraction algorithms and the failure taxonomy the dispatcher reports.
package extract

import (
	"context"
	"errors"

	"github.com/praneeth-alaghari/web-apps/statement-analyzer/internal/domain"
	"github.com/praneeth-alaghari/web-apps/statement-analyzer/internal/transform"
)

// Structural failures. Both are distinct outcomes, never folded into an
// empty-but-successful statement: the caller must be able to tell "could
// not parse this statement" apart from "no spending".
var (
	// ErrNoStrategy indicates no extraction strategy recognized the
	// table's shape.
	ErrNoStrategy = errors.New("no extraction strategy applies to this table")

	// ErrNoTransactions indicates a strategy ran but every row was
	// rejected.
	ErrNoTransactions = errors.New("no valid transactions extracted")
)

// Strategy is the interface for all table extraction algorithms.
type Strategy interface {
	// Name returns the strategy identifier (e.g., "tabular", "messy")
	Name() string

	// CanExtract checks if this strategy can handle the table.
	// The dispatcher calls strategies in a fixed order and commits to
	// the first that returns true; there is no fallback after that.
	CanExtract(t *domain.Table) bool

	// Extract produces transactions and row bookkeeping from the table
	Extract(ctx context.Context, t *domain.Table) (*Result, error)
}

// Result is a strategy's output: the accepted transactions plus the
// per-request stats accumulated while scanning.
type Result struct {
	Transactions []domain.Transaction
	Stats        transform.Stats
}
