// Package registry dispatches tables to extraction strategies in
// priority order.
package registry

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/praneeth-alaghari/web-apps/statement-analyzer/internal/domain"
	"github.com/praneeth-alaghari/web-apps/statement-analyzer/internal/extract"
	"github.com/praneeth-alaghari/web-apps/statement-analyzer/internal/normalize"
	"github.com/praneeth-alaghari/web-apps/statement-analyzer/internal/rules"
	"github.com/praneeth-alaghari/web-apps/statement-analyzer/internal/strategies/messy"
	"github.com/praneeth-alaghari/web-apps/statement-analyzer/internal/strategies/tabular"
	"github.com/praneeth-alaghari/web-apps/statement-analyzer/internal/transform"
)

// Registry holds extraction strategies in trial order. The tabular
// strategy is always probed before the messy one, so a table with a
// recognizable header never falls through to positional guessing.
type Registry struct {
	strategies []extract.Strategy
}

// New creates a registry with both built-in strategies sharing one
// converter.
func New(converter *transform.Converter) *Registry {
	return &Registry{
		strategies: []extract.Strategy{
			tabular.New(converter),
			messy.New(converter),
		},
	}
}

// NewDefault builds a registry with the embedded rules and day-first
// dates, the common case for the statements this tool sees.
func NewDefault() (*Registry, error) {
	engine, err := rules.LoadEmbedded()
	if err != nil {
		return nil, fmt.Errorf("failed to load embedded rules: %w", err)
	}
	converter, err := transform.NewConverter(normalize.LocaleDayFirst, engine)
	if err != nil {
		return nil, err
	}
	return New(converter), nil
}

// Register adds a custom strategy after the built-ins.
func (r *Registry) Register(s extract.Strategy) {
	r.strategies = append(r.strategies, s)
}

// FindStrategy returns the first strategy that recognizes the table.
func (r *Registry) FindStrategy(t *domain.Table) (extract.Strategy, error) {
	for _, s := range r.strategies {
		if s.CanExtract(t) {
			return s, nil
		}
	}
	return nil, extract.ErrNoStrategy
}

// Dispatch selects a strategy, runs it, and assembles the statement
// with its provenance. A structurally recognized table whose every row
// fails normalization yields ErrNoTransactions, distinct from
// ErrNoStrategy so callers can report the two failures differently.
func (r *Registry) Dispatch(ctx context.Context, t *domain.Table) (*domain.Statement, error) {
	strategy, err := r.FindStrategy(t)
	if err != nil {
		return nil, err
	}

	result, err := strategy.Extract(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("strategy %s: %w", strategy.Name(), err)
	}
	if len(result.Transactions) == 0 {
		return nil, fmt.Errorf("strategy %s: %w", strategy.Name(), extract.ErrNoTransactions)
	}

	prov := domain.Provenance{
		Strategy:     strategy.Name(),
		RowsSeen:     result.Stats.RowsSeen,
		RowsAccepted: result.Stats.RowsAccepted,
		RowsRejected: result.Stats.RowsRejected,
	}
	return domain.NewStatement(uuid.New().String(), result.Transactions, prov)
}

// ListStrategies returns the names of registered strategies in trial
// order.
func (r *Registry) ListStrategies() []string {
	names := make([]string, len(r.strategies))
	for i, s := range r.strategies {
		names[i] = s.Name()
	}
	return names
}
