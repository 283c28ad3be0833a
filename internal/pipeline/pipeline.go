// Package pipeline orchestrates a full analysis run: decode the input,
// dispatch extraction, validate the result, and aggregate the summary.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/praneeth-alaghari/web-apps/statement-analyzer/internal/decode"
	"github.com/praneeth-alaghari/web-apps/statement-analyzer/internal/dedup"
	"github.com/praneeth-alaghari/web-apps/statement-analyzer/internal/domain"
	"github.com/praneeth-alaghari/web-apps/statement-analyzer/internal/metrics"
	"github.com/praneeth-alaghari/web-apps/statement-analyzer/internal/registry"
	"github.com/praneeth-alaghari/web-apps/statement-analyzer/internal/summary"
	"github.com/praneeth-alaghari/web-apps/statement-analyzer/internal/validate"
)

// Report is the full result of analyzing one statement file.
type Report struct {
	FileName  string             `json:"fileName,omitempty"`
	Statement *domain.Statement  `json:"statement"`
	Summary   *summary.Summary   `json:"summary"`
	Warnings  []string           `json:"warnings,omitempty"`
}

// Options tunes a pipeline. Zero values fall back to sane defaults.
type Options struct {
	// TopMerchants caps the merchant breakdown in the summary.
	TopMerchants int
	// MaxPages bounds paginated document inputs.
	MaxPages int
	// Extractor supplies per-page tables for document inputs. Leaving
	// it nil makes document formats unsupported.
	Extractor decode.DocumentExtractor
}

// Pipeline wires decoding, dispatch, validation, and aggregation.
type Pipeline struct {
	registry *registry.Registry
	opts     Options
}

// New creates a pipeline around an already-built registry.
func New(reg *registry.Registry, opts Options) *Pipeline {
	return &Pipeline{registry: reg, opts: opts}
}

// NewDefault builds a pipeline with the default registry (embedded
// rules, day-first dates).
func NewDefault(opts Options) (*Pipeline, error) {
	reg, err := registry.NewDefault()
	if err != nil {
		return nil, err
	}
	return New(reg, opts), nil
}

// AnalyzeFile opens and analyzes a file on disk.
func (p *Pipeline) AnalyzeFile(ctx context.Context, path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	return p.Analyze(ctx, path, f)
}

// Analyze decodes the named input and runs the table through extraction
// and aggregation. The filename only drives format detection; content
// comes from r.
func (p *Pipeline) Analyze(ctx context.Context, filename string, r io.Reader) (*Report, error) {
	format, err := decode.Detect(filename)
	if err != nil {
		return nil, err
	}

	var table *domain.Table
	switch format {
	case decode.FormatCSV:
		table, err = decode.FromCSV(r)
	case decode.FormatDocument:
		if p.opts.Extractor == nil {
			err = fmt.Errorf("%w: no document extractor configured", decode.ErrUnsupportedFormat)
		} else {
			table, err = decode.FromPages(ctx, p.opts.Extractor, r, p.opts.MaxPages)
		}
	default:
		err = decode.ErrUnsupportedFormat
	}
	if err != nil {
		return nil, err
	}

	report, err := p.AnalyzeTable(ctx, table)
	if err != nil {
		return nil, err
	}
	report.FileName = filename
	return report, nil
}

// AnalyzeTable runs an already-decoded table through the pipeline.
func (p *Pipeline) AnalyzeTable(ctx context.Context, table *domain.Table) (*Report, error) {
	start := time.Now()

	stmt, err := p.registry.Dispatch(ctx, table)
	if err != nil {
		metrics.StatementsAnalyzed.WithLabelValues("none", "error").Inc()
		return nil, err
	}

	metrics.StatementsAnalyzed.WithLabelValues(stmt.Provenance.Strategy, "ok").Inc()
	metrics.RowsRejected.Add(float64(stmt.Provenance.RowsRejected))
	metrics.AnalyzeDuration.Observe(time.Since(start).Seconds())

	result := validate.ValidateStatement(stmt)
	if !result.IsValid() {
		// Dispatch constructs statements through validating factories,
		// so an invalid one here is a bug, not bad input.
		return nil, fmt.Errorf("internal inconsistency: %s", result.Errors[0].Message)
	}

	report := &Report{
		Statement: stmt,
		Summary:   summary.Build(stmt.Transactions, p.opts.TopMerchants),
	}
	for _, w := range result.Warnings {
		report.Warnings = append(report.Warnings, w.Message)
	}
	for _, d := range dedup.FindDuplicates(stmt.Transactions) {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("possible duplicate: %q repeats an earlier transaction", d.Description))
	}
	return report, nil
}
