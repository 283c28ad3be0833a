// Package metrics exposes Prometheus instrumentation for the analyzer.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StatementsAnalyzed counts analysis requests by strategy and
	// outcome ("ok" or "error"; the strategy label is "none" when no
	// strategy claimed the table).
	StatementsAnalyzed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "statement_analyzer_statements_total",
		Help: "Statements analyzed, by extraction strategy and outcome.",
	}, []string{"strategy", "outcome"})

	// RowsRejected counts rows dropped during extraction.
	RowsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "statement_analyzer_rows_rejected_total",
		Help: "Rows dropped during extraction across all statements.",
	})

	// AnalyzeDuration observes end-to-end analysis latency.
	AnalyzeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "statement_analyzer_analyze_duration_seconds",
		Help:    "End-to-end statement analysis duration.",
		Buckets: prometheus.DefBuckets,
	})
)
