package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/praneeth-alaghari/web-apps/statement-analyzer/internal/config"
	"github.com/praneeth-alaghari/web-apps/statement-analyzer/internal/normalize"
	"github.com/praneeth-alaghari/web-apps/statement-analyzer/internal/output"
	"github.com/praneeth-alaghari/web-apps/statement-analyzer/internal/pipeline"
	"github.com/praneeth-alaghari/web-apps/statement-analyzer/internal/registry"
	"github.com/praneeth-alaghari/web-apps/statement-analyzer/internal/rules"
	"github.com/praneeth-alaghari/web-apps/statement-analyzer/internal/scanner"
	"github.com/praneeth-alaghari/web-apps/statement-analyzer/internal/server"
	"github.com/praneeth-alaghari/web-apps/statement-analyzer/internal/transform"
	"github.com/praneeth-alaghari/web-apps/statement-analyzer/internal/ui"
)

const (
	version = "0.1.0"
)

var (
	// Global flags
	versionFlag = flag.Bool("version", false, "Show version")

	// Core CLI flags
	inputFile  = flag.String("input", "", "Statement file to analyze (CSV)")
	inputDir   = flag.String("input-dir", "", "Analyze every statement file under a directory")
	outputFile = flag.String("output", "", "Output JSON file (default: stdout)")
	verbose    = flag.Bool("verbose", false, "Show detailed analysis logs")

	// Behavior flags
	rulesFile    = flag.String("rules", "", "Category rules file (default: built-in rules)")
	localeFlag   = flag.String("locale", "", "Date locale: day-first or month-first")
	topMerchants = flag.Int("top", 0, "Number of top merchants in the summary")
	configFile   = flag.String("config", "", "YAML config file")

	// Server flags
	serveMode  = flag.Bool("serve", false, "Run the HTTP API server instead of analyzing a file")
	listenAddr = flag.String("addr", "", "HTTP listen address for serve mode")
)

func main() {
	// Custom usage message
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `statement-analyzer - Bank statement analysis tool

Usage:
  statement-analyzer [flags]

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprint(os.Stderr, `
Examples:
  # Analyze a statement to stdout
  statement-analyzer -input statement.csv

  # Analyze with custom rules and month-first dates
  statement-analyzer -input statement.csv -rules rules.yaml -locale month-first

  # Analyze every statement under a directory
  statement-analyzer -input-dir ~/statements

  # Run the HTTP API
  statement-analyzer -serve -addr :8080

`)
	}

	flag.Parse()

	// Handle version flag
	if *versionFlag {
		fmt.Printf("statement-analyzer version %s\n", version)
		os.Exit(0)
	}

	if !*serveMode && *inputFile == "" && *inputDir == "" {
		fmt.Fprintf(os.Stderr, "Error: -input or -input-dir flag is required (or use -serve)\n\n")
		flag.Usage()
		os.Exit(1)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig layers flags over the config file over defaults.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if *configFile != "" {
		loaded, err := config.Load(*configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if *localeFlag != "" {
		cfg.Locale = *localeFlag
	}
	if *topMerchants > 0 {
		cfg.TopMerchants = *topMerchants
	}
	if *rulesFile != "" {
		cfg.RulesFile = *rulesFile
	}
	if *listenAddr != "" {
		cfg.ListenAddr = *listenAddr
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func buildPipeline(cfg *config.Config) (*pipeline.Pipeline, error) {
	var engine *rules.Engine
	var err error
	if cfg.RulesFile != "" {
		engine, err = rules.LoadFromFile(cfg.RulesFile)
	} else {
		engine, err = rules.LoadEmbedded()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load rules: %w", err)
	}

	locale, err := normalize.ParseLocale(cfg.Locale)
	if err != nil {
		return nil, err
	}
	converter, err := transform.NewConverter(locale, engine)
	if err != nil {
		return nil, err
	}

	return pipeline.New(registry.New(converter), pipeline.Options{
		TopMerchants: cfg.TopMerchants,
		MaxPages:     cfg.MaxPages,
	}), nil
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	p, err := buildPipeline(cfg)
	if err != nil {
		return err
	}

	if *serveMode {
		fmt.Fprintf(os.Stderr, "Listening on %s\n", cfg.ListenAddr)
		return server.New(cfg, p).ListenAndServe()
	}

	ctx := context.Background()

	if *inputDir != "" {
		return runBatch(ctx, p)
	}

	if !*verbose {
		ui.Header("Analyzing Bank Statement")
		ui.Step(1, 3, "Reading statement")
	} else {
		fmt.Fprintf(os.Stderr, "Reading statement: %s\n", *inputFile)
	}

	report, err := p.AnalyzeFile(ctx, *inputFile)
	if err != nil {
		return fmt.Errorf("failed to analyze %s: %w", *inputFile, err)
	}

	if !*verbose {
		ui.Step(2, 3, "Extracting transactions")
		ui.Success(fmt.Sprintf("Extracted %d transactions via %s strategy",
			len(report.Statement.Transactions), report.Statement.Provenance.Strategy))
		if report.Statement.Provenance.RowsRejected > 0 {
			ui.Warning(fmt.Sprintf("%d rows could not be read", report.Statement.Provenance.RowsRejected))
		}
		for _, w := range report.Warnings {
			ui.Warning(w)
		}
		ui.Step(3, 3, "Writing report")
	} else {
		fmt.Fprintf(os.Stderr, "Strategy: %s, accepted %d of %d rows\n",
			report.Statement.Provenance.Strategy,
			report.Statement.Provenance.RowsAccepted,
			report.Statement.Provenance.RowsSeen)
	}

	if err := output.WriteReportToFile(report, output.WriteOptions{FilePath: *outputFile}); err != nil {
		return err
	}

	if !*verbose && *outputFile != "" {
		ui.Success(fmt.Sprintf("Report written to %s", *outputFile))
	}
	return nil
}

// runBatch analyzes every supported file under -input-dir. Per-file
// failures are reported and skipped so one bad statement does not sink
// the run.
func runBatch(ctx context.Context, p *pipeline.Pipeline) error {
	files, err := scanner.New(*inputDir).Scan()
	if err != nil {
		return fmt.Errorf("failed to scan directory %s: %w", *inputDir, err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no statement files found in %s", *inputDir)
	}

	ui.Header("Analyzing Bank Statements")
	ui.Info(fmt.Sprintf("Found %d statement files", len(files)))

	failed := 0
	for i, f := range files {
		ui.Step(i+1, len(files), f.Path)

		report, err := p.AnalyzeFile(ctx, f.Path)
		if err != nil {
			ui.Error(fmt.Sprintf("%s: %v", f.Path, err))
			failed++
			continue
		}

		target := ""
		if *outputFile != "" {
			// In batch mode -output names a directory.
			target = filepath.Join(*outputFile, strings.TrimSuffix(filepath.Base(f.Path), filepath.Ext(f.Path))+".json")
		}
		if err := output.WriteReportToFile(report, output.WriteOptions{FilePath: target}); err != nil {
			return err
		}
		ui.Success(fmt.Sprintf("Extracted %d transactions via %s strategy",
			len(report.Statement.Transactions), report.Statement.Provenance.Strategy))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(files))
	}
	return nil
}
