// reportgen builds the profit-and-loss workbook from a marketplace
// settlement statement and a supplier price catalog.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"wbprofit/internal/config"
	"wbprofit/internal/exporter"
	"wbprofit/internal/infrastructure"
	"wbprofit/internal/ingest"
	"wbprofit/internal/reconcile"
	"wbprofit/pkg/contracts/domain"
)

func main() {
	statementPath := flag.String("statement", "", "path to the settlement statement .xlsx (required)")
	catalogPath := flag.String("catalog", "", "path to the supplier price catalog .csv (required)")
	outDir := flag.String("out", "", "output directory for the report workbook (defaults to the configured output dir)")
	flag.Parse()

	if *statementPath == "" || *catalogPath == "" {
		fmt.Fprintln(os.Stderr, "both -statement and -catalog are required")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	logger = logger.With(slog.String("run_id", uuid.NewString()))

	if *outDir == "" {
		*outDir = cfg.Output.Dir
	}

	ctx := context.Background()
	logger.InfoContext(ctx, "starting profit report generation",
		slog.String("statement", *statementPath),
		slog.String("catalog", *catalogPath),
		slog.String("output_dir", *outDir))

	statement, catalog, err := loadInputs(ctx, logger, *statementPath, *catalogPath)
	if err != nil {
		logger.ErrorContext(ctx, "failed to load inputs", slog.String("error", err.Error()))
		os.Exit(1)
	}

	engine := reconcile.NewEngine(logger, cfg.ReconcileConfig())
	result, err := engine.Run(ctx, statement, catalog)
	if err != nil {
		logger.ErrorContext(ctx, "reconciliation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	outPath, err := writeReport(*outDir, result)
	if err != nil {
		logger.ErrorContext(ctx, "failed to write report", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.InfoContext(ctx, "profit report written",
		slog.String("path", outPath),
		slog.Int("rows", len(result.Rows)),
		slog.Float64("total_profit", result.Summary.TotalProfit),
		slog.Float64("average_margin", result.Summary.AverageMargin),
		slog.Float64("partner_share", result.Summary.PartnerShare))
}

// loadInputs reads the statement and the catalog concurrently. An unusable
// catalog is downgraded to a warning: a report with zero resolved purchase
// prices is still useful for revenue and logistics analysis.
func loadInputs(ctx context.Context, logger *slog.Logger, statementPath, catalogPath string) (domain.Statement, domain.PriceCatalog, error) {
	var (
		statement domain.Statement
		catalog   domain.PriceCatalog
	)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		statement, err = ingest.ParseStatement(statementPath, logger)
		return err
	})
	g.Go(func() error {
		var err error
		catalog, err = ingest.LoadPriceCatalog(catalogPath, logger)
		if errors.Is(err, ingest.ErrPriceCatalogUnusable) {
			logger.WarnContext(ctx, "price catalog unusable, all purchase prices will resolve to zero",
				slog.String("path", catalogPath))
			catalog = domain.PriceCatalog{}
			return nil
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.Statement{}, nil, err
	}
	return statement, catalog, nil
}

func writeReport(outDir string, result *reconcile.Result) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	name := fmt.Sprintf("wb_profit_%s.xlsx", time.Now().Format("20060102_150405"))
	outPath := filepath.Join(outDir, name)
	if err := exporter.WriteWorkbook(outPath, result.Rows, result.Summary); err != nil {
		return "", err
	}

	// Keep a stable alias to the most recent report for downstream pickup.
	data, err := os.ReadFile(outPath)
	if err != nil {
		return "", fmt.Errorf("read report back for alias: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outDir, "latest.xlsx"), data, 0o644); err != nil {
		return "", fmt.Errorf("write latest alias: %w", err)
	}
	return outPath, nil
}
