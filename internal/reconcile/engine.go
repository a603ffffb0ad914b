package reconcile

import (
	"context"
	"log/slog"

	"wbprofit/pkg/contracts/domain"
)

// Default business constants, used when the caller supplies no override.
const (
	DefaultPackagingCostPerUnit = 45.0
	DefaultPartnerProfitShare   = 0.33
)

// Config carries the named business constants of a reconciliation run. They
// are passed explicitly at call time, never read from global state.
type Config struct {
	// PackagingCostPerUnit is added to the cost basis of every sold unit.
	PackagingCostPerUnit float64
	// PartnerProfitShare is the ratio of total profit reported as the
	// partner's share in the summary.
	PartnerProfitShare float64
}

// DefaultConfig returns the engine configuration with the default business
// constants.
func DefaultConfig() Config {
	return Config{
		PackagingCostPerUnit: DefaultPackagingCostPerUnit,
		PartnerProfitShare:   DefaultPartnerProfitShare,
	}
}

// Engine turns a settlement statement plus a supplier price catalog into a
// per-transaction profit-and-loss table with reconciled totals. It holds no
// state between runs; concurrent runs on different statements are safe.
type Engine struct {
	logger *slog.Logger
	cfg    Config
}

// Result is the full output contract of a run: the ordered output rows
// (profit rows followed by adjustment rows), the summary metrics, and the
// price catalog that was actually consulted (for diagnostics and audit).
type Result struct {
	Rows    []domain.ProfitRow
	Summary domain.SummaryMetrics
	Catalog domain.PriceCatalog
}

// NewEngine creates a reconciliation engine. A nil logger falls back to
// slog.Default().
func NewEngine(logger *slog.Logger, cfg Config) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{logger: logger, cfg: cfg}
}

// Run executes the full pipeline: classify, resolve purchase prices,
// allocate shared costs, compute per-row economics, synthesize
// reconciliation adjustments and aggregate the summary. It is a pure
// function of its inputs and the engine configuration.
func (e *Engine) Run(ctx context.Context, stmt domain.Statement, catalog domain.PriceCatalog) (*Result, error) {
	if catalog == nil {
		catalog = domain.PriceCatalog{}
	}

	classified, err := classify(ctx, e.logger, stmt)
	if err != nil {
		return nil, err
	}

	totals := computeAllocationTotals(classified)
	logistics := allocateCategory(totals.LogisticsCost, totals.QuantitySold, totals.LogisticsGrandTotal)
	penalties := allocateCategory(totals.PenaltyCost, totals.QuantitySold, totals.PenaltyGrandTotal)

	rows := make([]domain.ProfitRow, 0, len(classified.Sales)+3)
	unresolvedPrices := 0
	for _, sale := range classified.Sales {
		row := buildProfitRow(sale, catalog, logistics, penalties, e.cfg.PackagingCostPerUnit)
		if !row.PurchasePriceResolved {
			unresolvedPrices++
		}
		rows = append(rows, row)
	}
	if unresolvedPrices > 0 {
		e.logger.WarnContext(ctx, "sale rows without a catalog purchase price, cost basis excludes purchases",
			slog.Int("row_count", unresolvedPrices),
			slog.Int("catalog_size", len(catalog)))
	}

	rows = append(rows, synthesizeAdjustments(
		logistics.Unattributed,
		penalties.Unattributed,
		totals.StorageGrandTotal,
	)...)

	summary := buildSummary(rows, e.cfg.PartnerProfitShare)

	e.logger.InfoContext(ctx, "reconciliation complete",
		slog.Int("sale_rows", len(classified.Sales)),
		slog.Int("output_rows", len(rows)),
		slog.Float64("total_profit", summary.TotalProfit),
		slog.Float64("unattributed_logistics", logistics.Unattributed),
		slog.Float64("unattributed_penalties", penalties.Unattributed),
		slog.Float64("storage_total", totals.StorageGrandTotal))

	return &Result{Rows: rows, Summary: summary, Catalog: catalog}, nil
}
