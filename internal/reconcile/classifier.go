package reconcile

import (
	"context"
	"log/slog"
	"sort"

	"wbprofit/pkg/contracts/domain"
)

// classifiedRows holds the statement partitioned by reason code. Rows with
// unrecognized reasons never enter the engine; they stay with the caller's
// original dataset.
type classifiedRows struct {
	Sales     []domain.StatementRow
	Logistics []domain.StatementRow
	Penalties []domain.StatementRow
	Storage   []domain.StatementRow
}

// classify validates the statement schema and partitions its rows into the
// four reason subsets. It fails with MissingColumnsError if any required
// column is absent and with ErrNoSaleRows if the Sale subset is empty.
func classify(ctx context.Context, logger *slog.Logger, stmt domain.Statement) (*classifiedRows, error) {
	var missing []string
	for _, col := range domain.RequiredStatementColumns() {
		if !stmt.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}

	out := &classifiedRows{}
	skipped := make(map[string]int)
	for _, row := range stmt.Rows {
		switch row.Reason {
		case domain.ReasonSale:
			out.Sales = append(out.Sales, row)
		case domain.ReasonLogistics:
			out.Logistics = append(out.Logistics, row)
		case domain.ReasonPenalty:
			out.Penalties = append(out.Penalties, row)
		case domain.ReasonStorage:
			out.Storage = append(out.Storage, row)
		default:
			label := row.RawReason
			if label == "" {
				label = string(row.Reason)
			}
			skipped[label]++
		}
	}

	if len(skipped) > 0 {
		labels := make([]string, 0, len(skipped))
		total := 0
		for label, n := range skipped {
			labels = append(labels, label)
			total += n
		}
		sort.Strings(labels)
		logger.WarnContext(ctx, "statement rows with unrecognized reason codes skipped",
			slog.Int("row_count", total),
			slog.Any("reasons", labels))
	}

	if len(out.Sales) == 0 {
		return nil, ErrNoSaleRows
	}

	logger.DebugContext(ctx, "statement classified",
		slog.Int("sale_rows", len(out.Sales)),
		slog.Int("logistics_rows", len(out.Logistics)),
		slog.Int("penalty_rows", len(out.Penalties)),
		slog.Int("storage_rows", len(out.Storage)))

	return out, nil
}
