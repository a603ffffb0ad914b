// Package reconcile implements the cost reconciliation and profit
// attribution engine. It turns a marketplace settlement statement plus a
// supplier price catalog into a per-transaction profit-and-loss table whose
// column totals reconcile exactly against the raw statement.
//
// # Pipeline
//
// A run is a single synchronous pass over the inputs:
//
// 1. Classifier: partitions statement rows by reason code
// 2. Resolver: maps each sale row to a unit purchase price
// 3. Allocator: distributes article-scoped logistics and penalty totals
// 4. Profit calculator: computes cost basis, accrued revenue and margins
// 5. Adjustment synthesizer: emits rows for unattributable cost remainders
// 6. Summary aggregator: rolls the output up into headline KPIs
//
// # Usage
//
//	engine := reconcile.NewEngine(logger, reconcile.DefaultConfig())
//	result, err := engine.Run(ctx, statement, catalog)
//	if err != nil {
//	    return err
//	}
//	// result.Rows, result.Summary, result.Catalog
//
// The engine performs no I/O and holds no shared state; concurrent runs on
// different statements are safe.
package reconcile
