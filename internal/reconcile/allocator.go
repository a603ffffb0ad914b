package reconcile

import (
	"math"
	"sort"
)

// epsilon is the absolute tolerance below which an unattributed remainder is
// treated as floating-point noise and clamped to exactly zero.
const epsilon = 1e-6

// AllocationTotals are the per-article aggregates derived once from the
// classified statement and read-only afterwards.
type AllocationTotals struct {
	QuantitySold  map[string]int64
	LogisticsCost map[string]float64
	PenaltyCost   map[string]float64

	LogisticsGrandTotal float64
	PenaltyGrandTotal   float64
	StorageGrandTotal   float64
}

// CategoryAllocation is the result of distributing one shared-cost category
// across sale quantities. PerUnit only contains articles that had matching
// sales; everything else ends up in Unattributed.
type CategoryAllocation struct {
	PerUnit      map[string]float64
	MatchedTotal float64
	Unattributed float64
}

func computeAllocationTotals(rows *classifiedRows) AllocationTotals {
	totals := AllocationTotals{
		QuantitySold:  make(map[string]int64),
		LogisticsCost: make(map[string]float64),
		PenaltyCost:   make(map[string]float64),
	}
	for _, row := range rows.Sales {
		totals.QuantitySold[row.SupplierArticle] += row.Quantity
	}
	for _, row := range rows.Logistics {
		totals.LogisticsCost[row.SupplierArticle] += row.LogisticsCost
		totals.LogisticsGrandTotal += row.LogisticsCost
	}
	for _, row := range rows.Penalties {
		totals.PenaltyCost[row.SupplierArticle] += row.PenaltyCost
		totals.PenaltyGrandTotal += row.PenaltyCost
	}
	// Storage is never attributable to individual articles; the grand total
	// surfaces as a single adjustment.
	for _, row := range rows.Storage {
		totals.StorageGrandTotal += row.StorageCost
	}
	if math.Abs(totals.StorageGrandTotal) < epsilon {
		totals.StorageGrandTotal = 0
	}
	return totals
}

// allocateCategory turns article-scoped category totals into per-unit rates.
// An article with no sold quantity keeps its whole total in the unattributed
// remainder. Summing per_unit * quantity across an allocated article
// reproduces that article's total, since the quotient uses the same quantity
// as denominator.
func allocateCategory(costByArticle map[string]float64, quantityByArticle map[string]int64, grandTotal float64) CategoryAllocation {
	alloc := CategoryAllocation{PerUnit: make(map[string]float64)}

	// Sorted iteration keeps the matched-total summation order stable, so
	// identical inputs produce bit-identical output.
	articles := make([]string, 0, len(costByArticle))
	for article := range costByArticle {
		articles = append(articles, article)
	}
	sort.Strings(articles)

	for _, article := range articles {
		total := costByArticle[article]
		if qty := quantityByArticle[article]; qty > 0 {
			alloc.PerUnit[article] = total / float64(qty)
			alloc.MatchedTotal += total
		}
	}

	alloc.Unattributed = grandTotal - alloc.MatchedTotal
	if math.Abs(alloc.Unattributed) < epsilon {
		alloc.Unattributed = 0
	}
	return alloc
}
