package reconcile

import (
	"wbprofit/pkg/contracts/domain"
)

// buildProfitRow computes the unit economics for one sale row. Every
// division by a zero quantity or zero revenue yields 0 by business rule: a
// row without meaningful unit economics must not fail the report.
func buildProfitRow(row domain.StatementRow, catalog domain.PriceCatalog, logistics, penalties CategoryAllocation, packagingCost float64) domain.ProfitRow {
	qty := float64(row.Quantity)

	purchasePrice, resolved := ResolvePurchasePrice(row, catalog)
	logisticsPerUnit := logistics.PerUnit[row.SupplierArticle]
	penaltyPerUnit := penalties.PerUnit[row.SupplierArticle]

	logisticsTotal := logisticsPerUnit * qty
	penaltyTotal := penaltyPerUnit * qty

	packagingPerUnit := 0.0
	if row.Quantity > 0 {
		packagingPerUnit = packagingCost
	}
	packagingTotal := packagingPerUnit * qty

	accrued := row.PayoutAmount - logisticsTotal - penaltyTotal
	accruedPerUnit := 0.0
	if row.Quantity > 0 {
		accruedPerUnit = accrued / qty
	}

	unitCost := purchasePrice + packagingPerUnit
	totalCost := unitCost * qty

	profitTotal := accrued - totalCost
	profitPerUnit := 0.0
	if row.Quantity > 0 {
		profitPerUnit = profitTotal / qty
	}
	margin := 0.0
	if accrued != 0 {
		margin = profitTotal / accrued * 100
	}

	return domain.ProfitRow{
		SupplierArticle:       row.SupplierArticle,
		Quantity:              row.Quantity,
		PayoutAmount:          row.PayoutAmount,
		AccruedRevenue:        accrued,
		AccruedPerUnit:        accruedPerUnit,
		LogisticsPerUnit:      logisticsPerUnit,
		LogisticsTotal:        logisticsTotal,
		PenaltyTotal:          penaltyTotal,
		PackagingPerUnit:      packagingPerUnit,
		PackagingTotal:        packagingTotal,
		UnitPurchasePrice:     purchasePrice,
		PurchasePriceResolved: resolved,
		UnitCost:              unitCost,
		TotalCost:             totalCost,
		ProfitTotal:           profitTotal,
		ProfitPerUnit:         profitPerUnit,
		MarginPercent:         margin,
	}
}
