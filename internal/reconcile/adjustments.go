package reconcile

import (
	"wbprofit/pkg/contracts/domain"
)

// Adjustment row labels, shown in the supplier-article column of the output.
const (
	LabelUnattributedLogistics = "Logistics (no matching sales)"
	LabelUnattributedPenalties = "Penalties (no matching sales)"
	LabelStorage               = "Storage"
)

// synthesizeAdjustments emits one synthetic row per non-zero unattributed
// amount so that every cost column of the output sums back to the raw
// statement's grand total. Each row carries the amount in its category field
// and its negative as accrued revenue and profit.
func synthesizeAdjustments(unattributedLogistics, unattributedPenalties, storageTotal float64) []domain.ProfitRow {
	var rows []domain.ProfitRow
	if unattributedLogistics != 0 {
		row := newAdjustmentRow(LabelUnattributedLogistics, unattributedLogistics)
		row.LogisticsTotal = unattributedLogistics
		rows = append(rows, row)
	}
	if unattributedPenalties != 0 {
		row := newAdjustmentRow(LabelUnattributedPenalties, unattributedPenalties)
		row.PenaltyTotal = unattributedPenalties
		rows = append(rows, row)
	}
	if storageTotal != 0 {
		row := newAdjustmentRow(LabelStorage, storageTotal)
		row.StorageCost = storageTotal
		rows = append(rows, row)
	}
	return rows
}

func newAdjustmentRow(label string, amount float64) domain.ProfitRow {
	return domain.ProfitRow{
		SupplierArticle: label,
		Quantity:        0,
		AccruedRevenue:  -amount,
		ProfitTotal:     -amount,
		Adjustment:      true,
	}
}
