package reconcile

import (
	"math"

	"wbprofit/pkg/contracts/domain"
)

// buildSummary rolls the full output set (profit rows plus adjustment rows)
// up into headline KPIs. Internal sums stay unrounded; only the returned
// metrics are rounded to 2 decimal places for presentation.
func buildSummary(rows []domain.ProfitRow, profitShare float64) domain.SummaryMetrics {
	var (
		totalQty       float64
		totalPayout    float64
		totalAccrued   float64
		totalCost      float64
		totalProfit    float64
		totalLogistics float64
		totalPackaging float64
		totalPenalties float64
		totalStorage   float64
	)
	for _, row := range rows {
		totalQty += float64(row.Quantity)
		totalPayout += row.PayoutAmount
		totalAccrued += row.AccruedRevenue
		totalCost += row.TotalCost
		totalProfit += row.ProfitTotal
		totalLogistics += row.LogisticsTotal
		totalPackaging += row.PackagingTotal
		totalPenalties += row.PenaltyTotal
		totalStorage += row.StorageCost
	}

	avgMargin := 0.0
	if totalAccrued != 0 {
		avgMargin = totalProfit / totalAccrued * 100
	}

	return domain.SummaryMetrics{
		TotalQuantity:       round2(totalQty),
		TotalPayout:         round2(totalPayout),
		TotalAccruedRevenue: round2(totalAccrued),
		TotalCost:           round2(totalCost),
		TotalProfit:         round2(totalProfit),
		AverageMargin:       round2(avgMargin),
		PartnerShare:        round2(totalProfit * profitShare),
		TotalLogistics:      round2(totalLogistics),
		TotalPackaging:      round2(totalPackaging),
		TotalPenalties:      round2(totalPenalties),
		TotalStorage:        round2(totalStorage),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
