package domain

// ProfitRow is one Sale row enriched with resolved costs and unit economics,
// or a synthetic adjustment row carrying an unattributed cost total.
// Adjustment rows have Quantity 0, the category label in SupplierArticle and
// Adjustment set.
type ProfitRow struct {
	SupplierArticle string `json:"supplier_article"`
	Quantity        int64  `json:"quantity"`

	PayoutAmount   float64 `json:"payout_amount"`
	AccruedRevenue float64 `json:"accrued_revenue"`
	AccruedPerUnit float64 `json:"accrued_per_unit"`

	LogisticsPerUnit float64 `json:"logistics_per_unit"`
	LogisticsTotal   float64 `json:"logistics_total"`
	PenaltyTotal     float64 `json:"penalty_total"`
	StorageCost      float64 `json:"storage_cost"`

	PackagingPerUnit float64 `json:"packaging_per_unit"`
	PackagingTotal   float64 `json:"packaging_total"`

	UnitPurchasePrice float64 `json:"unit_purchase_price"`
	// PurchasePriceResolved distinguishes a catalog price of zero from a
	// failed lookup. Both feed the arithmetic as zero.
	PurchasePriceResolved bool `json:"purchase_price_resolved"`

	UnitCost  float64 `json:"unit_cost"`
	TotalCost float64 `json:"total_cost"`

	ProfitTotal   float64 `json:"profit_total"`
	ProfitPerUnit float64 `json:"profit_per_unit"`
	MarginPercent float64 `json:"margin_percent"`

	Adjustment bool `json:"adjustment,omitempty"`
}

// SummaryMetrics holds the headline KPIs rolled up over the full output set
// (profit rows plus adjustment rows). All values are rounded to 2 decimal
// places for presentation.
type SummaryMetrics struct {
	TotalQuantity       float64 `json:"total_quantity"`
	TotalPayout         float64 `json:"total_payout"`
	TotalAccruedRevenue float64 `json:"total_accrued_revenue"`
	TotalCost           float64 `json:"total_cost"`
	TotalProfit         float64 `json:"total_profit"`
	AverageMargin       float64 `json:"average_margin"`
	PartnerShare        float64 `json:"partner_share"`
	TotalLogistics      float64 `json:"total_logistics"`
	TotalPackaging      float64 `json:"total_packaging"`
	TotalPenalties      float64 `json:"total_penalties"`
	TotalStorage        float64 `json:"total_storage"`
}
