// Package exporter writes the reconciled profit table to report files.
// It is a formatting layer on top of the engine output and never changes
// the numbers it is given.
package exporter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"wbprofit/pkg/contracts/domain"
)

const (
	salesSheet   = "Sales"
	summarySheet = "Summary"
	totalsLabel  = "TOTAL"
)

// profitHeaders is the fixed display order of the report columns.
var profitHeaders = []string{
	"Supplier Article",
	"Quantity",
	"Payout",
	"Accrued Revenue",
	"Accrued Per Unit",
	"Logistics Per Unit",
	"Logistics Total",
	"Penalties",
	"Storage",
	"Packaging Per Unit",
	"Packaging Total",
	"Purchase Price",
	"Unit Cost",
	"Total Cost",
	"Profit Per Unit",
	"Profit Total",
	"Margin %",
}

// WriteWorkbook saves the profit table and its summary as a two-sheet
// workbook: the Sales sheet with a trailing TOTAL row, and the Summary sheet
// with the headline metrics.
func WriteWorkbook(path string, rows []domain.ProfitRow, summary domain.SummaryMetrics) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), salesSheet); err != nil {
		return fmt.Errorf("rename sales sheet: %w", err)
	}
	if err := writeSalesSheet(f, rows); err != nil {
		return err
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}
	if err := writeSummarySheet(f, summary); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func writeSalesSheet(f *excelize.File, rows []domain.ProfitRow) error {
	if err := setRow(f, salesSheet, 1, toAny(profitHeaders)); err != nil {
		return err
	}
	for i, row := range rows {
		if err := setRow(f, salesSheet, i+2, profitRowCells(row)); err != nil {
			return err
		}
	}
	return setRow(f, salesSheet, len(rows)+2, totalsRowCells(rows))
}

func profitRowCells(row domain.ProfitRow) []interface{} {
	return []interface{}{
		row.SupplierArticle,
		row.Quantity,
		row.PayoutAmount,
		row.AccruedRevenue,
		row.AccruedPerUnit,
		row.LogisticsPerUnit,
		row.LogisticsTotal,
		row.PenaltyTotal,
		row.StorageCost,
		row.PackagingPerUnit,
		row.PackagingTotal,
		row.UnitPurchasePrice,
		row.UnitCost,
		row.TotalCost,
		row.ProfitPerUnit,
		row.ProfitTotal,
		row.MarginPercent,
	}
}

// totalsRowCells builds the TOTAL row. Per-unit and margin columns are left
// blank: summing rates across rows is meaningless.
func totalsRowCells(rows []domain.ProfitRow) []interface{} {
	var qty int64
	var payout, accrued, logistics, penalties, storage, packaging, totalCost, profit float64
	for _, row := range rows {
		qty += row.Quantity
		payout += row.PayoutAmount
		accrued += row.AccruedRevenue
		logistics += row.LogisticsTotal
		penalties += row.PenaltyTotal
		storage += row.StorageCost
		packaging += row.PackagingTotal
		totalCost += row.TotalCost
		profit += row.ProfitTotal
	}
	return []interface{}{
		totalsLabel,
		qty,
		payout,
		accrued,
		nil,
		nil,
		logistics,
		penalties,
		storage,
		nil,
		packaging,
		nil,
		nil,
		totalCost,
		nil,
		profit,
		nil,
	}
}

func writeSummarySheet(f *excelize.File, summary domain.SummaryMetrics) error {
	metrics := []struct {
		name  string
		value float64
	}{
		{"Accrued revenue", summary.TotalAccruedRevenue},
		{"Payout for goods", summary.TotalPayout},
		{"Total cost", summary.TotalCost},
		{"Total profit", summary.TotalProfit},
		{"Partner profit share", summary.PartnerShare},
		{"Logistics total", summary.TotalLogistics},
		{"Penalties total", summary.TotalPenalties},
		{"Storage total", summary.TotalStorage},
		{"Packaging total", summary.TotalPackaging},
		{"Quantity", summary.TotalQuantity},
		{"Margin %", summary.AverageMargin},
	}

	if err := setRow(f, summarySheet, 1, []interface{}{"Metric", "Value"}); err != nil {
		return err
	}
	for i, m := range metrics {
		if err := setRow(f, summarySheet, i+2, []interface{}{m.name, m.value}); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, rowNum int, cells []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("cell coordinates for row %d: %w", rowNum, err)
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, rowNum, err)
	}
	return nil
}

func toAny(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
