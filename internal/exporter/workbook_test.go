package exporter

import (
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"wbprofit/pkg/contracts/domain"
)

func TestWriteWorkbook(t *testing.T) {
	rows := []domain.ProfitRow{
		{
			SupplierArticle:  "A1",
			Quantity:         3,
			PayoutAmount:     900,
			AccruedRevenue:   885,
			AccruedPerUnit:   295,
			LogisticsPerUnit: 5,
			LogisticsTotal:   15,
			PackagingPerUnit: 45,
			PackagingTotal:   135,
			UnitCost:         45,
			TotalCost:        135,
			ProfitPerUnit:    250,
			ProfitTotal:      750,
			MarginPercent:    84.75,
		},
		{
			SupplierArticle: "Storage",
			AccruedRevenue:  -10,
			ProfitTotal:     -10,
			StorageCost:     10,
			Adjustment:      true,
		},
	}
	summary := domain.SummaryMetrics{
		TotalQuantity:       3,
		TotalPayout:         900,
		TotalAccruedRevenue: 875,
		TotalCost:           135,
		TotalProfit:         740,
		AverageMargin:       84.57,
		PartnerShare:        244.2,
		TotalLogistics:      15,
		TotalPackaging:      135,
		TotalStorage:        10,
	}

	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, WriteWorkbook(path, rows, summary))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	salesRows, err := f.GetRows(salesSheet)
	require.NoError(t, err)
	// Header, two data rows, TOTAL row.
	require.Len(t, salesRows, 4)
	assert.Equal(t, "Supplier Article", salesRows[0][0])
	assert.Equal(t, "A1", salesRows[1][0])
	assert.Equal(t, "Storage", salesRows[2][0])
	assert.Equal(t, totalsLabel, salesRows[3][0])

	quantityTotal, err := f.GetCellValue(salesSheet, "B4")
	require.NoError(t, err)
	assertCellValue(t, 3, quantityTotal)

	profitTotal, err := f.GetCellValue(salesSheet, "P4")
	require.NoError(t, err)
	assertCellValue(t, 740, profitTotal)

	storageTotal, err := f.GetCellValue(salesSheet, "I4")
	require.NoError(t, err)
	assertCellValue(t, 10, storageTotal)

	summaryRows, err := f.GetRows(summarySheet)
	require.NoError(t, err)
	// Header plus eleven metrics.
	require.Len(t, summaryRows, 12)
	assert.Equal(t, []string{"Metric", "Value"}, summaryRows[0])
	assert.Equal(t, "Total profit", summaryRows[4][0])
	assertCellValue(t, 740, summaryRows[4][1])
}

func TestWriteWorkbook_EmptyRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, WriteWorkbook(path, nil, domain.SummaryMetrics{}))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	salesRows, err := f.GetRows(salesSheet)
	require.NoError(t, err)
	// Header and the TOTAL row only.
	require.Len(t, salesRows, 2)
	assert.Equal(t, totalsLabel, salesRows[1][0])
}

func TestWriteWorkbook_BadPath(t *testing.T) {
	err := WriteWorkbook(filepath.Join(t.TempDir(), "missing-dir", "x.xlsx"), nil, domain.SummaryMetrics{})
	assert.Error(t, err)
}

func assertCellValue(t *testing.T, want float64, got string) {
	t.Helper()
	v, err := strconv.ParseFloat(got, 64)
	require.NoError(t, err, "cell value %q is not numeric", got)
	assert.InDelta(t, want, v, 1e-6)
}
