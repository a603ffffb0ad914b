package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wbprofit/pkg/contracts/domain"
)

func TestComputeAllocationTotals(t *testing.T) {
	rows := &classifiedRows{
		Sales: []domain.StatementRow{
			{SupplierArticle: "A1", Quantity: 3},
			{SupplierArticle: "A1", Quantity: 2},
			{SupplierArticle: "B2", Quantity: 1},
		},
		Logistics: []domain.StatementRow{
			{SupplierArticle: "A1", LogisticsCost: 25},
			{SupplierArticle: "C3", LogisticsCost: 7},
		},
		Penalties: []domain.StatementRow{
			{SupplierArticle: "B2", PenaltyCost: 12},
		},
		Storage: []domain.StatementRow{
			{StorageCost: 10},
			{StorageCost: 4},
		},
	}

	totals := computeAllocationTotals(rows)

	assert.Equal(t, int64(5), totals.QuantitySold["A1"])
	assert.Equal(t, int64(1), totals.QuantitySold["B2"])
	assert.Equal(t, 25.0, totals.LogisticsCost["A1"])
	assert.Equal(t, 7.0, totals.LogisticsCost["C3"])
	assert.Equal(t, 32.0, totals.LogisticsGrandTotal)
	assert.Equal(t, 12.0, totals.PenaltyGrandTotal)
	assert.Equal(t, 14.0, totals.StorageGrandTotal)
}

func TestComputeAllocationTotals_StorageNoiseClamped(t *testing.T) {
	rows := &classifiedRows{
		Storage: []domain.StatementRow{
			{StorageCost: 1e-9},
		},
	}
	totals := computeAllocationTotals(rows)
	assert.Zero(t, totals.StorageGrandTotal)
}

func TestAllocateCategory(t *testing.T) {
	tests := []struct {
		name             string
		costByArticle    map[string]float64
		quantity         map[string]int64
		grandTotal       float64
		wantPerUnit      map[string]float64
		wantUnattributed float64
	}{
		{
			name:             "full allocation",
			costByArticle:    map[string]float64{"A1": 25},
			quantity:         map[string]int64{"A1": 5},
			grandTotal:       25,
			wantPerUnit:      map[string]float64{"A1": 5},
			wantUnattributed: 0,
		},
		{
			name:             "article without sales stays unattributed",
			costByArticle:    map[string]float64{"A1": 25, "GHOST": 40},
			quantity:         map[string]int64{"A1": 5},
			grandTotal:       65,
			wantPerUnit:      map[string]float64{"A1": 5},
			wantUnattributed: 40,
		},
		{
			name:             "zero quantity counts as no sales",
			costByArticle:    map[string]float64{"A1": 25},
			quantity:         map[string]int64{"A1": 0},
			grandTotal:       25,
			wantPerUnit:      map[string]float64{},
			wantUnattributed: 25,
		},
		{
			name:             "empty category",
			costByArticle:    map[string]float64{},
			quantity:         map[string]int64{"A1": 5},
			grandTotal:       0,
			wantPerUnit:      map[string]float64{},
			wantUnattributed: 0,
		},
		{
			name:             "negative remainder survives clamping",
			costByArticle:    map[string]float64{"A1": 25},
			quantity:         map[string]int64{"A1": 5},
			grandTotal:       20,
			wantPerUnit:      map[string]float64{"A1": 5},
			wantUnattributed: -5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alloc := allocateCategory(tt.costByArticle, tt.quantity, tt.grandTotal)
			assert.Equal(t, tt.wantPerUnit, alloc.PerUnit)
			assert.InDelta(t, tt.wantUnattributed, alloc.Unattributed, 1e-9)
		})
	}
}

func TestAllocateCategory_FloatingNoiseClamped(t *testing.T) {
	// Grand total accumulated in a different order than the matched total,
	// leaving sub-epsilon noise that must clamp to exactly zero.
	costs := map[string]float64{"A1": 0.1 + 0.2, "B2": 0.3}
	quantity := map[string]int64{"A1": 1, "B2": 1}
	grandTotal := 0.3 + 0.1 + 0.2

	alloc := allocateCategory(costs, quantity, grandTotal)
	require.Len(t, alloc.PerUnit, 2)
	assert.Zero(t, alloc.Unattributed)
}

func TestAllocateCategory_Conservation(t *testing.T) {
	// Summing per_unit * quantity over an allocated article reproduces the
	// article's category total.
	costs := map[string]float64{"A1": 25}
	quantity := map[string]int64{"A1": 5}

	alloc := allocateCategory(costs, quantity, 25)
	perUnit := alloc.PerUnit["A1"]

	rowTotals := perUnit*3 + perUnit*2
	assert.InDelta(t, 25.0, rowTotals+alloc.Unattributed, 1e-6)
}
