package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tanwartailor/tailor-api/internal/domain/entity"
)

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name         string
		items        []entity.InvoiceItem
		tax          float64
		discount     float64
		wantSubtotal float64
		wantGrand    float64
	}{
		{
			name: "tax only",
			items: []entity.InvoiceItem{
				{Description: "Shirt stitching", Quantity: 2, Price: 100},
			},
			tax:          10,
			wantSubtotal: 200,
			wantGrand:    220,
		},
		{
			name: "tax and discount",
			items: []entity.InvoiceItem{
				{Description: "Suit", Quantity: 1, Price: 5000},
				{Description: "Alteration", Quantity: 2, Price: 250},
			},
			tax:          18,
			discount:     10,
			wantSubtotal: 5500,
			wantGrand:    5940,
		},
		{
			name: "grand total rounds to nearest rupee",
			items: []entity.InvoiceItem{
				{Description: "Blouse", Quantity: 3, Price: 333},
			},
			tax:          5,
			wantSubtotal: 999,
			wantGrand:    1049, // 1048.95 rounds up
		},
		{
			name: "no tax no discount",
			items: []entity.InvoiceItem{
				{Description: "Hemming", Quantity: 4, Price: 50.50},
			},
			wantSubtotal: 202,
			wantGrand:    202,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subtotal, grand, normalized := ComputeTotals(tt.items, tt.tax, tt.discount)
			require.Equal(t, tt.wantSubtotal, subtotal)
			require.Equal(t, tt.wantGrand, grand)
			require.Len(t, normalized, len(tt.items))
		})
	}
}

func TestComputeTotalsIgnoresSuppliedTotals(t *testing.T) {
	items := []entity.InvoiceItem{
		{Description: "Kurta", Quantity: 2, Price: 150, Total: 9999},
	}

	subtotal, grand, normalized := ComputeTotals(items, 0, 0)

	require.Equal(t, 300.0, subtotal)
	require.Equal(t, 300.0, grand)
	require.Equal(t, 300.0, normalized[0].Total)
}

func TestComputeTotalsAssignsPositions(t *testing.T) {
	items := []entity.InvoiceItem{
		{Description: "a", Quantity: 1, Price: 1},
		{Description: "b", Quantity: 1, Price: 2},
		{Description: "c", Quantity: 1, Price: 3},
	}

	_, _, normalized := ComputeTotals(items, 0, 0)

	for i, item := range normalized {
		require.Equal(t, i, item.Position)
	}
}
