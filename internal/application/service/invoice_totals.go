package service

import (
	"github.com/shopspring/decimal"
	"github.com/tanwartailor/tailor-api/internal/domain/entity"
)

// ComputeTotals derives subtotal and grand total from the line items and the
// tax and discount percentages. Line totals are always recomputed from
// quantity and price, so whatever totals a caller supplied are ignored.
// The grand total is rounded to the nearest rupee, line totals to the paisa.
func ComputeTotals(items []entity.InvoiceItem, taxPercent, discountPercent float64) (float64, float64, []entity.InvoiceItem) {
	subtotal := decimal.Zero
	normalized := make([]entity.InvoiceItem, len(items))

	for i, item := range items {
		lineTotal := decimal.NewFromInt(int64(item.Quantity)).
			Mul(decimal.NewFromFloat(item.Price)).
			Round(2)

		item.Position = i
		item.Total, _ = lineTotal.Float64()
		normalized[i] = item

		subtotal = subtotal.Add(lineTotal)
	}

	subtotal = subtotal.Round(2)

	hundred := decimal.NewFromInt(100)
	taxAmount := subtotal.Mul(decimal.NewFromFloat(taxPercent)).Div(hundred)
	discountAmount := subtotal.Mul(decimal.NewFromFloat(discountPercent)).Div(hundred)

	grandTotal := subtotal.Add(taxAmount).Sub(discountAmount).Round(0)

	sub, _ := subtotal.Float64()
	grand, _ := grandTotal.Float64()
	return sub, grand, normalized
}
