package pos

import (
	"math"

	"github.com/yasserh/sultan-pos/internal/domain/entity"
)

// Totals is the derived monetary summary of an invoice. All values are
// int64 cents.
type Totals struct {
	SubTotal          int64
	TotalItemDiscount int64
	Tax               int64
	GrandTotal        int64
}

// ComputeTotals derives the invoice totals from its lines and the flat
// invoice-level discount. It is a pure function with no side effects:
//
//	subTotal          = sum of line.Total (unitPrice x quantity)
//	totalItemDiscount = sum of line.Discount x line.Quantity
//	tax               = (subTotal - totalItemDiscount - invoiceDiscount) x taxRate
//	grandTotal        = subTotal - totalItemDiscount - invoiceDiscount + tax
//
// Line discounts are tracked separately from line totals; they reduce the
// taxable base, not the line total itself. When the combined discount
// exceeds the subtotal, tax and grand total go negative; no clamping is
// applied here.
func ComputeTotals(lines []entity.CartLine, invoiceDiscount int64, taxRate float64) Totals {
	var subTotal, itemDiscount int64
	for i := range lines {
		subTotal += lines[i].Total
		itemDiscount += lines[i].Discount * int64(lines[i].Quantity)
	}

	taxable := subTotal - itemDiscount - invoiceDiscount
	tax := int64(math.Round(float64(taxable) * taxRate))

	return Totals{
		SubTotal:          subTotal,
		TotalItemDiscount: itemDiscount,
		Tax:               tax,
		GrandTotal:        taxable + tax,
	}
}

// Apply writes the derived totals onto the invoice.
func (t Totals) Apply(inv *entity.Invoice) {
	inv.SubTotal = t.SubTotal
	inv.TotalItemDiscount = t.TotalItemDiscount
	inv.Tax = t.Tax
	inv.GrandTotal = t.GrandTotal
}
