package pos

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yasserh/sultan-pos/internal/domain/entity"
)

func line(qty int, unitPrice, discount int64) entity.CartLine {
	return entity.CartLine{
		Quantity:  qty,
		UnitPrice: unitPrice,
		Total:     unitPrice * int64(qty),
		Discount:  discount,
	}
}

func TestComputeTotals_NoDiscounts(t *testing.T) {
	// Two units at 100.00 with 15% tax.
	totals := ComputeTotals([]entity.CartLine{line(2, 10000, 0)}, 0, 0.15)

	require.Equal(t, int64(20000), totals.SubTotal)
	require.Equal(t, int64(0), totals.TotalItemDiscount)
	require.Equal(t, int64(3000), totals.Tax)
	require.Equal(t, int64(23000), totals.GrandTotal)
}

func TestComputeTotals_CombinedDiscounts(t *testing.T) {
	// Line total 200.00, per-unit discount 5.00 x qty 2, invoice discount
	// 10.00: combined discount 20.00, tax (200-20)*0.15 = 27.00.
	totals := ComputeTotals([]entity.CartLine{line(2, 10000, 500)}, 1000, 0.15)

	require.Equal(t, int64(20000), totals.SubTotal)
	require.Equal(t, int64(1000), totals.TotalItemDiscount)
	require.Equal(t, int64(2700), totals.Tax)
	require.Equal(t, int64(20700), totals.GrandTotal)
}

func TestComputeTotals_EmptyLines(t *testing.T) {
	totals := ComputeTotals(nil, 0, 0.15)

	require.Zero(t, totals.SubTotal)
	require.Zero(t, totals.TotalItemDiscount)
	require.Zero(t, totals.Tax)
	require.Zero(t, totals.GrandTotal)
}

func TestComputeTotals_DiscountExceedsSubtotal(t *testing.T) {
	// Combined discount above the subtotal is not clamped: tax and grand
	// total go negative, matching the reference checkout behavior.
	totals := ComputeTotals([]entity.CartLine{line(1, 1000, 0)}, 2000, 0.15)

	require.Equal(t, int64(1000), totals.SubTotal)
	require.Equal(t, int64(-150), totals.Tax)
	require.Equal(t, int64(-1150), totals.GrandTotal)
}

func TestComputeTotals_Consistency(t *testing.T) {
	lines := []entity.CartLine{
		line(3, 12000, 250),
		line(1, 899, 0),
		line(7, 150, 10),
	}
	const invoiceDiscount = int64(500)
	const taxRate = 0.15

	totals := ComputeTotals(lines, invoiceDiscount, taxRate)

	combined := totals.TotalItemDiscount + invoiceDiscount
	require.Equal(t, totals.SubTotal-combined+totals.Tax, totals.GrandTotal,
		"grand total must equal subtotal - combined discount + tax")
}
