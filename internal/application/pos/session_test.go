package pos

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/yasserh/sultan-pos/internal/domain/entity"
	"github.com/yasserh/sultan-pos/internal/domain/enum"
)

// fakeCustomers is an in-memory CustomerLookup for session tests.
type fakeCustomers struct {
	byID map[uuid.UUID]*entity.Customer
	err  error
}

func (f *fakeCustomers) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byID[id], nil
}

func product(name string, priceCents int64) *entity.Product {
	return &entity.Product{
		ID:           uuid.New(),
		Name:         name,
		Barcode:      utilsBarcode(),
		SellingPrice: priceCents,
		Unit:         "pcs",
	}
}

func utilsBarcode() string {
	return uuid.New().String()[:12]
}

func newTestSession(t *testing.T, customers *fakeCustomers) *Session {
	t.Helper()
	if customers == nil {
		customers = &fakeCustomers{byID: map[uuid.UUID]*entity.Customer{}}
	}
	return NewSession(Config{
		CashierID:    uuid.New(),
		CashierName:  "Ahmad",
		TaxRate:      0.15,
		CashCustomer: walkIn(),
	}, customers)
}

func assertConsistent(t *testing.T, inv *entity.Invoice, taxRate float64) {
	t.Helper()
	want := ComputeTotals(inv.Lines, inv.InvoiceDiscount, taxRate)
	require.Equal(t, want.SubTotal, inv.SubTotal)
	require.Equal(t, want.TotalItemDiscount, inv.TotalItemDiscount)
	require.Equal(t, want.Tax, inv.Tax)
	require.Equal(t, want.GrandTotal, inv.GrandTotal)
	combined := inv.TotalItemDiscount + inv.InvoiceDiscount
	require.Equal(t, inv.SubTotal-combined+inv.Tax, inv.GrandTotal)
}

func TestSession_NewInvoiceDefaults(t *testing.T) {
	s := newTestSession(t, nil)
	inv := s.Current()

	require.Regexp(t, `^INV-\d{4}-[0-9A-Z]{5}$`, inv.InvoiceNo)
	require.Equal(t, "Ahmad", inv.Cashier)
	require.Equal(t, enum.InvoiceOpen, inv.Status)
	require.True(t, inv.IsEmpty())
	require.NotNil(t, inv.Customer)
	require.True(t, inv.Customer.IsCashCustomer())
	require.Nil(t, inv.PaymentMethod)
}

func TestSession_AddLineSnapshotsAndIncrements(t *testing.T) {
	s := newTestSession(t, nil)
	p := product("Cola", 250)

	inv, err := s.AddLine(p, "")
	require.NoError(t, err)
	require.Len(t, inv.Lines, 1)
	require.Equal(t, 1, inv.Lines[0].Quantity)
	require.Equal(t, int64(250), inv.Lines[0].UnitPrice)
	require.Equal(t, "pcs", inv.Lines[0].Unit)

	// Adding the same product again increments the existing line.
	inv, err = s.AddLine(p, "")
	require.NoError(t, err)
	require.Len(t, inv.Lines, 1)
	require.Equal(t, 2, inv.Lines[0].Quantity)
	require.Equal(t, int64(500), inv.Lines[0].Total)

	// Catalog price changes must not touch the snapshot.
	p.SellingPrice = 999
	require.Equal(t, int64(250), s.Current().Lines[0].UnitPrice)

	assertConsistent(t, s.Current(), 0.15)
}

func TestSession_TotalsRecomputedAfterEveryMutation(t *testing.T) {
	s := newTestSession(t, nil)
	a := product("Laptop", 120000)
	b := product("Water", 100)

	mutate := []func() (*entity.Invoice, error){
		func() (*entity.Invoice, error) { return s.AddLine(a, "") },
		func() (*entity.Invoice, error) { return s.AddLine(b, "") },
		func() (*entity.Invoice, error) { return s.UpdateQuantity(a.ID, 3) },
		func() (*entity.Invoice, error) { return s.UpdateLineDiscount(a.ID, 1500) },
		func() (*entity.Invoice, error) { return s.SetInvoiceDiscount(2000) },
		func() (*entity.Invoice, error) { return s.RemoveLine(b.ID) },
		func() (*entity.Invoice, error) { return s.UpdateQuantity(a.ID, 1) },
	}
	for _, op := range mutate {
		inv, err := op()
		require.NoError(t, err)
		assertConsistent(t, inv, 0.15)
	}
}

func TestSession_ScenarioTwoAtHundred(t *testing.T) {
	s := newTestSession(t, nil)
	p := product("Widget", 10000)

	_, err := s.AddLine(p, "")
	require.NoError(t, err)
	inv, err := s.UpdateQuantity(p.ID, 2)
	require.NoError(t, err)

	require.Equal(t, int64(20000), inv.SubTotal)
	require.Equal(t, int64(0), inv.TotalItemDiscount)
	require.Equal(t, int64(3000), inv.Tax)
	require.Equal(t, int64(23000), inv.GrandTotal)
}

func TestSession_QuantityFloorRemovesLine(t *testing.T) {
	for _, qty := range []int{0, -5} {
		s := newTestSession(t, nil)
		p := product("Cola", 250)
		_, err := s.AddLine(p, "")
		require.NoError(t, err)

		inv, err := s.UpdateQuantity(p.ID, qty)
		require.NoError(t, err)
		require.Empty(t, inv.Lines)
		assertConsistent(t, inv, 0.15)
	}
}

func TestSession_UpdateUnknownLineIsNoOp(t *testing.T) {
	s := newTestSession(t, nil)
	p := product("Cola", 250)
	_, err := s.AddLine(p, "")
	require.NoError(t, err)

	inv, err := s.UpdateQuantity(uuid.New(), 4)
	require.NoError(t, err)
	require.Len(t, inv.Lines, 1)
	require.Equal(t, 1, inv.Lines[0].Quantity)
}

func TestSession_RemoveLineIdempotent(t *testing.T) {
	s := newTestSession(t, nil)
	p := product("Cola", 250)
	_, err := s.AddLine(p, "")
	require.NoError(t, err)

	first, err := s.RemoveLine(p.ID)
	require.NoError(t, err)
	second, err := s.RemoveLine(p.ID)
	require.NoError(t, err)

	require.Equal(t, first.Lines, second.Lines)
	require.Equal(t, first.GrandTotal, second.GrandTotal)
}

func TestSession_PositionsStayUniqueAfterRemove(t *testing.T) {
	s := newTestSession(t, nil)
	cola := product("Cola", 250)
	water := product("Water", 100)
	bread := product("Bread", 180)

	_, err := s.AddLine(cola, "")
	require.NoError(t, err)
	_, err = s.AddLine(water, "")
	require.NoError(t, err)
	_, err = s.RemoveLine(cola.ID)
	require.NoError(t, err)
	inv, err := s.AddLine(bread, "")
	require.NoError(t, err)

	require.Len(t, inv.Lines, 2)
	require.Equal(t, "Water", inv.Lines[0].Name)
	require.Equal(t, "Bread", inv.Lines[1].Name)
	for i, line := range inv.Lines {
		require.Equal(t, i, line.Position)
	}
}

func TestSession_LineDiscountFloorsNegative(t *testing.T) {
	s := newTestSession(t, nil)
	p := product("Cola", 250)
	_, err := s.AddLine(p, "")
	require.NoError(t, err)

	inv, err := s.UpdateLineDiscount(p.ID, -300)
	require.NoError(t, err)
	require.Equal(t, int64(0), inv.Lines[0].Discount)
}

func TestSession_InvoiceDiscountStoredRaw(t *testing.T) {
	// Negative invoice-level discounts are kept as given; the reference
	// behavior does not clamp them.
	s := newTestSession(t, nil)
	p := product("Cola", 250)
	_, err := s.AddLine(p, "")
	require.NoError(t, err)

	inv, err := s.SetInvoiceDiscount(-500)
	require.NoError(t, err)
	require.Equal(t, int64(-500), inv.InvoiceDiscount)
	assertConsistent(t, inv, 0.15)
}

func TestSession_HoldRestoreRoundTrip(t *testing.T) {
	s := newTestSession(t, nil)
	p := product("Laptop", 120000)
	_, err := s.AddLine(p, "")
	require.NoError(t, err)
	_, err = s.SetInvoiceDiscount(1000)
	require.NoError(t, err)

	before := s.Current()
	beforeNo := before.InvoiceNo

	fresh, err := s.Hold()
	require.NoError(t, err)
	require.True(t, fresh.IsEmpty())
	require.NotEqual(t, beforeNo, fresh.InvoiceNo)
	require.Len(t, s.Held(), 1)
	require.Equal(t, enum.InvoiceHeld, s.Held()[0].Status)

	restored, err := s.Restore(beforeNo)
	require.NoError(t, err)
	require.Equal(t, enum.InvoiceOpen, restored.Status)
	require.Equal(t, before.Lines, restored.Lines)
	require.Equal(t, before.InvoiceDiscount, restored.InvoiceDiscount)
	require.Equal(t, before.GrandTotal, restored.GrandTotal)
	require.Empty(t, s.Held())

	// The restored invoice resumes normal mutability.
	inv, err := s.UpdateQuantity(p.ID, 2)
	require.NoError(t, err)
	assertConsistent(t, inv, 0.15)
}

func TestSession_HoldEmptyRefused(t *testing.T) {
	s := newTestSession(t, nil)

	_, err := s.Hold()
	require.ErrorIs(t, err, ErrNothingToHold)
	require.Empty(t, s.Held())
}

func TestSession_RestoreUnknownLeavesStateUntouched(t *testing.T) {
	s := newTestSession(t, nil)
	p := product("Cola", 250)
	_, err := s.AddLine(p, "")
	require.NoError(t, err)
	current := s.Current()

	inv, err := s.Restore("INV-2026-NOPE1")
	require.ErrorIs(t, err, ErrHeldInvoiceNotFound)
	require.Same(t, current, inv)
	require.Len(t, inv.Lines, 1)
}

func TestSession_RestoreDiscardsCurrent(t *testing.T) {
	s := newTestSession(t, nil)
	first := product("Cola", 250)
	_, err := s.AddLine(first, "")
	require.NoError(t, err)
	heldNo := s.Current().InvoiceNo
	_, err = s.Hold()
	require.NoError(t, err)

	second := product("Water", 100)
	_, err = s.AddLine(second, "")
	require.NoError(t, err)

	restored, err := s.Restore(heldNo)
	require.NoError(t, err)
	require.Equal(t, heldNo, restored.InvoiceNo)
	require.Len(t, restored.Lines, 1)
	require.Equal(t, first.ID, restored.Lines[0].ProductID)
}

func TestSession_SetCustomerMissFallsBackToCashSemantics(t *testing.T) {
	s := newTestSession(t, nil)
	p := product("Cola", 250)
	_, err := s.AddLine(p, "")
	require.NoError(t, err)

	inv, err := s.SetCustomer(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Nil(t, inv.Customer)

	// With no customer set, credit is rejected like a walk-in sale.
	_, err = s.Finalize(enum.PaymentCredit, PaymentContext{})
	requireRejected(t, err, ReasonCreditRequiresCustomer)
	require.Equal(t, enum.InvoiceOpen, s.Current().Status)
}

func TestSession_SetCustomerLookupFailureSurfaced(t *testing.T) {
	boom := errors.New("lookup timeout")
	s := newTestSession(t, &fakeCustomers{err: boom})
	p := product("Cola", 250)
	_, err := s.AddLine(p, "")
	require.NoError(t, err)
	before := s.Current().Customer

	_, err = s.SetCustomer(context.Background(), uuid.New())
	require.ErrorIs(t, err, boom)
	require.Equal(t, before, s.Current().Customer)
}

func TestSession_FinalizeCashStampsChange(t *testing.T) {
	s := newTestSession(t, nil)
	p := product("Widget", 10000)
	_, err := s.AddLine(p, "")
	require.NoError(t, err)
	_, err = s.UpdateQuantity(p.ID, 2)
	require.NoError(t, err)

	inv, err := s.Finalize(enum.PaymentCash, PaymentContext{AmountReceived: 25000})
	require.NoError(t, err)
	require.True(t, inv.IsFinalized())
	require.Equal(t, enum.PaymentCash, *inv.PaymentMethod)
	require.Equal(t, int64(25000), inv.AmountReceived)
	require.Equal(t, int64(2000), inv.Change)
}

func TestSession_FinalizeRejectionKeepsInvoiceOpen(t *testing.T) {
	s := newTestSession(t, nil)
	p := product("Widget", 9000) // grand total 20700 at qty 2
	_, err := s.AddLine(p, "")
	require.NoError(t, err)
	_, err = s.UpdateQuantity(p.ID, 2)
	require.NoError(t, err)

	inv, err := s.Finalize(enum.PaymentCash, PaymentContext{AmountReceived: 20000})
	requireRejected(t, err, ReasonInsufficientCash)
	require.Equal(t, enum.InvoiceOpen, inv.Status)
	require.Nil(t, inv.PaymentMethod)

	// Still editable after the rejection.
	_, err = s.UpdateQuantity(p.ID, 1)
	require.NoError(t, err)
}

func TestSession_FinalizedInvoiceIsImmutable(t *testing.T) {
	s := newTestSession(t, nil)
	p := product("Cola", 250)
	_, err := s.AddLine(p, "")
	require.NoError(t, err)
	_, err = s.Finalize(enum.PaymentCard, PaymentContext{})
	require.NoError(t, err)

	_, err = s.AddLine(product("Water", 100), "")
	require.ErrorIs(t, err, ErrInvoiceFinalized)
	_, err = s.UpdateQuantity(p.ID, 5)
	require.ErrorIs(t, err, ErrInvoiceFinalized)
	_, err = s.SetInvoiceDiscount(100)
	require.ErrorIs(t, err, ErrInvoiceFinalized)
	_, err = s.Hold()
	require.ErrorIs(t, err, ErrInvoiceFinalized)
	_, err = s.Finalize(enum.PaymentCash, PaymentContext{AmountReceived: 1000})
	require.ErrorIs(t, err, ErrInvoiceFinalized)

	// Only a new sale moves the terminal on.
	fresh := s.StartNewSale()
	require.True(t, fresh.IsEmpty())
	require.Equal(t, enum.InvoiceOpen, fresh.Status)
}

func TestSession_ReopenRevertsFailedFinalize(t *testing.T) {
	s := newTestSession(t, nil)
	p := product("Cola", 250)
	_, err := s.AddLine(p, "")
	require.NoError(t, err)

	_, err = s.Finalize(enum.PaymentCash, PaymentContext{AmountReceived: 500})
	require.NoError(t, err)

	inv := s.Reopen()
	require.Equal(t, enum.InvoiceOpen, inv.Status)
	require.Nil(t, inv.PaymentMethod)
	require.Zero(t, inv.AmountReceived)
	require.Zero(t, inv.Change)

	_, err = s.UpdateQuantity(p.ID, 3)
	require.NoError(t, err)
}

func TestSession_FinalizeChequeAttachesDetail(t *testing.T) {
	s := newTestSession(t, nil)
	p := product("Laptop", 120000)
	_, err := s.AddLine(p, "")
	require.NoError(t, err)

	inv, err := s.Finalize(enum.PaymentCheque, PaymentContext{
		Cheque: &entity.ChequeDetail{ChequeNumber: "10025", BankName: "Al Rajhi"},
	})
	require.NoError(t, err)
	require.NotNil(t, inv.Cheque)
	require.Equal(t, inv.GrandTotal, inv.Cheque.Amount)
	require.Equal(t, enum.ChequePending, inv.Cheque.Status)
}

func TestSession_InvoiceNumbersUniqueWithinSession(t *testing.T) {
	s := newTestSession(t, nil)
	seen := map[string]struct{}{s.Current().InvoiceNo: {}}

	for i := 0; i < 50; i++ {
		inv := s.StartNewSale()
		_, dup := seen[inv.InvoiceNo]
		require.False(t, dup, "duplicate invoice number %s", inv.InvoiceNo)
		seen[inv.InvoiceNo] = struct{}{}
	}
}
