package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/yasserh/sultan-pos/internal/application/pos"
	"github.com/yasserh/sultan-pos/internal/domain/entity"
	"github.com/yasserh/sultan-pos/internal/domain/enum"
	"github.com/yasserh/sultan-pos/internal/domain/repository"
	"github.com/yasserh/sultan-pos/pkg/apperror"
	"github.com/yasserh/sultan-pos/pkg/pagination"
)

type memCustomerRepo struct {
	customers map[uuid.UUID]*entity.Customer
	cash      *entity.Customer
}

func newMemCustomerRepo() *memCustomerRepo {
	cash := &entity.Customer{ID: uuid.New(), Name: "Cash Customer", WalkIn: true}
	return &memCustomerRepo{
		customers: map[uuid.UUID]*entity.Customer{cash.ID: cash},
		cash:      cash,
	}
}

func (r *memCustomerRepo) add(name string) *entity.Customer {
	c := &entity.Customer{ID: uuid.New(), Name: name}
	r.customers[c.ID] = c
	return c
}

func (r *memCustomerRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Customer, error) {
	return r.customers[id], nil
}

func (r *memCustomerRepo) GetCashCustomer(_ context.Context) (*entity.Customer, error) {
	return r.cash, nil
}

func (r *memCustomerRepo) List(_ context.Context, _ *pagination.PaginationParams, _ string) ([]entity.Customer, int64, error) {
	out := make([]entity.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *memCustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	r.customers[c.ID] = c
	return nil
}

type memSaleRepo struct {
	sales   map[string]*entity.Invoice
	failure error
}

func newMemSaleRepo() *memSaleRepo {
	return &memSaleRepo{sales: make(map[string]*entity.Invoice)}
}

func (r *memSaleRepo) Create(_ context.Context, inv *entity.Invoice) error {
	if r.failure != nil {
		return r.failure
	}
	cp := *inv
	r.sales[inv.InvoiceNo] = &cp
	return nil
}

func (r *memSaleRepo) GetByInvoiceNo(_ context.Context, invoiceNo string) (*entity.Invoice, error) {
	return r.sales[invoiceNo], nil
}

func (r *memSaleRepo) List(_ context.Context, _ *repository.SaleFilterParams) ([]entity.Invoice, int64, error) {
	out := make([]entity.Invoice, 0, len(r.sales))
	for _, inv := range r.sales {
		out = append(out, *inv)
	}
	return out, int64(len(out)), nil
}

func (r *memSaleRepo) UpdateChequeStatus(_ context.Context, invoiceNo string, status enum.ChequeStatus) error {
	inv, ok := r.sales[invoiceNo]
	if !ok || inv.Cheque == nil {
		return errors.New("no cheque")
	}
	inv.Cheque.Status = status
	return nil
}

func cola() *entity.Product {
	return &entity.Product{
		ID:           uuid.New(),
		Name:         "Cola 330ml",
		Barcode:      "6291001001",
		SellingPrice: entity.Cents(1.50),
		Unit:         "pcs",
	}
}

func terminal() Terminal {
	return Terminal{CashierID: uuid.New(), CashierName: "Ahmed"}
}

func TestCheckoutCashSalePersisted(t *testing.T) {
	customers := newMemCustomerRepo()
	sales := newMemSaleRepo()
	svc := NewCheckoutService(customers, sales, 0.15, "INV")
	term := terminal()
	ctx := context.Background()

	inv, err := svc.AddLine(ctx, term, cola(), "")
	require.NoError(t, err)
	require.Len(t, inv.Lines, 1)

	done, err := svc.Checkout(ctx, term, enum.PaymentCash, pos.PaymentContext{AmountReceived: entity.Cents(5.00)})
	require.NoError(t, err)
	require.True(t, done.IsFinalized())
	require.Equal(t, entity.Cents(1.73), done.GrandTotal)

	stored, err := sales.GetByInvoiceNo(ctx, done.InvoiceNo)
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.Equal(t, done.GrandTotal, stored.GrandTotal)

	// The terminal moved on to a fresh invoice.
	next, err := svc.CurrentInvoice(ctx, term)
	require.NoError(t, err)
	require.NotEqual(t, done.InvoiceNo, next.InvoiceNo)
	require.True(t, next.IsEmpty())
}

func TestCheckoutRejectionTranslated(t *testing.T) {
	customers := newMemCustomerRepo()
	sales := newMemSaleRepo()
	svc := NewCheckoutService(customers, sales, 0.15, "INV")
	term := terminal()
	ctx := context.Background()

	_, err := svc.AddLine(ctx, term, cola(), "")
	require.NoError(t, err)

	_, err = svc.Checkout(ctx, term, enum.PaymentCash, pos.PaymentContext{AmountReceived: entity.Cents(1.00)})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, 422, appErr.Code)
	require.Equal(t, string(pos.ReasonInsufficientCash), appErr.Reason)

	// Nothing was persisted and the invoice stayed editable.
	require.Empty(t, sales.sales)
	inv, err := svc.CurrentInvoice(ctx, term)
	require.NoError(t, err)
	require.False(t, inv.IsFinalized())
	require.Len(t, inv.Lines, 1)
}

func TestCheckoutPersistenceFailureReopens(t *testing.T) {
	customers := newMemCustomerRepo()
	sales := newMemSaleRepo()
	sales.failure = errors.New("connection refused")
	svc := NewCheckoutService(customers, sales, 0.15, "INV")
	term := terminal()
	ctx := context.Background()

	_, err := svc.AddLine(ctx, term, cola(), "")
	require.NoError(t, err)

	_, err = svc.Checkout(ctx, term, enum.PaymentCash, pos.PaymentContext{AmountReceived: entity.Cents(5.00)})
	require.Error(t, err)

	// The invoice reverted to open; the operator can retry checkout.
	inv, err := svc.CurrentInvoice(ctx, term)
	require.NoError(t, err)
	require.False(t, inv.IsFinalized())
	require.Len(t, inv.Lines, 1)

	sales.failure = nil
	done, err := svc.Checkout(ctx, term, enum.PaymentCash, pos.PaymentContext{AmountReceived: entity.Cents(5.00)})
	require.NoError(t, err)
	require.True(t, done.IsFinalized())
}

func TestCheckoutCreditRequiresRegisteredCustomer(t *testing.T) {
	customers := newMemCustomerRepo()
	regular := customers.add("Fatima")
	sales := newMemSaleRepo()
	svc := NewCheckoutService(customers, sales, 0.15, "INV")
	term := terminal()
	ctx := context.Background()

	_, err := svc.AddLine(ctx, term, cola(), "")
	require.NoError(t, err)

	_, err = svc.Checkout(ctx, term, enum.PaymentCredit, pos.PaymentContext{})
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, string(pos.ReasonCreditRequiresCustomer), appErr.Reason)

	_, err = svc.SetCustomer(ctx, term, regular.ID)
	require.NoError(t, err)

	done, err := svc.Checkout(ctx, term, enum.PaymentCredit, pos.PaymentContext{})
	require.NoError(t, err)
	require.True(t, done.IsFinalized())
}

func TestHoldAndRestoreThroughService(t *testing.T) {
	customers := newMemCustomerRepo()
	sales := newMemSaleRepo()
	svc := NewCheckoutService(customers, sales, 0.15, "INV")
	term := terminal()
	ctx := context.Background()

	inv, err := svc.AddLine(ctx, term, cola(), "")
	require.NoError(t, err)
	heldNo := inv.InvoiceNo

	_, err = svc.Hold(ctx, term)
	require.NoError(t, err)

	held, err := svc.HeldInvoices(ctx, term)
	require.NoError(t, err)
	require.Len(t, held, 1)

	restored, err := svc.Restore(ctx, term, heldNo)
	require.NoError(t, err)
	require.Equal(t, heldNo, restored.InvoiceNo)

	_, err = svc.Restore(ctx, term, "INV-0000-XXXXX")
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, 404, appErr.Code)
}

func TestTerminalsAreIsolated(t *testing.T) {
	customers := newMemCustomerRepo()
	sales := newMemSaleRepo()
	svc := NewCheckoutService(customers, sales, 0.15, "INV")
	termA := terminal()
	termB := terminal()
	ctx := context.Background()

	_, err := svc.AddLine(ctx, termA, cola(), "")
	require.NoError(t, err)

	invB, err := svc.CurrentInvoice(ctx, termB)
	require.NoError(t, err)
	require.True(t, invB.IsEmpty())
}
