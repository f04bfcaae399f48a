package service

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/yasserh/sultan-pos/internal/application/pos"
	"github.com/yasserh/sultan-pos/internal/domain/entity"
	"github.com/yasserh/sultan-pos/internal/domain/enum"
	"github.com/yasserh/sultan-pos/internal/domain/repository"
	"github.com/yasserh/sultan-pos/pkg/apperror"
)

// CheckoutService hosts one pos.Session per cashier terminal and wires
// finalized invoices into persistence. All session access is serialized
// per terminal: the POS core is single-owner state and must never see
// two mutations racing.
type CheckoutService struct {
	customerRepo  repository.CustomerRepository
	saleRepo      repository.SaleRepository
	taxRate       float64
	invoicePrefix string

	mu       sync.Mutex
	sessions map[uuid.UUID]*terminalSession
}

type terminalSession struct {
	mu      sync.Mutex
	session *pos.Session
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(
	customerRepo repository.CustomerRepository,
	saleRepo repository.SaleRepository,
	taxRate float64,
	invoicePrefix string,
) *CheckoutService {
	return &CheckoutService{
		customerRepo:  customerRepo,
		saleRepo:      saleRepo,
		taxRate:       taxRate,
		invoicePrefix: invoicePrefix,
		sessions:      make(map[uuid.UUID]*terminalSession),
	}
}

// Terminal identifies the cashier driving a session.
type Terminal struct {
	CashierID   uuid.UUID
	CashierName string
}

// acquire returns the locked session for the terminal, creating it on
// first use. The caller must release() when done.
func (s *CheckoutService) acquire(ctx context.Context, t Terminal) (*terminalSession, error) {
	s.mu.Lock()
	ts, ok := s.sessions[t.CashierID]
	s.mu.Unlock()
	if ok {
		ts.mu.Lock()
		return ts, nil
	}

	// First touch: resolve the walk-in sentinel before building the
	// session so new invoices default to it.
	cash, err := s.customerRepo.GetCashCustomer(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if ts, ok = s.sessions[t.CashierID]; !ok {
		ts = &terminalSession{session: pos.NewSession(pos.Config{
			CashierID:     t.CashierID,
			CashierName:   t.CashierName,
			TaxRate:       s.taxRate,
			InvoicePrefix: s.invoicePrefix,
			CashCustomer:  cash,
		}, s.customerRepo)}
		s.sessions[t.CashierID] = ts
	}
	ts.mu.Lock()
	return ts, nil
}

func (ts *terminalSession) release() {
	ts.mu.Unlock()
}

// CurrentInvoice returns the invoice the terminal is working on.
func (s *CheckoutService) CurrentInvoice(ctx context.Context, t Terminal) (*entity.Invoice, error) {
	ts, err := s.acquire(ctx, t)
	if err != nil {
		return nil, err
	}
	defer ts.release()
	return ts.session.Current(), nil
}

// HeldInvoices returns the terminal's held invoices in hold order.
func (s *CheckoutService) HeldInvoices(ctx context.Context, t Terminal) ([]*entity.Invoice, error) {
	ts, err := s.acquire(ctx, t)
	if err != nil {
		return nil, err
	}
	defer ts.release()
	return ts.session.Held(), nil
}

// AddLine adds a product to the terminal's open invoice.
func (s *CheckoutService) AddLine(ctx context.Context, t Terminal, product *entity.Product, unit string) (*entity.Invoice, error) {
	ts, err := s.acquire(ctx, t)
	if err != nil {
		return nil, err
	}
	defer ts.release()
	inv, err := ts.session.AddLine(product, unit)
	return inv, translatePosError(err)
}

// UpdateQuantity sets a line quantity; below 1 removes the line.
func (s *CheckoutService) UpdateQuantity(ctx context.Context, t Terminal, productID uuid.UUID, qty int) (*entity.Invoice, error) {
	ts, err := s.acquire(ctx, t)
	if err != nil {
		return nil, err
	}
	defer ts.release()
	inv, err := ts.session.UpdateQuantity(productID, qty)
	return inv, translatePosError(err)
}

// UpdateLineDiscount sets a per-unit line discount, floored at zero.
func (s *CheckoutService) UpdateLineDiscount(ctx context.Context, t Terminal, productID uuid.UUID, discount int64) (*entity.Invoice, error) {
	ts, err := s.acquire(ctx, t)
	if err != nil {
		return nil, err
	}
	defer ts.release()
	inv, err := ts.session.UpdateLineDiscount(productID, discount)
	return inv, translatePosError(err)
}

// RemoveLine removes a line; absent lines are a no-op.
func (s *CheckoutService) RemoveLine(ctx context.Context, t Terminal, productID uuid.UUID) (*entity.Invoice, error) {
	ts, err := s.acquire(ctx, t)
	if err != nil {
		return nil, err
	}
	defer ts.release()
	inv, err := ts.session.RemoveLine(productID)
	return inv, translatePosError(err)
}

// SetInvoiceDiscount stores the flat invoice-level discount.
func (s *CheckoutService) SetInvoiceDiscount(ctx context.Context, t Terminal, amount int64) (*entity.Invoice, error) {
	ts, err := s.acquire(ctx, t)
	if err != nil {
		return nil, err
	}
	defer ts.release()
	inv, err := ts.session.SetInvoiceDiscount(amount)
	return inv, translatePosError(err)
}

// SetCustomer attaches a customer to the open invoice.
func (s *CheckoutService) SetCustomer(ctx context.Context, t Terminal, customerID uuid.UUID) (*entity.Invoice, error) {
	ts, err := s.acquire(ctx, t)
	if err != nil {
		return nil, err
	}
	defer ts.release()
	inv, err := ts.session.SetCustomer(ctx, customerID)
	return inv, translatePosError(err)
}

// Hold parks the open invoice and starts a fresh one.
func (s *CheckoutService) Hold(ctx context.Context, t Terminal) (*entity.Invoice, error) {
	ts, err := s.acquire(ctx, t)
	if err != nil {
		return nil, err
	}
	defer ts.release()
	inv, err := ts.session.Hold()
	return inv, translatePosError(err)
}

// Restore brings a held invoice back, discarding the current one.
func (s *CheckoutService) Restore(ctx context.Context, t Terminal, invoiceNo string) (*entity.Invoice, error) {
	ts, err := s.acquire(ctx, t)
	if err != nil {
		return nil, err
	}
	defer ts.release()
	inv, err := ts.session.Restore(invoiceNo)
	return inv, translatePosError(err)
}

// StartNewSale discards the current invoice and begins a fresh one.
func (s *CheckoutService) StartNewSale(ctx context.Context, t Terminal) (*entity.Invoice, error) {
	ts, err := s.acquire(ctx, t)
	if err != nil {
		return nil, err
	}
	defer ts.release()
	return ts.session.StartNewSale(), nil
}

// Checkout validates the payment, finalizes the invoice and persists it.
// On a validation rejection the invoice stays open and the typed reason
// is returned. On a persistence failure (including ctx timeout) the
// invoice is reopened, never left half-finalized.
func (s *CheckoutService) Checkout(ctx context.Context, t Terminal, method enum.PaymentMethod, pc pos.PaymentContext) (*entity.Invoice, error) {
	ts, err := s.acquire(ctx, t)
	if err != nil {
		return nil, err
	}
	defer ts.release()

	inv, err := ts.session.Finalize(method, pc)
	if err != nil {
		return inv, translatePosError(err)
	}

	if err := s.saleRepo.Create(ctx, inv); err != nil {
		ts.session.Reopen()
		return ts.session.Current(), err
	}

	// The sale is safely stored; move the terminal to a fresh invoice.
	ts.session.StartNewSale()
	return inv, nil
}

// translatePosError maps core contract errors and payment rejections to
// the HTTP error taxonomy. Infrastructure errors pass through.
func translatePosError(err error) error {
	if err == nil {
		return nil
	}

	var rej *pos.Rejection
	if errors.As(err, &rej) {
		return apperror.NewRejectionError(string(rej.Reason), rej.Message)
	}

	switch {
	case errors.Is(err, pos.ErrInvoiceFinalized):
		return apperror.NewConflictError("Invoice is finalized; start a new sale to continue")
	case errors.Is(err, pos.ErrHeldInvoiceNotFound):
		return apperror.NewNotFoundError("Held invoice")
	case errors.Is(err, pos.ErrNothingToHold):
		return apperror.NewBadRequestError("Cannot hold an empty invoice")
	case errors.Is(err, pos.ErrNoProduct):
		return apperror.NewBadRequestError("No product to add")
	}
	return err
}
