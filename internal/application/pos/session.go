// Package pos implements the checkout core: the invoice state machine,
// the totals engine and the payment validator. It is framework-free and
// owns no I/O beyond the customer lookup collaborator; the HTTP layer is
// a thin dispatcher over a Session.
package pos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/yasserh/sultan-pos/internal/domain/entity"
	"github.com/yasserh/sultan-pos/internal/domain/enum"
	"github.com/yasserh/sultan-pos/pkg/utils"
)

// Contract errors. These indicate a caller bug or a refused transition,
// never a fault: session state is left exactly as it was.
var (
	// ErrInvoiceFinalized is returned when a mutation is attempted on a
	// finalized invoice. Start a new sale to continue.
	ErrInvoiceFinalized = errors.New("pos: invoice is finalized and immutable")
	// ErrHeldInvoiceNotFound is returned by Restore for an unknown id.
	ErrHeldInvoiceNotFound = errors.New("pos: held invoice not found")
	// ErrNothingToHold is returned by Hold on an invoice with no lines.
	ErrNothingToHold = errors.New("pos: cannot hold an empty invoice")
	// ErrNoProduct is returned by AddLine when the product is missing.
	ErrNoProduct = errors.New("pos: no product to add")
)

// CustomerLookup is the slice of the customer collaborator the session
// needs. Lookups take a context and may fail; an infrastructure error is
// surfaced to the caller, a plain miss is (nil, nil).
type CustomerLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
}

// Config configures a checkout session for one cashier terminal.
type Config struct {
	CashierID   uuid.UUID
	CashierName string
	// TaxRate is the fractional tax rate applied to the discounted
	// subtotal, e.g. 0.15.
	TaxRate float64
	// InvoicePrefix defaults to "INV".
	InvoicePrefix string
	// CashCustomer is the walk-in sentinel every new invoice defaults to.
	// May be nil, in which case new invoices start with no customer.
	CashCustomer *entity.Customer
}

// Session owns the current open invoice and the held-invoice stack for a
// single cashier terminal. It is the explicit form of the checkout state
// the POS screen works against: every mutator recomputes totals before
// returning, so callers always observe a fully consistent invoice.
//
// A Session is exclusively owned by one terminal and is not safe for
// concurrent use; the service layer serializes access per terminal.
type Session struct {
	cfg       Config
	customers CustomerLookup
	current   *entity.Invoice
	held      []*entity.Invoice
	issued    map[string]struct{}
}

// NewSession creates a session with a fresh empty invoice.
func NewSession(cfg Config, customers CustomerLookup) *Session {
	if cfg.InvoicePrefix == "" {
		cfg.InvoicePrefix = "INV"
	}
	s := &Session{
		cfg:       cfg,
		customers: customers,
		issued:    make(map[string]struct{}),
	}
	s.current = s.newInvoice()
	return s
}

// newInvoice builds an empty invoice for this cashier, numbered uniquely
// within the session and defaulting to the cash customer.
func (s *Session) newInvoice() *entity.Invoice {
	no := utils.GenerateInvoiceNo(s.cfg.InvoicePrefix)
	for {
		if _, dup := s.issued[no]; !dup {
			break
		}
		no = utils.GenerateInvoiceNo(s.cfg.InvoicePrefix)
	}
	s.issued[no] = struct{}{}

	inv := &entity.Invoice{
		InvoiceNo: no,
		Date:      time.Now(),
		CashierID: s.cfg.CashierID,
		Cashier:   s.cfg.CashierName,
		Status:    enum.InvoiceOpen,
		Lines:     []entity.CartLine{},
	}
	if s.cfg.CashCustomer != nil {
		c := *s.cfg.CashCustomer
		inv.Customer = &c
		inv.CustomerID = &c.ID
	}
	return inv
}

// Current returns the invoice the terminal is working on. Callers must
// treat it as read-only; all mutation goes through the session.
func (s *Session) Current() *entity.Invoice {
	return s.current
}

// Held returns the held invoices in the order they were parked.
func (s *Session) Held() []*entity.Invoice {
	out := make([]*entity.Invoice, len(s.held))
	copy(out, s.held)
	return out
}

func (s *Session) guard() error {
	if s.current.IsFinalized() {
		return ErrInvoiceFinalized
	}
	return nil
}

func (s *Session) recompute() {
	ComputeTotals(s.current.Lines, s.current.InvoiceDiscount, s.cfg.TaxRate).Apply(s.current)
}

// AddLine adds one unit of the product to the invoice. If a line for the
// product already exists its quantity is incremented instead; otherwise a
// new line is appended with the product's current name, unit and price
// snapshotted so later catalog changes leave the invoice untouched.
func (s *Session) AddLine(product *entity.Product, unit string) (*entity.Invoice, error) {
	if err := s.guard(); err != nil {
		return s.current, err
	}
	if product == nil {
		return s.current, ErrNoProduct
	}

	if i := s.current.LineFor(product.ID); i >= 0 {
		return s.UpdateQuantity(product.ID, s.current.Lines[i].Quantity+1)
	}

	if unit == "" {
		unit = product.Unit
	}
	s.current.Lines = append(s.current.Lines, entity.CartLine{
		ProductID: product.ID,
		Name:      product.Name,
		Unit:      unit,
		Quantity:  1,
		UnitPrice: product.SellingPrice,
		Total:     product.SellingPrice,
		Position:  len(s.current.Lines),
	})
	s.recompute()
	return s.current, nil
}

// UpdateQuantity sets a line's quantity. A quantity below 1 removes the
// line rather than storing an invalid value. Unknown product ids are a
// no-op.
func (s *Session) UpdateQuantity(productID uuid.UUID, qty int) (*entity.Invoice, error) {
	if err := s.guard(); err != nil {
		return s.current, err
	}
	if qty < 1 {
		return s.RemoveLine(productID)
	}

	i := s.current.LineFor(productID)
	if i < 0 {
		return s.current, nil
	}
	s.current.Lines[i].Quantity = qty
	s.current.Lines[i].Total = s.current.Lines[i].UnitPrice * int64(qty)
	s.recompute()
	return s.current, nil
}

// UpdateLineDiscount sets a line's per-unit discount, floored at zero.
// Unknown product ids are a no-op.
func (s *Session) UpdateLineDiscount(productID uuid.UUID, discount int64) (*entity.Invoice, error) {
	if err := s.guard(); err != nil {
		return s.current, err
	}
	i := s.current.LineFor(productID)
	if i < 0 {
		return s.current, nil
	}
	if discount < 0 {
		discount = 0
	}
	s.current.Lines[i].Discount = discount
	s.recompute()
	return s.current, nil
}

// RemoveLine removes the line for the product. Removing an absent line
// is a no-op, so the operation is idempotent.
func (s *Session) RemoveLine(productID uuid.UUID) (*entity.Invoice, error) {
	if err := s.guard(); err != nil {
		return s.current, err
	}
	i := s.current.LineFor(productID)
	if i < 0 {
		return s.current, nil
	}
	s.current.Lines = append(s.current.Lines[:i], s.current.Lines[i+1:]...)
	// Positions mirror slice order; close the gap so the next AddLine
	// cannot reuse a removed line's position.
	for j := range s.current.Lines {
		s.current.Lines[j].Position = j
	}
	s.recompute()
	return s.current, nil
}

// SetInvoiceDiscount stores the flat invoice-level discount. The value is
// stored as given; negative amounts are kept, matching the reference
// checkout behavior.
func (s *Session) SetInvoiceDiscount(amount int64) (*entity.Invoice, error) {
	if err := s.guard(); err != nil {
		return s.current, err
	}
	s.current.InvoiceDiscount = amount
	s.recompute()
	return s.current, nil
}

// SetCustomer resolves the customer id and attaches the customer to the
// invoice. An unresolvable id clears the customer, which payment
// validation treats as cash-customer semantics. A lookup failure is
// surfaced to the caller and changes nothing.
func (s *Session) SetCustomer(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	if err := s.guard(); err != nil {
		return s.current, err
	}
	customer, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return s.current, err
	}
	s.current.Customer = customer
	if customer != nil {
		s.current.CustomerID = &customer.ID
	} else {
		s.current.CustomerID = nil
	}
	s.recompute()
	return s.current, nil
}

// Hold parks the current invoice on the held stack and starts a fresh
// empty invoice for the same cashier. Holding an empty invoice is
// refused and changes nothing.
func (s *Session) Hold() (*entity.Invoice, error) {
	if err := s.guard(); err != nil {
		return s.current, err
	}
	if s.current.IsEmpty() {
		return s.current, ErrNothingToHold
	}
	s.current.Status = enum.InvoiceHeld
	s.held = append(s.held, s.current)
	s.current = s.newInvoice()
	return s.current, nil
}

// Restore pops the held invoice with the given number back to current,
// discarding whatever was current. Callers that want to keep the current
// invoice must hold it first. An unknown number is an error and leaves
// all state untouched.
func (s *Session) Restore(invoiceNo string) (*entity.Invoice, error) {
	for i := range s.held {
		if s.held[i].InvoiceNo == invoiceNo {
			inv := s.held[i]
			s.held = append(s.held[:i], s.held[i+1:]...)
			inv.Status = enum.InvoiceOpen
			s.current = inv
			return s.current, nil
		}
	}
	return s.current, ErrHeldInvoiceNotFound
}

// StartNewSale discards the current invoice unconditionally and starts a
// fresh one. No confirmation happens at this level; that is a UI concern.
func (s *Session) StartNewSale() *entity.Invoice {
	s.current = s.newInvoice()
	return s.current
}

// Finalize validates the payment and, on success, stamps the method and
// its context onto the invoice and marks it finalized. On rejection the
// invoice stays open and editable and the typed rejection is returned.
//
// Finalization here is in-memory only. The caller persists the result
// and, should persistence fail, calls Reopen so the sale is never left
// half-finalized.
func (s *Session) Finalize(method enum.PaymentMethod, pc PaymentContext) (*entity.Invoice, error) {
	if err := s.guard(); err != nil {
		return s.current, err
	}
	if err := ValidatePayment(s.current, method, pc); err != nil {
		return s.current, err
	}

	inv := s.current
	inv.PaymentMethod = &method
	switch method {
	case enum.PaymentCash:
		inv.AmountReceived = pc.AmountReceived
		inv.Change = pc.AmountReceived - inv.GrandTotal
	case enum.PaymentCredit:
		inv.PaidAmount = pc.PaidAmount
	case enum.PaymentCheque:
		if pc.Cheque != nil {
			cheque := *pc.Cheque
			if cheque.Amount == 0 {
				cheque.Amount = inv.GrandTotal
			}
			cheque.Status = enum.ChequePending
			inv.Cheque = &cheque
		}
	}
	inv.Status = enum.InvoiceFinalized
	return inv, nil
}

// Reopen reverts a finalized-in-memory invoice back to open. It exists
// for the persistence failure path of Finalize and is a no-op otherwise.
func (s *Session) Reopen() *entity.Invoice {
	if !s.current.IsFinalized() {
		return s.current
	}
	s.current.Status = enum.InvoiceOpen
	s.current.PaymentMethod = nil
	s.current.AmountReceived = 0
	s.current.Change = 0
	s.current.PaidAmount = 0
	s.current.Cheque = nil
	return s.current
}
