package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/yasserh/sultan-pos/internal/domain/enum"
	"gorm.io/gorm"
)

// Invoice is one customer transaction, from the first item added to
// payment finalization. While a sale is in progress the invoice lives in
// the cashier's session only; it reaches the database when finalized.
//
// SubTotal, TotalItemDiscount, Tax and GrandTotal are derived fields.
// They are recomputed by the POS core after every mutation and are never
// set independently.
type Invoice struct {
	ID              uuid.UUID          `gorm:"type:uuid;primary_key" json:"-"`
	InvoiceNo       string             `gorm:"size:100;unique;not null" json:"invoice_no"`
	Date            time.Time          `gorm:"not null" json:"date"`
	CashierID       uuid.UUID          `gorm:"type:uuid;index" json:"cashier_id"`
	Cashier         string             `gorm:"size:255" json:"cashier"`
	CustomerID      *uuid.UUID         `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	Status          enum.InvoiceStatus `gorm:"default:0" json:"status"`
	InvoiceDiscount int64              `gorm:"default:0" json:"-"` // Stored in cents, flat amount
	SubTotal        int64              `gorm:"default:0" json:"-"` // Stored in cents, derived
	TotalItemDiscount int64            `gorm:"default:0" json:"-"` // Stored in cents, derived
	Tax             int64              `gorm:"default:0" json:"-"` // Stored in cents, derived
	GrandTotal      int64              `gorm:"default:0" json:"-"` // Stored in cents, derived
	PaymentMethod   *enum.PaymentMethod `gorm:"type:smallint" json:"payment_method,omitempty"`
	AmountReceived  int64              `gorm:"default:0" json:"-"` // Cash only, stored in cents
	Change          int64              `gorm:"default:0" json:"-"` // Cash only, stored in cents
	PaidAmount      int64              `gorm:"default:0" json:"-"` // Credit partial payment, cents
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
	DeletedAt       gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Customer *Customer     `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Lines    []CartLine    `gorm:"foreignKey:InvoiceID" json:"lines"`
	Cheque   *ChequeDetail `gorm:"foreignKey:InvoiceID" json:"cheque,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (inv Invoice) MarshalJSON() ([]byte, error) {
	type Alias Invoice
	return json.Marshal(&struct {
		Alias
		InvoiceDiscount   float64 `json:"invoice_discount"`
		SubTotal          float64 `json:"sub_total"`
		TotalItemDiscount float64 `json:"total_item_discount"`
		Tax               float64 `json:"tax"`
		GrandTotal        float64 `json:"grand_total"`
		AmountReceived    float64 `json:"amount_received"`
		Change            float64 `json:"change"`
		PaidAmount        float64 `json:"paid_amount"`
	}{
		Alias:             Alias(inv),
		InvoiceDiscount:   Decimal(inv.InvoiceDiscount),
		SubTotal:          Decimal(inv.SubTotal),
		TotalItemDiscount: Decimal(inv.TotalItemDiscount),
		Tax:               Decimal(inv.Tax),
		GrandTotal:        Decimal(inv.GrandTotal),
		AmountReceived:    Decimal(inv.AmountReceived),
		Change:            Decimal(inv.Change),
		PaidAmount:        Decimal(inv.PaidAmount),
	})
}

// BeforeCreate generates a UUID before creating a new invoice
func (inv *Invoice) BeforeCreate(tx *gorm.DB) error {
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// IsFinalized reports whether the invoice has been finalized. A finalized
// invoice is immutable; callers must start a new sale to continue.
func (inv *Invoice) IsFinalized() bool {
	return inv.Status == enum.InvoiceFinalized
}

// IsEmpty reports whether the invoice has no lines.
func (inv *Invoice) IsEmpty() bool {
	return len(inv.Lines) == 0
}

// LineFor returns the index of the cart line for the given product, or -1.
func (inv *Invoice) LineFor(productID uuid.UUID) int {
	for i := range inv.Lines {
		if inv.Lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// CartLine is one product entry within an invoice. Name, unit and unit
// price are snapshots taken when the line is added, so later catalog
// price changes do not alter an open invoice. Quantity is always >= 1; a
// request to set it lower removes the line instead.
type CartLine struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"-"`
	InvoiceID uuid.UUID      `gorm:"type:uuid;index" json:"-"`
	ProductID uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Unit      string         `gorm:"size:50" json:"unit"`
	Quantity  int            `gorm:"not null" json:"quantity"`
	UnitPrice int64          `gorm:"not null" json:"-"`  // Stored in cents, snapshot
	Total     int64          `gorm:"not null" json:"-"`  // Stored in cents, unitPrice x quantity
	Discount  int64          `gorm:"default:0" json:"-"` // Stored in cents, per unit
	Position  int            `gorm:"not null" json:"-"`  // Insertion order = display and receipt order
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (l CartLine) MarshalJSON() ([]byte, error) {
	type Alias CartLine
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		Total     float64 `json:"total"`
		Discount  float64 `json:"discount"`
	}{
		Alias:     Alias(l),
		UnitPrice: Decimal(l.UnitPrice),
		Total:     Decimal(l.Total),
		Discount:  Decimal(l.Discount),
	})
}

// BeforeCreate generates a UUID before creating a new cart line
func (l *CartLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CartLine model
func (CartLine) TableName() string {
	return "invoice_lines"
}

// ChequeDetail records the cheque backing a sale finalized with the
// Cheque payment method, so its clearing can be tracked afterwards.
type ChequeDetail struct {
	ID           uuid.UUID         `gorm:"type:uuid;primary_key" json:"-"`
	InvoiceID    uuid.UUID         `gorm:"type:uuid;uniqueIndex" json:"-"`
	ChequeNumber string            `gorm:"size:100" json:"cheque_number"`
	BankName     string            `gorm:"size:255" json:"bank_name"`
	Amount       int64             `gorm:"not null" json:"-"` // Stored in cents
	DueDate      time.Time         `gorm:"type:date" json:"due_date"`
	Status       enum.ChequeStatus `gorm:"default:0" json:"status"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (c ChequeDetail) MarshalJSON() ([]byte, error) {
	type Alias ChequeDetail
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(c),
		Amount: Decimal(c.Amount),
	})
}

// BeforeCreate generates a UUID before creating a new cheque detail
func (c *ChequeDetail) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ChequeDetail model
func (ChequeDetail) TableName() string {
	return "cheque_details"
}
