package request

import "github.com/google/uuid"

// All monetary amounts in request bodies are decimals (e.g. 12.50);
// handlers convert to cents at the boundary.

// AddLineRequest adds a product to the open invoice
type AddLineRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
}

// UpdateQuantityRequest sets the quantity of a cart line
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateLineDiscountRequest sets the per-unit discount on a cart line
type UpdateLineDiscountRequest struct {
	Discount float64 `json:"discount"`
}

// InvoiceDiscountRequest sets the flat invoice-level discount
type InvoiceDiscountRequest struct {
	Amount float64 `json:"amount"`
}

// SetCustomerRequest attaches a customer to the open invoice
type SetCustomerRequest struct {
	CustomerID uuid.UUID `json:"customer_id" binding:"required"`
}

// RestoreRequest brings a held invoice back
type RestoreRequest struct {
	InvoiceNo string `json:"invoice_no" binding:"required"`
}

// ChequeRequest describes the cheque backing a cheque sale
type ChequeRequest struct {
	ChequeNumber string  `json:"cheque_number" binding:"required"`
	BankName     string  `json:"bank_name"`
	Amount       float64 `json:"amount"`
	DueDate      string  `json:"due_date"` // YYYY-MM-DD
}

// CheckoutRequest finalizes the open invoice
type CheckoutRequest struct {
	PaymentMethod  string         `json:"payment_method" binding:"required"`
	AmountReceived float64        `json:"amount_received"`
	PaidAmount     float64        `json:"paid_amount"`
	Cheque         *ChequeRequest `json:"cheque"`
}

// ChequeStatusRequest transitions the cheque on a finalized sale
type ChequeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
