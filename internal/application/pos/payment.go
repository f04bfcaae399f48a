package pos

import (
	"fmt"

	"github.com/yasserh/sultan-pos/internal/domain/entity"
	"github.com/yasserh/sultan-pos/internal/domain/enum"
)

// RejectReason identifies why a finalization attempt was refused. The set
// is closed; handlers translate reasons into HTTP responses and the UI
// into operator messages.
type RejectReason string

const (
	ReasonEmptyInvoice           RejectReason = "EMPTY_INVOICE"
	ReasonCreditRequiresCustomer RejectReason = "CREDIT_REQUIRES_REGISTERED_CUSTOMER"
	ReasonInsufficientCash       RejectReason = "INSUFFICIENT_CASH_RECEIVED"
	ReasonNegativePayment        RejectReason = "NEGATIVE_PAYMENT_AMOUNT"
	ReasonUnknownMethod          RejectReason = "UNKNOWN_PAYMENT_METHOD"
)

// Rejection is a payment validation failure. It is an ordinary error, not
// a fault: the invoice stays open and editable after a rejection.
type Rejection struct {
	Reason  RejectReason
	Message string
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("payment rejected (%s): %s", r.Reason, r.Message)
}

func reject(reason RejectReason, message string) *Rejection {
	return &Rejection{Reason: reason, Message: message}
}

// PaymentContext carries the method-specific data supplied at checkout.
// All amounts are cents.
type PaymentContext struct {
	// AmountReceived is the cash handed over (Cash only).
	AmountReceived int64
	// PaidAmount is an up-front partial payment on a credit sale. Zero
	// means fully on account.
	PaidAmount int64
	// Cheque describes the cheque backing a Cheque sale, when provided.
	Cheque *entity.ChequeDetail
}

// ValidatePayment checks whether the invoice may be finalized with the
// given method. Rules are evaluated in order and the first failure wins:
//
//  1. the invoice must have at least one line;
//  2. Credit requires a registered (non walk-in) customer;
//  3. Cash requires AmountReceived >= GrandTotal;
//  4. a Credit partial payment must not be negative.
//
// Card and Cheque carry no preconditions beyond rule 1. The validator has
// no side effects; applying the result is the caller's job.
func ValidatePayment(inv *entity.Invoice, method enum.PaymentMethod, pc PaymentContext) error {
	if !method.IsValid() {
		return reject(ReasonUnknownMethod, fmt.Sprintf("payment method %d is not recognized", method))
	}
	if inv.IsEmpty() {
		return reject(ReasonEmptyInvoice, "invoice has no lines")
	}

	switch method {
	case enum.PaymentCredit:
		if inv.Customer == nil || inv.Customer.IsCashCustomer() {
			return reject(ReasonCreditRequiresCustomer, "credit sales require a registered customer")
		}
		if pc.PaidAmount < 0 {
			return reject(ReasonNegativePayment, "paid amount cannot be negative")
		}
	case enum.PaymentCash:
		if pc.AmountReceived < inv.GrandTotal {
			return reject(ReasonInsufficientCash,
				fmt.Sprintf("received %.2f but grand total is %.2f",
					entity.Decimal(pc.AmountReceived), entity.Decimal(inv.GrandTotal)))
		}
	}

	return nil
}
