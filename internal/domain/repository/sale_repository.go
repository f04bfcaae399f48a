package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yasserh/sultan-pos/internal/domain/entity"
	"github.com/yasserh/sultan-pos/internal/domain/enum"
	"github.com/yasserh/sultan-pos/pkg/pagination"
)

// SaleRepository persists finalized invoices. Open and held invoices
// never reach it; the POS session owns those until checkout succeeds.
type SaleRepository interface {
	// Create stores a finalized invoice together with its lines and, when
	// present, its cheque detail.
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByInvoiceNo(ctx context.Context, invoiceNo string) (*entity.Invoice, error)
	List(ctx context.Context, params *SaleFilterParams) ([]entity.Invoice, int64, error)
	// UpdateChequeStatus transitions the cheque attached to a sale.
	UpdateChequeStatus(ctx context.Context, invoiceNo string, status enum.ChequeStatus) error
}

// SaleFilterParams contains filtering parameters for sale queries
type SaleFilterParams struct {
	Pagination    *pagination.PaginationParams
	Search        string
	PaymentMethod *enum.PaymentMethod
	CashierID     *uuid.UUID
	StartDate     *time.Time
	EndDate       *time.Time
}

// CashierRepository defines the interface for cashier account lookups.
type CashierRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Cashier, error)
	GetByUsername(ctx context.Context, username string) (*entity.Cashier, error)
	Create(ctx context.Context, cashier *entity.Cashier) error
}

// IdempotencyRepository defines the interface for idempotency key operations
type IdempotencyRepository interface {
	// GetByKey retrieves an idempotency key by its key string and cashier ID
	GetByKey(ctx context.Context, key string, cashierID uuid.UUID) (*entity.IdempotencyKey, error)
	// Create stores a new idempotency key
	Create(ctx context.Context, ikey *entity.IdempotencyKey) error
	// DeleteExpired removes expired idempotency keys (for cleanup)
	DeleteExpired(ctx context.Context) error
}
