package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yasserh/sultan-pos/internal/domain/entity"
	"github.com/yasserh/sultan-pos/pkg/pagination"
)

// ProductRepository defines the interface for product lookups. The POS
// core treats it as an external collaborator: lookups take a context and
// may fail or time out; a miss is reported as (nil, nil), never silently
// swallowed.
type ProductRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	// FindByBarcodeOrName resolves a product by exact barcode match first,
	// then by case-insensitive name substring. Returns (nil, nil) when
	// nothing matches.
	FindByBarcodeOrName(ctx context.Context, query string) (*entity.Product, error)
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Product, int64, error)
	Create(ctx context.Context, product *entity.Product) error
}

// CustomerRepository defines the interface for customer lookups.
type CustomerRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	// GetCashCustomer returns the walk-in sentinel customer.
	GetCashCustomer(ctx context.Context) (*entity.Customer, error)
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error)
	Create(ctx context.Context, customer *entity.Customer) error
}
