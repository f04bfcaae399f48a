package service

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/yasserh/sultan-pos/internal/domain/entity"
	"github.com/yasserh/sultan-pos/internal/domain/repository"
	"github.com/yasserh/sultan-pos/pkg/apperror"
	"github.com/yasserh/sultan-pos/pkg/pagination"
)

// CatalogService resolves products and customers for the POS screens.
//
// Product search is the one operation that may suspend on a slow
// backend, so results racing each other are a real hazard: if the
// cashier types "co" then "cola" and the "co" response lands last, the
// terminal must not act on it. Each search carries a client-assigned,
// per-terminal monotonic sequence number; a search that has been
// superseded by a higher sequence is answered with a stale error instead
// of its (out-of-date) results.
type CatalogService struct {
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository

	mu     sync.Mutex
	latest map[uuid.UUID]uint64
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(productRepo repository.ProductRepository, customerRepo repository.CustomerRepository) *CatalogService {
	return &CatalogService{
		productRepo:  productRepo,
		customerRepo: customerRepo,
		latest:       make(map[uuid.UUID]uint64),
	}
}

// ErrStaleSearch marks a search superseded by a newer one from the same
// terminal.
var ErrStaleSearch = apperror.NewAppError(409, "Search superseded by a newer request")

// claim registers seq for the terminal and reports whether it is still
// the newest. seq 0 opts out of sequencing (single-shot callers).
func (s *CatalogService) claim(terminalID uuid.UUID, seq uint64) bool {
	if seq == 0 {
		return true
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq < s.latest[terminalID] {
		return false
	}
	s.latest[terminalID] = seq
	return true
}

// stale reports whether seq has been overtaken while the lookup ran.
func (s *CatalogService) stale(terminalID uuid.UUID, seq uint64) bool {
	if seq == 0 {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return seq < s.latest[terminalID]
}

// FindProduct resolves a product by barcode or name substring for the
// given terminal and search sequence. A miss is a NotFound error, not an
// empty success; a lookup failure is surfaced as-is.
func (s *CatalogService) FindProduct(ctx context.Context, terminalID uuid.UUID, seq uint64, query string) (*entity.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperror.NewBadRequestError("Search term is required")
	}
	if !s.claim(terminalID, seq) {
		return nil, ErrStaleSearch
	}

	product, err := s.productRepo.FindByBarcodeOrName(ctx, query)
	if err != nil {
		return nil, err
	}

	// The repository call may have suspended; discard results a newer
	// search has overtaken rather than letting last-resolved win.
	if s.stale(terminalID, seq) {
		return nil, ErrStaleSearch
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// GetProduct fetches a product by id.
func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts lists catalog products with optional name/barcode search.
func (s *CatalogService) ListProducts(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Product], error) {
	params.Validate()
	products, total, err := s.productRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(products, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

// ListCustomers lists customers for the selection UI.
func (s *CatalogService) ListCustomers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Customer], error) {
	params.Validate()
	customers, total, err := s.customerRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(customers, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}
