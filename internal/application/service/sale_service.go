package service

import (
	"context"

	"github.com/yasserh/sultan-pos/internal/domain/entity"
	"github.com/yasserh/sultan-pos/internal/domain/enum"
	"github.com/yasserh/sultan-pos/internal/domain/repository"
	"github.com/yasserh/sultan-pos/pkg/apperror"
	"github.com/yasserh/sultan-pos/pkg/pagination"
)

// SaleService exposes the finalized-sales history: listing, single sale
// lookup and cheque clearing. It never touches open or held invoices.
type SaleService struct {
	saleRepo repository.SaleRepository
}

// NewSaleService creates a new sale service.
func NewSaleService(saleRepo repository.SaleRepository) *SaleService {
	return &SaleService{saleRepo: saleRepo}
}

// ListSales returns finalized sales matching the filter.
func (s *SaleService) ListSales(ctx context.Context, params *repository.SaleFilterParams) (*pagination.PaginatedResult[entity.Invoice], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	sales, total, err := s.saleRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(sales, pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)), nil
}

// GetSale fetches a finalized sale by its invoice number.
func (s *SaleService) GetSale(ctx context.Context, invoiceNo string) (*entity.Invoice, error) {
	sale, err := s.saleRepo.GetByInvoiceNo(ctx, invoiceNo)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// UpdateChequeStatus marks the cheque on a sale Cleared or Bounced. The
// sale must have been paid by cheque.
func (s *SaleService) UpdateChequeStatus(ctx context.Context, invoiceNo string, status enum.ChequeStatus) (*entity.Invoice, error) {
	sale, err := s.saleRepo.GetByInvoiceNo(ctx, invoiceNo)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	if sale.Cheque == nil {
		return nil, apperror.NewBadRequestError("Sale was not paid by cheque")
	}

	if err := s.saleRepo.UpdateChequeStatus(ctx, invoiceNo, status); err != nil {
		return nil, err
	}
	sale.Cheque.Status = status
	return sale, nil
}
