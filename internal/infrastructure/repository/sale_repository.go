package repository

import (
	"context"
	"errors"

	"github.com/yasserh/sultan-pos/internal/domain/entity"
	"github.com/yasserh/sultan-pos/internal/domain/enum"
	domainRepo "github.com/yasserh/sultan-pos/internal/domain/repository"
	"gorm.io/gorm"
)

type saleRepository struct {
	db *gorm.DB
}

// lineOrder restores the ringing-up order when loading a stored sale.
func lineOrder(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *gorm.DB) domainRepo.SaleRepository {
	return &saleRepository{db: db}
}

// Create stores the invoice, its lines and any cheque detail in one
// transaction. GORM cascades the associations from the struct.
func (r *saleRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(invoice).Error
	})
}

func (r *saleRepository) GetByInvoiceNo(ctx context.Context, invoiceNo string) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).
		Preload("Customer").Preload("Lines", lineOrder).Preload("Cheque").
		First(&invoice, "invoice_no = ?", invoiceNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *saleRepository) List(ctx context.Context, params *domainRepo.SaleFilterParams) ([]entity.Invoice, int64, error) {
	var invoices []entity.Invoice
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Invoice{}).
		Where("status = ?", enum.InvoiceFinalized)

	if params.Search != "" {
		query = query.Where("invoice_no ILIKE ?", "%"+params.Search+"%")
	}
	if params.PaymentMethod != nil {
		query = query.Where("payment_method = ?", *params.PaymentMethod)
	}
	if params.CashierID != nil {
		query = query.Where("cashier_id = ?", *params.CashierID)
	}
	if params.StartDate != nil {
		query = query.Where("date >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Customer").Preload("Lines", lineOrder).Preload("Cheque").
		Order("date DESC").
		Find(&invoices).Error

	return invoices, total, err
}

func (r *saleRepository) UpdateChequeStatus(ctx context.Context, invoiceNo string, status enum.ChequeStatus) error {
	var invoice entity.Invoice
	if err := r.db.WithContext(ctx).
		Select("id").First(&invoice, "invoice_no = ?", invoiceNo).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(&entity.ChequeDetail{}).
		Where("invoice_id = ?", invoice.ID).
		Update("status", status).Error
}
