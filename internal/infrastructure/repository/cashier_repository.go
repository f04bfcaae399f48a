package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/yasserh/sultan-pos/internal/domain/entity"
	domainRepo "github.com/yasserh/sultan-pos/internal/domain/repository"
	"gorm.io/gorm"
)

type cashierRepository struct {
	db *gorm.DB
}

// NewCashierRepository creates a new cashier repository
func NewCashierRepository(db *gorm.DB) domainRepo.CashierRepository {
	return &cashierRepository{db: db}
}

func (r *cashierRepository) Create(ctx context.Context, cashier *entity.Cashier) error {
	return r.db.WithContext(ctx).Create(cashier).Error
}

func (r *cashierRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Cashier, error) {
	var cashier entity.Cashier
	err := r.db.WithContext(ctx).First(&cashier, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &cashier, err
}

func (r *cashierRepository) GetByUsername(ctx context.Context, username string) (*entity.Cashier, error) {
	var cashier entity.Cashier
	err := r.db.WithContext(ctx).First(&cashier, "username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &cashier, err
}
