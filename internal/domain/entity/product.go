package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product is catalog reference data. The POS core never mutates it;
// cart lines snapshot the name and selling price at add time.
type Product struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name         string         `gorm:"size:255;not null" json:"name"`
	Category     string         `gorm:"size:255;index" json:"category"`
	Barcode      string         `gorm:"size:100;unique;not null" json:"barcode"`
	SellingPrice int64          `gorm:"not null" json:"-"`  // Stored in cents, excluded from JSON
	CostPrice    int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Stock        int            `gorm:"default:0" json:"stock"`
	Unit         string         `gorm:"size:50;default:'pcs'" json:"unit"`
	ExpiryDate   *time.Time     `gorm:"type:date" json:"expiry_date,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (p Product) MarshalJSON() ([]byte, error) {
	type Alias Product
	return json.Marshal(&struct {
		Alias
		SellingPrice float64 `json:"selling_price"`
		CostPrice    float64 `json:"cost_price"`
	}{
		Alias:        Alias(p),
		SellingPrice: Decimal(p.SellingPrice),
		CostPrice:    Decimal(p.CostPrice),
	})
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// GetSellingPriceDecimal returns the selling price as a decimal (for display)
func (p *Product) GetSellingPriceDecimal() float64 {
	return Decimal(p.SellingPrice)
}

// SetSellingPriceFromDecimal sets the selling price from a decimal value
func (p *Product) SetSellingPriceFromDecimal(price float64) {
	p.SellingPrice = Cents(price)
}
