package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer represents a registered customer. Exactly one customer per
// installation carries the WalkIn flag: the "cash customer" sentinel that
// anonymous sales default to. That sentinel is ineligible for credit.
type Customer struct {
	ID              uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name            string         `gorm:"size:255;not null" json:"name"`
	Phone           *string        `gorm:"size:50" json:"phone,omitempty"`
	PreviousBalance int64          `gorm:"default:0" json:"-"` // Stored in cents, may be negative
	WalkIn          bool           `gorm:"default:false;index" json:"walk_in"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Invoices []Invoice `gorm:"foreignKey:CustomerID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (c Customer) MarshalJSON() ([]byte, error) {
	type Alias Customer
	return json.Marshal(&struct {
		Alias
		PreviousBalance float64 `json:"previous_balance"`
	}{
		Alias:           Alias(c),
		PreviousBalance: Decimal(c.PreviousBalance),
	})
}

// IsCashCustomer reports whether this customer is the walk-in sentinel.
func (c *Customer) IsCashCustomer() bool {
	return c != nil && c.WalkIn
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}
