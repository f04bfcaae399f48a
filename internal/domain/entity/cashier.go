package entity

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Cashier is the authenticated operator of a POS terminal. The cashier's
// display name is stamped on every invoice the terminal produces.
type Cashier struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Username  string         `gorm:"size:255;unique;not null" json:"username"`
	Password  string         `gorm:"size:255" json:"-"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// SetPassword hashes and stores the given plaintext password.
func (c *Cashier) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	c.Password = string(hash)
	return nil
}

// CheckPassword compares a plaintext password against the stored hash.
func (c *Cashier) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(c.Password), []byte(plain)) == nil
}

// BeforeCreate generates a UUID before creating a new cashier
func (c *Cashier) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Cashier model
func (Cashier) TableName() string {
	return "cashiers"
}
