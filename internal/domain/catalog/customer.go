package catalog

import (
	"strings"
	"time"

	"github.com/dairyops/backend/internal/domain/shared"
)

// Customer is one billed party. Phone numbers are unique and act as the
// practical customer identifier at the counter.
type Customer struct {
	shared.BaseEntity
	Name     string `gorm:"type:varchar(128);not null"`
	Phone    string `gorm:"type:varchar(32);not null;uniqueIndex"`
	IsActive bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates an active customer
func NewCustomer(name, phone string) (*Customer, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)

	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	if phone == "" {
		return nil, shared.NewDomainError("INVALID_PHONE", "Customer phone cannot be empty")
	}

	return &Customer{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Phone:      phone,
		IsActive:   true,
	}, nil
}

// Deactivate retires the customer
func (c *Customer) Deactivate() {
	c.IsActive = false
	c.UpdatedAt = time.Now()
}
