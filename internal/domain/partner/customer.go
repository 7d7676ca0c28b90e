package partner

import (
	"strings"

	"github.com/aguulga/backend/internal/domain/shared"
)

// Customer represents a customer of the warehouse/POS system
type Customer struct {
	shared.BaseAggregateRoot
	Name        string `gorm:"type:varchar(200);not null"`
	PhoneNumber string `gorm:"type:varchar(30);index"`
	Address     string `gorm:"type:varchar(500)"`
	// LegacyCustomerID is the customer's identifier on Weve, when known.
	LegacyCustomerID *int64 `gorm:"index"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer
func NewCustomer(name, phoneNumber, address string) (*Customer, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}

	return &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		PhoneNumber:       phoneNumber,
		Address:           address,
	}, nil
}
