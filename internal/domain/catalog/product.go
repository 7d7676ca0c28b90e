package catalog

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aguulga/backend/internal/domain/shared"
)

// Product represents a warehouse catalog entry. It is the aggregate root for
// catalog operations and the local counterpart of products listed on Weve.
type Product struct {
	shared.BaseAggregateRoot
	NameMongolian string          `gorm:"type:varchar(200);not null"`
	NameEnglish   string          `gorm:"type:varchar(200)"`
	ProductCode   string          `gorm:"type:varchar(50);index"`
	Barcode       string          `gorm:"type:varchar(50);index"`
	PriceRetail   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	StockQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	// CategoryID is the Weve category the product was imported under, if any.
	CategoryID *int64 `gorm:"index"`
	IsActive   bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new catalog product
func NewProduct(nameMongolian, nameEnglish, productCode, barcode string) (*Product, error) {
	if err := validateProductName(nameMongolian); err != nil {
		return nil, err
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		NameMongolian:     nameMongolian,
		NameEnglish:       nameEnglish,
		ProductCode:       strings.TrimSpace(productCode),
		Barcode:           strings.TrimSpace(barcode),
		PriceRetail:       decimal.Zero,
		StockQuantity:     decimal.Zero,
		IsActive:          true,
	}, nil
}

// Rename updates the localized product names
func (p *Product) Rename(nameMongolian, nameEnglish string) error {
	if err := validateProductName(nameMongolian); err != nil {
		return err
	}

	p.NameMongolian = nameMongolian
	p.NameEnglish = nameEnglish
	p.touch()
	return nil
}

// SetRetailPrice updates the retail selling price
func (p *Product) SetRetailPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Retail price cannot be negative")
	}
	p.PriceRetail = price
	p.touch()
	return nil
}

// SetStockQuantity replaces the on-hand stock quantity
func (p *Product) SetStockQuantity(quantity decimal.Decimal) {
	p.StockQuantity = quantity
	p.touch()
}

// SetActive updates the active flag
func (p *Product) SetActive(active bool) {
	p.IsActive = active
	p.touch()
}

// AssignCategory tags the product with a Weve category
func (p *Product) AssignCategory(categoryID int64) {
	p.CategoryID = &categoryID
	p.touch()
}

func (p *Product) touch() {
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

func validateProductName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
