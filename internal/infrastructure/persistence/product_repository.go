package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/aguulga/backend/internal/domain/catalog"
	"github.com/aguulga/backend/internal/domain/shared"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByCodeOrBarcode finds a product matching either identifier. Empty
// arguments are excluded from the match; the first matching row wins.
func (r *GormProductRepository) FindByCodeOrBarcode(ctx context.Context, productCode, barcode string) (*catalog.Product, error) {
	if productCode == "" && barcode == "" {
		return nil, shared.ErrNotFound
	}

	db := r.db.WithContext(ctx)
	var query *gorm.DB
	switch {
	case productCode != "" && barcode != "":
		query = db.Where(db.Where("product_code = ?", productCode).Or("barcode = ?", barcode))
	case productCode != "":
		query = db.Where("product_code = ?", productCode)
	default:
		query = db.Where("barcode = ?", barcode)
	}

	var product catalog.Product
	if err := query.First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// Ensure GormProductRepository implements the repository interface
var _ catalog.ProductRepository = (*GormProductRepository)(nil)
