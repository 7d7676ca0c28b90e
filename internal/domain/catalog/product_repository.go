package catalog

import (
	"context"
)

// ProductRepository defines the interface for product persistence.
// Reconciliation only ever matches and upserts; listing and deletion live
// outside this subsystem.
type ProductRepository interface {
	// FindByCodeOrBarcode finds a product whose product code or barcode matches
	// either given value. Empty arguments are ignored; the first match wins.
	// Returns shared.ErrNotFound when no product matches.
	FindByCodeOrBarcode(ctx context.Context, productCode, barcode string) (*Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error
}
