package trade

import (
	"context"

	"github.com/google/uuid"
)

// OrderRepository defines the interface for order persistence. Forwarding
// only reads orders; they are created and mutated by the POS flows outside
// this subsystem.
type OrderRepository interface {
	// FindByID loads the full order aggregate (customer and line items).
	// Returns shared.ErrNotFound when the order does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
}
