package trade

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aguulga/backend/internal/domain/partner"
	"github.com/aguulga/backend/internal/domain/shared"
)

// OrderType identifies where an order originated
type OrderType string

const (
	// OrderTypeStore is a point-of-sale order placed in the store
	OrderTypeStore OrderType = "Store"
	// OrderTypeDelivery is an order fulfilled by delivery
	OrderTypeDelivery OrderType = "Delivery"
	// OrderTypeWholesale is a bulk order for resellers
	OrderTypeWholesale OrderType = "Wholesale"
)

// IsValid checks if the type is a known OrderType
func (t OrderType) IsValid() bool {
	switch t {
	case OrderTypeStore, OrderTypeDelivery, OrderTypeWholesale:
		return true
	}
	return false
}

// String returns the string representation of OrderType
func (t OrderType) String() string {
	return string(t)
}

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// OrderItem represents a line item in an order
type OrderItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductCode string          `gorm:"type:varchar(50)"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// LineTotal returns quantity * unit price rounded to 2 decimal places.
// Rounding happens per line, before any summation.
func (i *OrderItem) LineTotal() decimal.Decimal {
	return i.Quantity.Mul(i.UnitPrice).Round(2)
}

// Order represents a sales order placed in the warehouse/POS system.
// It is the aggregate root loaded with its customer and line items.
type Order struct {
	shared.BaseAggregateRoot
	OrderNumber    string           `gorm:"type:varchar(50);uniqueIndex"`
	OrderType      OrderType        `gorm:"type:varchar(20);not null;default:'Store'"`
	Status         OrderStatus      `gorm:"type:varchar(20);not null;default:'PENDING'"`
	OrderDate      time.Time        `gorm:"not null"`
	SubtotalAmount *decimal.Decimal `gorm:"type:decimal(18,4)"`
	VATAmount      *decimal.Decimal `gorm:"type:decimal(18,4)"`
	TotalAmount    decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	CustomerID     *uuid.UUID       `gorm:"type:uuid;index"`
	Customer       *partner.Customer
	Items          []OrderItem `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a new order
func NewOrder(orderNumber string, orderType OrderType, orderDate time.Time) (*Order, error) {
	if !orderType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ORDER_TYPE", "Unknown order type: "+orderType.String())
	}
	if orderDate.IsZero() {
		orderDate = time.Now()
	}

	return &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		OrderType:         orderType,
		Status:            OrderStatusPending,
		OrderDate:         orderDate,
		TotalAmount:       decimal.Zero,
		Items:             make([]OrderItem, 0),
	}, nil
}

// AddItem appends a line item and recalculates the order total
func (o *Order) AddItem(productID uuid.UUID, productCode string, quantity, unitPrice decimal.Decimal) error {
	if productID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	now := time.Now()
	o.Items = append(o.Items, OrderItem{
		ID:          uuid.New(),
		OrderID:     o.ID,
		ProductID:   productID,
		ProductCode: productCode,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	o.recalculateTotal()
	return nil
}

// EffectiveOrderNumber returns the recorded order number, or a derived one
// when the order was saved without a number.
func (o *Order) EffectiveOrderNumber() string {
	if o.OrderNumber != "" {
		return o.OrderNumber
	}
	return fmt.Sprintf("ORD-%s", o.ID.String())
}

// Subtotal returns the recorded subtotal, defaulting to the order total
func (o *Order) Subtotal() decimal.Decimal {
	if o.SubtotalAmount != nil {
		return *o.SubtotalAmount
	}
	return o.TotalAmount
}

// VAT returns the recorded VAT amount, defaulting to zero
func (o *Order) VAT() decimal.Decimal {
	if o.VATAmount != nil {
		return *o.VATAmount
	}
	return decimal.Zero
}

func (o *Order) recalculateTotal() {
	total := decimal.Zero
	for i := range o.Items {
		total = total.Add(o.Items[i].LineTotal())
	}
	o.TotalAmount = total
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}
