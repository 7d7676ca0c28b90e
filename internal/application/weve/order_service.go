package weve

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aguulga/backend/internal/domain/trade"
	"github.com/aguulga/backend/internal/domain/weve"
)

// OrderService forwards local store orders to Weve. Only orders of the Store
// type are eligible; other types are skipped by policy, not failed.
type OrderService struct {
	client weve.Client
	store  *weve.SessionStore
	orders trade.OrderRepository
	logger *zap.Logger
}

// NewOrderService creates a new order forwarding service
func NewOrderService(client weve.Client, store *weve.SessionStore, orders trade.OrderRepository, logger *zap.Logger) *OrderService {
	return &OrderService{
		client: client,
		store:  store,
		orders: orders,
		logger: logger,
	}
}

// PushOrder projects the order aggregate into the Weve wire shape and submits
// it. It returns weve.ErrNotLoggedIn without any remote call when no session
// is active, and shared.ErrNotFound when the order does not exist. Remote
// rejections come back inside the result with the platform message verbatim.
func (s *OrderService) PushOrder(ctx context.Context, orderID uuid.UUID) (*OrderPushResult, error) {
	if _, ok := s.store.Get(); !ok {
		return nil, weve.ErrNotLoggedIn
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.OrderType != trade.OrderTypeStore {
		return &OrderPushResult{
			Skipped: true,
			Message: fmt.Sprintf("Order type %s is not forwarded to Weve", order.OrderType),
		}, nil
	}

	outbound := projectOrder(order)
	weveOrderID, err := s.client.PushOrder(ctx, outbound)
	if err != nil {
		s.logger.Warn("weve order push failed",
			zap.String("orderNumber", outbound.OrderNumber),
			zap.Error(err))
		return &OrderPushResult{Success: false, Message: err.Error()}, nil
	}

	s.logger.Info("weve order pushed",
		zap.String("orderNumber", outbound.OrderNumber),
		zap.String("weveOrderId", weveOrderID))
	return &OrderPushResult{
		Success:     true,
		WeveOrderID: weveOrderID,
		Message:     "Order pushed to Weve",
	}, nil
}

// projectOrder derives the outbound wire shape from the order aggregate.
// Line totals are rounded per line before summation; subtotal defaults to the
// order total and VAT to zero when not recorded.
func projectOrder(order *trade.Order) *weve.OutboundOrder {
	items := make([]weve.OutboundOrderItem, 0, len(order.Items))
	for i := range order.Items {
		item := &order.Items[i]
		items = append(items, weve.OutboundOrderItem{
			ProductID:   item.ProductID.String(),
			ProductCode: item.ProductCode,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.LineTotal(),
		})
	}

	outbound := &weve.OutboundOrder{
		OrderNumber:    order.EffectiveOrderNumber(),
		Items:          items,
		SubtotalAmount: order.Subtotal(),
		VATAmount:      order.VAT(),
		TotalAmount:    order.TotalAmount,
		OrderDate:      order.OrderDate,
		Status:         order.Status.String(),
	}
	if order.Customer != nil {
		outbound.CustomerID = order.Customer.LegacyCustomerID
		outbound.CustomerName = order.Customer.Name
		outbound.CustomerPhone = order.Customer.PhoneNumber
		outbound.CustomerAddress = order.Customer.Address
	}
	return outbound
}
