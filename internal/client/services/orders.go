package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/storefront/internal/client/cart"
	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/logging"
)

// Payment methods understood by Checkout.
const (
	PaymentCard = "card"
	PaymentCOD  = "cod"
)

// OrderService places and inspects the signed-in user's orders.
type OrderService interface {
	// Checkout turns the cached server cart into an order. For card payments
	// it also creates and confirms the payment; if that fails the order is
	// returned together with the error.
	Checkout(ctx context.Context, addr models.ShippingAddress, paymentMethod string) (*models.Order, error)
	MyOrders(ctx context.Context, page models.PageRequest) (models.OrderList, error)
	Order(ctx context.Context, id string) (*models.Order, error)
	Cancel(ctx context.Context, id string) (*models.Order, error)
}

type orderService struct {
	backend Backend
	store   *cart.Store
	logger  logging.Logger
}

func NewOrderService(b Backend, store *cart.Store, l logging.Logger) OrderService {
	return &orderService{backend: b, store: store, logger: l.With("service", "orders")}
}

func (o *orderService) Checkout(ctx context.Context, addr models.ShippingAddress, paymentMethod string) (*models.Order, error) {
	if paymentMethod == "" {
		paymentMethod = PaymentCard
	}
	if err := o.store.RefreshCart(ctx); err != nil {
		return nil, err
	}
	snap := o.store.Snapshot()

	res := o.backend.CreateOrder(ctx, models.OrderInput{
		Items:           models.OrderItemsFromCart(models.Cart{Items: snap.Items}),
		ShippingAddress: addr,
		PaymentMethod:   paymentMethod,
	})
	if !res.Success {
		return nil, res.Err()
	}
	order := res.Data

	// the backend empties the cart once the order exists
	if err := o.store.RefreshCart(ctx); err != nil {
		o.logger.Warn(ctx, "cart refresh after order failed", "error", err.Error())
	}

	if paymentMethod != PaymentCard {
		return &order, nil
	}

	intent := o.backend.CreatePaymentIntent(ctx, order.ID)
	if !intent.Success {
		return &order, fmt.Errorf("order %s placed, payment not started: %w", order.ID, intent.Err())
	}
	paid := o.backend.ConfirmPayment(ctx, intent.Data.PaymentID)
	if !paid.Success {
		return &order, fmt.Errorf("order %s placed, payment failed: %w", order.ID, paid.Err())
	}
	order.IsPaid = true
	return &order, nil
}

func (o *orderService) MyOrders(ctx context.Context, page models.PageRequest) (models.OrderList, error) {
	res := o.backend.GetMyOrders(ctx, page)
	return res.Data, res.Err()
}

func (o *orderService) Order(ctx context.Context, id string) (*models.Order, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: order id is empty", common.ErrorValidation)
	}
	res := o.backend.GetOrder(ctx, id)
	if !res.Success {
		return nil, res.Err()
	}
	return &res.Data, nil
}

func (o *orderService) Cancel(ctx context.Context, id string) (*models.Order, error) {
	res := o.backend.CancelOrder(ctx, id)
	if !res.Success {
		return nil, res.Err()
	}
	return &res.Data, nil
}
