package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/storefront/internal/client/models"
)

// CreatePaymentIntent starts a payment for an order.
func (c *Client) CreatePaymentIntent(ctx context.Context, orderID string) Result[models.PaymentIntent] {
	return call(ctx, c, request{
		op:       "payments.intent",
		method:   http.MethodPost,
		path:     "/payments/create-intent",
		body:     map[string]string{"orderId": orderID},
		auth:     true,
		fallback: "Failed to create payment",
	}, decodeData[models.PaymentIntent])
}

// ConfirmPayment confirms a payment started with CreatePaymentIntent.
func (c *Client) ConfirmPayment(ctx context.Context, paymentID string) Result[models.Payment] {
	return call(ctx, c, request{
		op:       "payments.confirm",
		method:   http.MethodPost,
		path:     "/payments/confirm",
		body:     map[string]string{"paymentId": paymentID},
		auth:     true,
		fallback: "Failed to confirm payment",
	}, decodeObject[models.Payment]("payment"))
}

// GetPayment returns the payment of an order.
func (c *Client) GetPayment(ctx context.Context, orderID string) Result[models.Payment] {
	return call(ctx, c, request{
		op:       "payments.get",
		method:   http.MethodGet,
		path:     "/payments/order/" + url.PathEscape(orderID),
		auth:     true,
		fallback: "Failed to fetch payment",
	}, decodeObject[models.Payment]("payment"))
}
