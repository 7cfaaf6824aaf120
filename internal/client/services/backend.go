package services

import (
	"context"

	"github.com/dmitrijs2005/storefront/internal/client/api"
	"github.com/dmitrijs2005/storefront/internal/client/models"
)

// Backend is the part of *api.Client the services call.
type Backend interface {
	Ping(ctx context.Context) error
	Login(ctx context.Context, cr models.Credentials) api.Result[models.AuthData]
	Register(ctx context.Context, r models.Registration) api.Result[models.AuthData]
	GetProfile(ctx context.Context) api.Result[models.User]
	UpdateProfile(ctx context.Context, in models.UserInput) api.Result[models.User]
	GetProduct(ctx context.Context, id string) api.Result[models.Product]
	AddToCart(ctx context.Context, in models.AddToCartInput) api.Result[models.Cart]
	CreateOrder(ctx context.Context, in models.OrderInput) api.Result[models.Order]
	GetMyOrders(ctx context.Context, page models.PageRequest) api.Result[models.OrderList]
	GetOrder(ctx context.Context, id string) api.Result[models.Order]
	CancelOrder(ctx context.Context, id string) api.Result[models.Order]
	CreatePaymentIntent(ctx context.Context, orderID string) api.Result[models.PaymentIntent]
	ConfirmPayment(ctx context.Context, paymentID string) api.Result[models.Payment]
}

// Session is the persisted sign-in state, implemented by *auth.Session.
type Session interface {
	Token(ctx context.Context) string
	IsAuthenticated(ctx context.Context) bool
	User(ctx context.Context) (*models.User, bool)
	Save(ctx context.Context, token string, user models.User) error
	UpdateUser(ctx context.Context, user models.User) error
	ClearAuthData(ctx context.Context)
}
