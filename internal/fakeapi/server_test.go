package fakeapi_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/storefront/internal/client/api"
	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/fakeapi"
)

type backend struct {
	srv   *httptest.Server
	token atomic.Value
	api   *api.Client
}

func newBackend(t *testing.T, opts ...fakeapi.Option) *backend {
	t.Helper()

	s, err := fakeapi.New(append([]fakeapi.Option{fakeapi.WithBcryptCost(bcrypt.MinCost)}, opts...)...)
	require.NoError(t, err)

	b := &backend{srv: httptest.NewServer(s.Handler())}
	t.Cleanup(b.srv.Close)
	b.token.Store("")
	b.api = api.New(b.srv.URL, api.TokenFunc(func(context.Context) string {
		return b.token.Load().(string)
	}))
	return b
}

func (b *backend) login(t *testing.T, email, password string) models.User {
	t.Helper()
	res := b.api.Login(context.Background(), models.Credentials{Email: email, Password: password})
	require.True(t, res.Success, res.Error)
	b.token.Store(res.Data.Token)
	return res.Data.User
}

func TestHealth(t *testing.T) {
	b := newBackend(t)
	assert.NoError(t, b.api.Ping(context.Background()))
}

func TestProducts_FilterSortAndPaging(t *testing.T) {
	b := newBackend(t)
	ctx := context.Background()

	res := b.api.GetProducts(ctx, models.PageRequest{Page: 1, Limit: 2}, models.ProductFilter{})
	require.True(t, res.Success, res.Error)
	assert.Len(t, res.Data.Products, 2)
	assert.Equal(t, models.Pagination{Page: 1, Limit: 2, Total: 6, TotalPages: 3}, res.Data.Pagination)

	res = b.api.GetProducts(ctx, models.PageRequest{}, models.ProductFilter{Category: "shoes"})
	require.True(t, res.Success, res.Error)
	assert.Len(t, res.Data.Products, 2)
	for _, p := range res.Data.Products {
		assert.Equal(t, "Shoes", p.Category.Name)
	}

	res = b.api.GetProducts(ctx, models.PageRequest{}, models.ProductFilter{Sort: "price"})
	require.True(t, res.Success, res.Error)
	require.NotEmpty(t, res.Data.Products)
	assert.Equal(t, "prod-tote", res.Data.Products[0].ID)

	minPrice := decimal.NewFromInt(50)
	res = b.api.GetProducts(ctx, models.PageRequest{}, models.ProductFilter{MinPrice: &minPrice, Search: "boot"})
	require.True(t, res.Success, res.Error)
	require.Len(t, res.Data.Products, 1)
	assert.Equal(t, "prod-boot", res.Data.Products[0].ID)
}

func TestGetProduct_MisspelledFlag(t *testing.T) {
	b := newBackend(t)
	ctx := context.Background()

	res := b.api.GetProduct(ctx, "prod-runner")
	require.True(t, res.Success, res.Error)
	assert.Equal(t, "Trail Runner", res.Data.Name)
	assert.True(t, decimal.RequireFromString("89.99").Equal(res.Data.Price))
	assert.Equal(t, models.Ref{ID: "cat-shoes", Name: "Shoes"}, res.Data.Category)

	res = b.api.GetProduct(ctx, "missing")
	assert.False(t, res.Success)
	assert.Equal(t, "Product not found", res.Error)
}

func TestCategories_BareArrayAndUnflaggedObject(t *testing.T) {
	b := newBackend(t)
	ctx := context.Background()

	list := b.api.GetCategories(ctx)
	require.True(t, list.Success, list.Error)
	require.Len(t, list.Data, 3)
	assert.Equal(t, "cat-shirts", list.Data[0].ID)

	one := b.api.GetCategory(ctx, "cat-bags")
	require.True(t, one.Success, one.Error)
	assert.Equal(t, "Bags", one.Data.Name)
}

func TestAuth_LoginRegisterProfile(t *testing.T) {
	b := newBackend(t)
	ctx := context.Background()

	bad := b.api.Login(ctx, models.Credentials{Email: fakeapi.UserEmail, Password: "nope"})
	assert.False(t, bad.Success)
	assert.Equal(t, "Invalid email or password", bad.Error)

	u := b.login(t, fakeapi.UserEmail, fakeapi.UserPassword)
	assert.Equal(t, models.RoleUser, u.Role)
	assert.NotEmpty(t, u.ID)

	prof := b.api.GetProfile(ctx)
	require.True(t, prof.Success, prof.Error)
	assert.Equal(t, fakeapi.UserEmail, prof.Data.Email)

	reg := b.api.Register(ctx, models.Registration{Name: "New", Email: "New@Example.com", Password: "secret1"})
	require.True(t, reg.Success, reg.Error)
	assert.NotEmpty(t, reg.Data.Token)
	assert.Equal(t, "new@example.com", reg.Data.User.Email)

	dup := b.api.Register(ctx, models.Registration{Name: "New", Email: "new@example.com", Password: "secret1"})
	assert.False(t, dup.Success)
	assert.Equal(t, "User already exists", dup.Error)
}

func TestAuth_UpdateProfileWithAvatar(t *testing.T) {
	b := newBackend(t)
	ctx := context.Background()
	b.login(t, fakeapi.UserEmail, fakeapi.UserPassword)

	res := b.api.UpdateProfile(ctx, models.UserInput{
		Name:   "Renamed",
		Avatar: &models.Upload{FileName: "me.png", ContentType: "image/png", Content: strings.NewReader("png-bytes")},
	})
	require.True(t, res.Success, res.Error)
	assert.Equal(t, "Renamed", res.Data.Name)
	require.True(t, strings.HasPrefix(res.Data.Avatar, "/uploads/"))

	resp, err := http.Get(b.srv.URL + res.Data.Avatar)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "png-bytes", string(body))
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
}

func TestAuth_ExpiredToken(t *testing.T) {
	var offset atomic.Int64
	clock := func() time.Time { return time.Now().Add(time.Duration(offset.Load())) }
	b := newBackend(t, fakeapi.WithClock(clock), fakeapi.WithTokenTTL(time.Hour))
	b.login(t, fakeapi.UserEmail, fakeapi.UserPassword)

	offset.Store(int64(2 * time.Hour))

	res := b.api.GetCart(context.Background())
	assert.False(t, res.Success)
	assert.Equal(t, "Not authorized, token expired", res.Error)
}

func TestCart_AddMergeUpdateRemove(t *testing.T) {
	b := newBackend(t)
	ctx := context.Background()
	b.login(t, fakeapi.UserEmail, fakeapi.UserPassword)

	add := b.api.AddToCart(ctx, models.AddToCartInput{ProductID: "prod-classic-tee", Quantity: 2, SelectedSize: "M"})
	require.True(t, add.Success, add.Error)
	require.Len(t, add.Data.Items, 1)
	assert.Equal(t, "Item added to cart", add.Message)

	add = b.api.AddToCart(ctx, models.AddToCartInput{ProductID: "prod-classic-tee", Quantity: 1, SelectedSize: "M"})
	require.True(t, add.Success, add.Error)
	require.Len(t, add.Data.Items, 1)
	assert.Equal(t, 3, add.Data.Items[0].Quantity)
	assert.True(t, decimal.RequireFromString("59.7").Equal(add.Data.Subtotal()))

	upd := b.api.UpdateCartItem(ctx, "prod-classic-tee", 1)
	require.True(t, upd.Success, upd.Error)
	assert.Equal(t, 1, upd.Data.Count())

	tooMany := b.api.AddToCart(ctx, models.AddToCartInput{ProductID: "prod-boot", Quantity: 3})
	assert.False(t, tooMany.Success)
	assert.Equal(t, "Not enough stock available", tooMany.Error)

	rm := b.api.RemoveFromCart(ctx, "prod-classic-tee")
	require.True(t, rm.Success, rm.Error)
	assert.Nil(t, rm.Data.Items)

	cart := b.api.GetCart(ctx)
	require.True(t, cart.Success, cart.Error)
	assert.NotNil(t, cart.Data.Items)
	assert.Empty(t, cart.Data.Items)

	missing := b.api.RemoveFromCart(ctx, "prod-classic-tee")
	assert.False(t, missing.Success)
	assert.Equal(t, "Item not found in cart", missing.Error)
}

func shipping() models.ShippingAddress {
	return models.ShippingAddress{FullName: "Sam", Street: "1 Main St", City: "Riga", PostalCode: "LV-1001", Country: "LV"}
}

func TestOrders_PlaceAndCancelRestoresStock(t *testing.T) {
	b := newBackend(t)
	ctx := context.Background()
	b.login(t, fakeapi.UserEmail, fakeapi.UserPassword)

	require.True(t, b.api.AddToCart(ctx, models.AddToCartInput{ProductID: "prod-runner", Quantity: 2}).Success)
	cart := b.api.GetCart(ctx)
	require.True(t, cart.Success, cart.Error)

	placed := b.api.CreateOrder(ctx, models.OrderInput{
		Items:           models.OrderItemsFromCart(cart.Data),
		ShippingAddress: shipping(),
		PaymentMethod:   "cod",
	})
	require.True(t, placed.Success, placed.Error)
	assert.Equal(t, models.OrderPending, placed.Data.Status)
	assert.True(t, decimal.RequireFromString("179.98").Equal(placed.Data.TotalAmount))
	assert.Equal(t, "Trail Runner", placed.Data.Items[0].Product.Name)

	after := b.api.GetCart(ctx)
	require.True(t, after.Success)
	assert.Empty(t, after.Data.Items)

	assert.Equal(t, 8, b.api.GetProduct(ctx, "prod-runner").Data.Stock)

	mine := b.api.GetMyOrders(ctx, models.PageRequest{})
	require.True(t, mine.Success, mine.Error)
	require.Len(t, mine.Data.Orders, 1)
	assert.Equal(t, 1, mine.Data.Pagination.Total)
	assert.Equal(t, 1, mine.Data.Pagination.TotalPages)

	cancelled := b.api.CancelOrder(ctx, placed.Data.ID)
	require.True(t, cancelled.Success, cancelled.Error)
	assert.Equal(t, models.OrderCancelled, cancelled.Data.Status)
	assert.Equal(t, 10, b.api.GetProduct(ctx, "prod-runner").Data.Stock)

	again := b.api.CancelOrder(ctx, placed.Data.ID)
	assert.False(t, again.Success)
	assert.Equal(t, "Only pending orders can be cancelled", again.Error)
}

func TestOrders_Rejections(t *testing.T) {
	b := newBackend(t)
	ctx := context.Background()
	b.login(t, fakeapi.UserEmail, fakeapi.UserPassword)

	res := b.api.CreateOrder(ctx, models.OrderInput{
		Items:           []models.OrderItemInput{{ProductID: "prod-tote", Quantity: 1}},
		ShippingAddress: shipping(),
	})
	assert.False(t, res.Success)
	assert.Equal(t, "Insufficient stock for Canvas Tote", res.Error)

	res = b.api.CreateOrder(ctx, models.OrderInput{
		Items: []models.OrderItemInput{{ProductID: "prod-runner", Quantity: 1}},
	})
	assert.False(t, res.Success)
	assert.Equal(t, "Shipping address is incomplete", res.Error)
}

func TestPayments_IntentAndConfirm(t *testing.T) {
	b := newBackend(t)
	ctx := context.Background()
	b.login(t, fakeapi.UserEmail, fakeapi.UserPassword)

	placed := b.api.CreateOrder(ctx, models.OrderInput{
		Items:           []models.OrderItemInput{{ProductID: "prod-backpack", Quantity: 1}},
		ShippingAddress: shipping(),
		PaymentMethod:   "card",
	})
	require.True(t, placed.Success, placed.Error)

	intent := b.api.CreatePaymentIntent(ctx, placed.Data.ID)
	require.True(t, intent.Success, intent.Error)
	assert.NotEmpty(t, intent.Data.ClientSecret)
	assert.True(t, decimal.RequireFromString("59.5").Equal(intent.Data.Amount))

	paid := b.api.ConfirmPayment(ctx, intent.Data.PaymentID)
	require.True(t, paid.Success, paid.Error)
	assert.Equal(t, "succeeded", paid.Data.Status)

	o := b.api.GetOrder(ctx, placed.Data.ID)
	require.True(t, o.Success, o.Error)
	assert.True(t, o.Data.IsPaid)
	assert.Equal(t, models.OrderProcessing, o.Data.Status)

	pay := b.api.GetPayment(ctx, placed.Data.ID)
	require.True(t, pay.Success, pay.Error)
	assert.Equal(t, intent.Data.PaymentID, pay.Data.ID)

	again := b.api.CreatePaymentIntent(ctx, placed.Data.ID)
	assert.False(t, again.Success)
	assert.Equal(t, "Order is already paid", again.Error)
}

func TestAdmin_RequiresRole(t *testing.T) {
	b := newBackend(t)
	b.login(t, fakeapi.UserEmail, fakeapi.UserPassword)

	res := b.api.GetUsers(context.Background(), models.PageRequest{}, models.UserFilter{})
	assert.False(t, res.Success)
	assert.Equal(t, "Admin access required", res.Error)
}

func TestAdmin_CatalogUsersAndOrders(t *testing.T) {
	b := newBackend(t)
	ctx := context.Background()

	shopper := b.login(t, fakeapi.UserEmail, fakeapi.UserPassword)
	require.True(t, b.api.AddToCart(ctx, models.AddToCartInput{ProductID: "prod-oxford-shirt"}).Success)
	placed := b.api.CreateOrder(ctx, models.OrderInput{
		Items:           []models.OrderItemInput{{ProductID: "prod-oxford-shirt", Quantity: 1}},
		ShippingAddress: shipping(),
	})
	require.True(t, placed.Success, placed.Error)

	b.login(t, fakeapi.AdminEmail, fakeapi.AdminPassword)

	users := b.api.GetUsers(ctx, models.PageRequest{}, models.UserFilter{Role: models.RoleUser})
	require.True(t, users.Success, users.Error)
	require.Len(t, users.Data.Users, 1)
	assert.Equal(t, shopper.ID, users.Data.Users[0].ID)

	admin := b.api.CreateAdmin(ctx, models.UserInput{Email: "ops@storefront.test", Password: "opspass"})
	require.True(t, admin.Success, admin.Error)
	assert.Equal(t, models.RoleAdmin, admin.Data.Role)

	cat := b.api.CreateCategory(ctx, models.CategoryInput{Name: "Hats"})
	require.True(t, cat.Success, cat.Error)

	prod := b.api.CreateProduct(ctx, models.ProductInput{
		Name:     "Wool Cap",
		Price:    decimal.RequireFromString("12.5"),
		Category: cat.Data.ID,
		Sizes:    []string{"S", "M"},
		Stock:    4,
		Photos:   []models.Upload{{FileName: "cap.jpg", Content: strings.NewReader("jpeg")}},
	})
	require.True(t, prod.Success, prod.Error)
	assert.Equal(t, []string{"S", "M"}, prod.Data.Sizes)
	assert.Len(t, prod.Data.Photos, 1)
	assert.Equal(t, "Hats", prod.Data.Category.Name)

	del := b.api.DeleteCategory(ctx, cat.Data.ID)
	assert.False(t, del.Success)
	assert.Equal(t, "Category has products", del.Error)

	orders := b.api.GetAllOrders(ctx, models.PageRequest{}, models.OrderPending)
	require.True(t, orders.Success, orders.Error)
	require.Len(t, orders.Data.Orders, 1)
	assert.Equal(t, 1, orders.Data.Pagination.Total)

	shipped := b.api.UpdateOrderStatus(ctx, placed.Data.ID, models.OrderShipped)
	require.True(t, shipped.Success, shipped.Error)
	assert.Equal(t, models.OrderShipped, shipped.Data.Status)

	carts := b.api.GetAllCarts(ctx, models.PageRequest{Page: 1, Limit: 10})
	require.True(t, carts.Success, carts.Error)
	assert.Equal(t, models.Pagination{Page: 1, Limit: 10, Total: 1, TotalPages: 1}, carts.Data.Pagination)

	assert.True(t, b.api.DeleteUserCart(ctx, shopper.ID).Success)
	gone := b.api.GetUserCart(ctx, shopper.ID)
	assert.False(t, gone.Success)
	assert.Equal(t, "Cart not found", gone.Error)
}
