package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/storefront/internal/client/models"
)

// GetCart returns the signed-in user's cart.
func (c *Client) GetCart(ctx context.Context) Result[models.Cart] {
	return call(ctx, c, request{
		op:       "cart.get",
		method:   http.MethodGet,
		path:     "/cart",
		auth:     true,
		fallback: "Failed to fetch cart",
	}, decodeCart)
}

// AddToCart adds quantity units of a product. A Cart with nil Items in the
// result means the backend did not send the cart back.
func (c *Client) AddToCart(ctx context.Context, in models.AddToCartInput) Result[models.Cart] {
	if in.Quantity == 0 {
		in.Quantity = 1
	}
	return call(ctx, c, request{
		op:       "cart.add",
		method:   http.MethodPost,
		path:     "/cart",
		body:     in,
		auth:     true,
		fallback: "Failed to add item to cart",
		precheck: func() string {
			if in.ProductID == "" {
				return "Product is required"
			}
			if in.Quantity < 1 {
				return "Quantity must be at least 1"
			}
			return ""
		},
	}, decodeCart)
}

// UpdateCartItem sets the quantity of a cart line.
func (c *Client) UpdateCartItem(ctx context.Context, productID string, quantity int) Result[models.Cart] {
	return call(ctx, c, request{
		op:       "cart.update",
		method:   http.MethodPut,
		path:     "/cart/" + url.PathEscape(productID),
		body:     map[string]int{"quantity": quantity},
		auth:     true,
		fallback: "Failed to update cart",
		precheck: func() string {
			if quantity < 1 {
				return "Quantity must be at least 1"
			}
			return ""
		},
	}, decodeCart)
}

// RemoveFromCart removes a product's line.
func (c *Client) RemoveFromCart(ctx context.Context, productID string) Result[models.Cart] {
	return call(ctx, c, request{
		op:       "cart.remove",
		method:   http.MethodDelete,
		path:     "/cart/" + url.PathEscape(productID),
		auth:     true,
		fallback: "Failed to remove item from cart",
	}, decodeCart)
}

// ClearCart empties the cart.
func (c *Client) ClearCart(ctx context.Context) Result[models.Cart] {
	return call(ctx, c, request{
		op:       "cart.clear",
		method:   http.MethodDelete,
		path:     "/cart",
		auth:     true,
		fallback: "Failed to clear cart",
	}, decodeCart)
}

// GetAllCarts lists one page of carts. Admin.
func (c *Client) GetAllCarts(ctx context.Context, page models.PageRequest) Result[models.CartList] {
	return call(ctx, c, request{
		op:       "cart.admin_list",
		method:   http.MethodGet,
		path:     "/cart/admin",
		query:    pageQuery(page),
		auth:     true,
		fallback: "Failed to fetch carts",
	}, func(w wire) (models.CartList, error) {
		items, pg, err := listAndPagination[models.Cart](w.payload(), "carts")
		if err != nil {
			return models.CartList{}, err
		}
		return models.CartList{Carts: items, Pagination: fillPagination(pg, page, len(items))}, nil
	})
}

// GetUserCart returns a user's cart. Admin.
func (c *Client) GetUserCart(ctx context.Context, userID string) Result[models.Cart] {
	return call(ctx, c, request{
		op:       "cart.admin_get",
		method:   http.MethodGet,
		path:     "/cart/admin/" + url.PathEscape(userID),
		auth:     true,
		fallback: "Failed to fetch cart",
	}, decodeCart)
}

// DeleteUserCart removes a user's cart. Admin.
func (c *Client) DeleteUserCart(ctx context.Context, userID string) Result[Empty] {
	return call(ctx, c, request{
		op:       "cart.admin_delete",
		method:   http.MethodDelete,
		path:     "/cart/admin/" + url.PathEscape(userID),
		auth:     true,
		fallback: "Failed to delete cart",
	}, decodeNothing)
}

// decodeCart accepts the cart as the payload or under "cart". An empty
// payload yields a Cart with nil Items.
func decodeCart(w wire) (models.Cart, error) {
	var cart models.Cart
	p := w.payload()
	if isNull(p) {
		return cart, nil
	}
	if inner, ok := field(p, "cart"); ok {
		if isNull(inner) {
			return cart, nil
		}
		p = inner
	}
	p = bytes.TrimSpace(p)
	if p[0] == '[' {
		// a bare item list
		err := json.Unmarshal(p, &cart.Items)
		return cart, err
	}
	err := json.Unmarshal(p, &cart)
	return cart, err
}
