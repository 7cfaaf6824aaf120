package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/storefront/internal/client/models"
)

// CreateOrder places an order. An empty item list fails without a request.
func (c *Client) CreateOrder(ctx context.Context, in models.OrderInput) Result[models.Order] {
	return call(ctx, c, request{
		op:       "orders.create",
		method:   http.MethodPost,
		path:     "/orders",
		body:     in,
		auth:     true,
		fallback: "Failed to create order",
		precheck: func() string {
			if len(in.Items) == 0 {
				return MsgNoOrderItems
			}
			return ""
		},
	}, decodeObject[models.Order]("order"))
}

// GetMyOrders lists the signed-in user's orders.
func (c *Client) GetMyOrders(ctx context.Context, page models.PageRequest) Result[models.OrderList] {
	return call(ctx, c, request{
		op:       "orders.mine",
		method:   http.MethodGet,
		path:     "/orders/my",
		query:    pageQuery(page),
		auth:     true,
		fallback: "Failed to fetch orders",
	}, decodeOrderList(page))
}

// GetOrder fetches one order.
func (c *Client) GetOrder(ctx context.Context, id string) Result[models.Order] {
	return call(ctx, c, request{
		op:       "orders.get",
		method:   http.MethodGet,
		path:     "/orders/" + url.PathEscape(id),
		auth:     true,
		fallback: "Failed to fetch order",
	}, decodeObject[models.Order]("order"))
}

// CancelOrder cancels a pending order.
func (c *Client) CancelOrder(ctx context.Context, id string) Result[models.Order] {
	return call(ctx, c, request{
		op:       "orders.cancel",
		method:   http.MethodPut,
		path:     "/orders/" + url.PathEscape(id) + "/cancel",
		auth:     true,
		fallback: "Failed to cancel order",
	}, decodeObject[models.Order]("order"))
}

// GetAllOrders lists one page of all orders, optionally by status. Admin.
func (c *Client) GetAllOrders(ctx context.Context, page models.PageRequest, status string) Result[models.OrderList] {
	q := pageQuery(page)
	setIf(q, "status", status)
	return call(ctx, c, request{
		op:       "orders.admin_list",
		method:   http.MethodGet,
		path:     "/orders/admin",
		query:    q,
		auth:     true,
		fallback: "Failed to fetch orders",
	}, decodeOrderList(page))
}

// UpdateOrderStatus moves an order to status. Admin.
func (c *Client) UpdateOrderStatus(ctx context.Context, id, status string) Result[models.Order] {
	return call(ctx, c, request{
		op:       "orders.admin_status",
		method:   http.MethodPut,
		path:     "/orders/admin/" + url.PathEscape(id) + "/status",
		body:     map[string]string{"status": status},
		auth:     true,
		fallback: "Failed to update order status",
		precheck: func() string {
			if status == "" {
				return "Status is required"
			}
			return ""
		},
	}, decodeObject[models.Order]("order"))
}

func decodeOrderList(page models.PageRequest) func(wire) (models.OrderList, error) {
	return func(w wire) (models.OrderList, error) {
		items, pg, err := listAndPagination[models.Order](w.payload(), "orders")
		if err != nil {
			return models.OrderList{}, err
		}
		return models.OrderList{Orders: items, Pagination: fillPagination(pg, page, len(items))}, nil
	}
}
