package fakeapi

import (
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	paymentCard = "card"
	paymentCOD  = "cod"
)

type orderRequest struct {
	Items []struct {
		ProductID     string `json:"productId"`
		Quantity      int    `json:"quantity"`
		SelectedSize  string `json:"selectedSize"`
		SelectedColor string `json:"selectedColor"`
	} `json:"items"`
	ShippingAddress address `json:"shippingAddress"`
	PaymentMethod   string  `json:"paymentMethod"`
}

// createOrder validates every line against stock, takes the stock and
// empties the user's cart.
func (s *Server) createOrder(w http.ResponseWriter, r *http.Request) {
	var in orderRequest
	if err := decodeBody(r, &in); err != nil {
		fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(in.Items) == 0 {
		fail(w, http.StatusBadRequest, "No items in order")
		return
	}
	if !in.ShippingAddress.complete() {
		fail(w, http.StatusBadRequest, "Shipping address is incomplete")
		return
	}
	if in.PaymentMethod == "" {
		in.PaymentMethod = paymentCOD
	}
	if in.PaymentMethod != paymentCard && in.PaymentMethod != paymentCOD {
		fail(w, http.StatusBadRequest, "Unsupported payment method")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	want := map[string]int{}
	o := &order{
		ID:            uuid.NewString(),
		UserID:        currentUser(r.Context()).ID,
		Address:       in.ShippingAddress,
		PaymentMethod: in.PaymentMethod,
		Status:        statusPending,
		Total:         decimal.Zero,
		CreatedAt:     s.now(),
	}
	for _, it := range in.Items {
		p, found := s.products[it.ProductID]
		if !found {
			fail(w, http.StatusNotFound, "Product not found")
			return
		}
		if it.Quantity < 1 {
			fail(w, http.StatusBadRequest, "Quantity must be at least 1")
			return
		}
		want[p.ID] += it.Quantity
		if want[p.ID] > p.Stock {
			fail(w, http.StatusBadRequest, "Insufficient stock for "+p.Name)
			return
		}
		o.Lines = append(o.Lines, orderLine{
			ProductID:     p.ID,
			Name:          p.Name,
			Quantity:      it.Quantity,
			Price:         p.Price,
			SelectedSize:  it.SelectedSize,
			SelectedColor: it.SelectedColor,
		})
		o.Total = o.Total.Add(p.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}

	for id, n := range want {
		s.products[id].Stock -= n
	}
	s.orders = append(s.orders, o)
	if c, found := s.carts[o.UserID]; found {
		c.Lines = nil
		c.UpdatedAt = s.now()
	}
	reply(w, http.StatusCreated, canonical, map[string]any{"order": orderViewOf(o)}, "Order placed")
}

// myOrders answers newest first with the currentPage/pages/totalItems
// pagination keys.
func (s *Server) myOrders(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	userID := currentUser(r.Context()).ID

	s.mu.Lock()
	defer s.mu.Unlock()

	var mine []*order
	for i := len(s.orders) - 1; i >= 0; i-- {
		if s.orders[i].UserID == userID {
			mine = append(mine, s.orders[i])
		}
	}
	items, pages := paginate(mine, page, limit)
	reply(w, http.StatusOK, canonical, map[string]any{
		"orders": orderViews(items),
		"pagination": map[string]int{
			"currentPage": page,
			"pages":       pages,
			"totalItems":  len(mine),
		},
	}, "")
}

// findOrder returns the order if the current user owns it or is an admin.
// Called with s.mu held.
func (s *Server) findOrder(w http.ResponseWriter, r *http.Request, id string) *order {
	i := slices.IndexFunc(s.orders, func(o *order) bool { return o.ID == id })
	if i < 0 {
		fail(w, http.StatusNotFound, "Order not found")
		return nil
	}
	o := s.orders[i]
	u := currentUser(r.Context())
	if o.UserID != u.ID && u.Role != roleAdmin {
		fail(w, http.StatusForbidden, "Not authorized to access this order")
		return nil
	}
	return o
}

func (s *Server) getOrder(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if o := s.findOrder(w, r, chi.URLParam(r, "id")); o != nil {
		reply(w, http.StatusOK, canonical, map[string]any{"order": orderViewOf(o)}, "")
	}
}

// cancelOrder accepts pending orders only and returns their stock.
func (s *Server) cancelOrder(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o := s.findOrder(w, r, chi.URLParam(r, "id"))
	if o == nil {
		return
	}
	if o.Status != statusPending {
		fail(w, http.StatusBadRequest, "Only pending orders can be cancelled")
		return
	}
	s.restock(o)
	o.Status = statusCancelled
	reply(w, http.StatusOK, canonical, map[string]any{"order": orderViewOf(o)}, "Order cancelled")
}

func (s *Server) restock(o *order) {
	for _, l := range o.Lines {
		if p, found := s.products[l.ProductID]; found {
			p.Stock += l.Quantity
		}
	}
}

// listOrders answers without a flag.
func (s *Server) listOrders(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	status := r.URL.Query().Get("status")

	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []*order
	for i := len(s.orders) - 1; i >= 0; i-- {
		if status == "" || s.orders[i].Status == status {
			matched = append(matched, s.orders[i])
		}
	}
	items, pages := paginate(matched, page, limit)
	writeJSON(w, http.StatusOK, map[string]any{
		"orders": orderViews(items),
		"pagination": map[string]int{
			"page":       page,
			"limit":      limit,
			"total":      len(matched),
			"totalPages": pages,
		},
	})
}

func (s *Server) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Status string `json:"status"`
	}
	if err := decodeBody(r, &in); err != nil || !slices.Contains(orderStatuses, in.Status) {
		fail(w, http.StatusBadRequest, "Invalid status")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	o := s.findOrder(w, r, chi.URLParam(r, "id"))
	if o == nil {
		return
	}
	if o.Status == statusCancelled && in.Status != statusCancelled {
		fail(w, http.StatusBadRequest, "Cancelled orders cannot be reopened")
		return
	}
	if in.Status == statusCancelled && o.Status != statusCancelled {
		s.restock(o)
	}
	o.Status = in.Status
	if in.Status == statusDelivered && o.PaymentMethod == paymentCOD {
		o.IsPaid = true
	}
	reply(w, http.StatusOK, canonical, map[string]any{"order": orderViewOf(o)}, "Order status updated")
}

func orderViews(os []*order) []orderView {
	out := make([]orderView, 0, len(os))
	for _, o := range os {
		out = append(out, orderViewOf(o))
	}
	return out
}
