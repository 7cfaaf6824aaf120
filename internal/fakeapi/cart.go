package fakeapi

import (
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type addToCartRequest struct {
	ProductID     string `json:"productId"`
	Quantity      int    `json:"quantity"`
	SelectedSize  string `json:"selectedSize"`
	SelectedColor string `json:"selectedColor"`
}

// cartOf returns the user's cart, creating it on first use. Called with s.mu
// held.
func (s *Server) cartOf(userID string) *cart {
	c, found := s.carts[userID]
	if !found {
		c = &cart{ID: uuid.NewString(), UserID: userID, UpdatedAt: s.now()}
		s.carts[userID] = c
	}
	return c
}

// getCart answers {success, data: {cart}}.
func (s *Server) getCart(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cartOf(currentUser(r.Context()).ID)
	reply(w, http.StatusOK, canonical, map[string]any{"cart": s.cartView(c)}, "")
}

// addToCart merges lines with the same product and options and answers with
// the misspelled flag and the cart as data.
func (s *Server) addToCart(w http.ResponseWriter, r *http.Request) {
	var in addToCartRequest
	if err := decodeBody(r, &in); err != nil {
		fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if in.Quantity == 0 {
		in.Quantity = 1
	}
	if in.ProductID == "" || in.Quantity < 1 {
		fail(w, http.StatusBadRequest, "Product and a positive quantity are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, found := s.products[in.ProductID]
	if !found {
		fail(w, http.StatusNotFound, "Product not found")
		return
	}

	c := s.cartOf(currentUser(r.Context()).ID)
	i := slices.IndexFunc(c.Lines, func(l cartLine) bool {
		return l.ProductID == in.ProductID && l.SelectedSize == in.SelectedSize && l.SelectedColor == in.SelectedColor
	})
	want := in.Quantity
	if i >= 0 {
		want += c.Lines[i].Quantity
	}
	if want > p.Stock {
		fail(w, http.StatusBadRequest, "Not enough stock available")
		return
	}

	if i >= 0 {
		c.Lines[i].Quantity = want
	} else {
		c.Lines = append(c.Lines, cartLine{
			ProductID:     in.ProductID,
			Quantity:      in.Quantity,
			SelectedSize:  in.SelectedSize,
			SelectedColor: in.SelectedColor,
		})
	}
	c.UpdatedAt = s.now()
	reply(w, http.StatusOK, misspelled, s.cartView(c), "Item added to cart")
}

// updateCartItem sets the quantity of every line of the product.
func (s *Server) updateCartItem(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Quantity int `json:"quantity"`
	}
	if err := decodeBody(r, &in); err != nil || in.Quantity < 1 {
		fail(w, http.StatusBadRequest, "Quantity must be at least 1")
		return
	}
	productID := chi.URLParam(r, "productId")

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cartOf(currentUser(r.Context()).ID)
	i := slices.IndexFunc(c.Lines, func(l cartLine) bool { return l.ProductID == productID })
	if i < 0 {
		fail(w, http.StatusNotFound, "Item not found in cart")
		return
	}
	if p, found := s.products[productID]; found && in.Quantity > p.Stock {
		fail(w, http.StatusBadRequest, "Not enough stock available")
		return
	}
	c.Lines[i].Quantity = in.Quantity
	c.UpdatedAt = s.now()
	reply(w, http.StatusOK, canonical, map[string]any{"cart": s.cartView(c)}, "Cart updated")
}

// removeFromCart answers with a message only; the client refetches.
func (s *Server) removeFromCart(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cartOf(currentUser(r.Context()).ID)
	n := len(c.Lines)
	c.Lines = slices.DeleteFunc(c.Lines, func(l cartLine) bool { return l.ProductID == productID })
	if len(c.Lines) == n {
		fail(w, http.StatusNotFound, "Item not found in cart")
		return
	}
	c.UpdatedAt = s.now()
	reply(w, http.StatusOK, canonical, nil, "Item removed from cart")
}

func (s *Server) clearCart(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cartOf(currentUser(r.Context()).ID)
	c.Lines = nil
	c.UpdatedAt = s.now()
	reply(w, http.StatusOK, canonical, nil, "Cart cleared")
}

// listCarts answers without a flag and with the alternate pagination keys.
func (s *Server) listCarts(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	s.mu.Lock()
	defer s.mu.Unlock()

	all := make([]*cart, 0, len(s.carts))
	for _, c := range s.carts {
		all = append(all, c)
	}
	slices.SortFunc(all, func(a, b *cart) int { return b.UpdatedAt.Compare(a.UpdatedAt) })

	items, pages := paginate(all, page, limit)
	views := make([]cartView, 0, len(items))
	for _, c := range items {
		views = append(views, s.cartView(c))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"carts": views,
		"pagination": map[string]int{
			"currentPage": page,
			"perPage":     limit,
			"totalItems":  len(all),
			"pages":       pages,
		},
	})
}

func (s *Server) getUserCart(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	s.mu.Lock()
	defer s.mu.Unlock()

	c, found := s.carts[userID]
	if !found {
		fail(w, http.StatusNotFound, "Cart not found")
		return
	}
	reply(w, http.StatusOK, canonical, map[string]any{"cart": s.cartView(c)}, "")
}

func (s *Server) deleteUserCart(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, found := s.carts[userID]; !found {
		fail(w, http.StatusNotFound, "Cart not found")
		return
	}
	delete(s.carts, userID)
	reply(w, http.StatusOK, canonical, nil, "Cart deleted")
}
