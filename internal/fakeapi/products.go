package fakeapi

import (
	"cmp"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// listProducts answers {success, data: {products, pagination}}.
func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, limit := pageParams(r)

	var minPrice, maxPrice *decimal.Decimal
	for key, dst := range map[string]**decimal.Decimal{"minPrice": &minPrice, "maxPrice": &maxPrice} {
		if v := q.Get(key); v != "" {
			d, err := decimal.NewFromString(v)
			if err != nil {
				fail(w, http.StatusBadRequest, "Invalid "+key)
				return
			}
			*dst = &d
		}
	}
	search := strings.ToLower(strings.TrimSpace(q.Get("search")))
	categoryKey := q.Get("category")
	featured := q.Get("featured") == "true"

	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []*product
	for _, p := range s.products {
		switch {
		case categoryKey != "" && !s.inCategory(p, categoryKey):
		case search != "" && !strings.Contains(strings.ToLower(p.Name+" "+p.Description), search):
		case minPrice != nil && p.Price.LessThan(*minPrice):
		case maxPrice != nil && p.Price.GreaterThan(*maxPrice):
		case featured && !p.Featured:
		default:
			matched = append(matched, p)
		}
	}
	sortProducts(matched, q.Get("sort"))

	pageItems, pages := paginate(matched, page, limit)
	views := make([]productView, 0, len(pageItems))
	for _, p := range pageItems {
		views = append(views, s.productView(p))
	}
	reply(w, http.StatusOK, canonical, map[string]any{
		"products": views,
		"pagination": map[string]int{
			"page":       page,
			"limit":      limit,
			"total":      len(matched),
			"totalPages": pages,
		},
	}, "")
}

// inCategory matches a category id or a case-insensitive name.
func (s *Server) inCategory(p *product, key string) bool {
	if p.CategoryID == key {
		return true
	}
	c, found := s.categories[p.CategoryID]
	return found && strings.EqualFold(c.Name, key)
}

// sortProducts orders by "price", "-price", "name" or, by default, newest
// first.
func sortProducts(ps []*product, key string) {
	slices.SortStableFunc(ps, func(a, b *product) int {
		switch key {
		case "price":
			return cmp.Or(a.Price.Cmp(b.Price), cmp.Compare(a.ID, b.ID))
		case "-price":
			return cmp.Or(b.Price.Cmp(a.Price), cmp.Compare(a.ID, b.ID))
		case "name":
			return cmp.Or(cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)), cmp.Compare(a.ID, b.ID))
		}
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), cmp.Compare(a.ID, b.ID))
	})
}

// getProduct answers with the misspelled flag: {sucess, data: {product}}.
func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, found := s.products[chi.URLParam(r, "id")]
	if !found {
		fail(w, http.StatusNotFound, "Product not found")
		return
	}
	reply(w, http.StatusOK, misspelled, map[string]any{"product": s.productView(p)}, "")
}

func (s *Server) createProduct(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(r)
	if err != nil {
		fail(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := &product{ID: uuid.NewString(), CreatedAt: s.now()}
	if msg := s.applyProductForm(p, f); msg != "" {
		fail(w, http.StatusBadRequest, msg)
		return
	}
	if p.Name == "" || p.Price.IsZero() {
		fail(w, http.StatusBadRequest, "Name and price are required")
		return
	}
	s.products[p.ID] = p
	reply(w, http.StatusCreated, canonical, map[string]any{"product": s.productView(p)}, "Product created")
}

func (s *Server) updateProduct(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(r)
	if err != nil {
		fail(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, found := s.products[chi.URLParam(r, "id")]
	if !found {
		fail(w, http.StatusNotFound, "Product not found")
		return
	}
	next := *p
	if msg := s.applyProductForm(&next, f); msg != "" {
		fail(w, http.StatusBadRequest, msg)
		return
	}
	*p = next
	reply(w, http.StatusOK, canonical, map[string]any{"product": s.productView(p)}, "Product updated")
}

// deleteProduct answers with a message only.
func (s *Server) deleteProduct(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := chi.URLParam(r, "id")
	if _, found := s.products[id]; !found {
		fail(w, http.StatusNotFound, "Product not found")
		return
	}
	delete(s.products, id)
	reply(w, http.StatusOK, canonical, nil, "Product deleted")
}

// applyProductForm copies the sent fields onto p. New photos are appended.
// Called with s.mu held.
func (s *Server) applyProductForm(p *product, f *form) string {
	if v, sent := f.get("name"); sent && v != "" {
		p.Name = v
	}
	if v, sent := f.get("description"); sent {
		p.Description = v
	}
	if v, sent := f.get("category"); sent && v != "" {
		if _, found := s.categories[v]; !found {
			return "Category not found"
		}
		p.CategoryID = v
	}
	if v, sent := f.list("sizes"); sent {
		p.Sizes = v
	}
	if v, sent := f.list("colors"); sent {
		p.Colors = v
	}
	if v, sent := f.get("price"); sent {
		d, err := decimal.NewFromString(v)
		if err != nil || d.IsNegative() {
			return "Invalid price"
		}
		p.Price = d
	}
	if v, sent := f.get("stock"); sent {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return "Invalid stock"
		}
		p.Stock = n
	}
	if v, sent := f.get("featured"); sent {
		p.Featured = v == "true" || v == "1"
	}
	urls, err := s.saveUploads(f, "photos")
	if err != nil {
		return "Failed to upload photos"
	}
	p.Photos = append(p.Photos, urls...)
	return ""
}
