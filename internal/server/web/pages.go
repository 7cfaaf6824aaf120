package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/storefront/internal/client/auth"
	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/services"
)

type HomePage struct {
	Featured   []models.Product  `json:"featured"`
	Categories []models.Category `json:"categories"`
}

type LoginPage struct {
	Next string `json:"next"`
}

type ProductsPage struct {
	Products   []models.Product  `json:"products"`
	Pagination models.Pagination `json:"pagination"`
	Categories []models.Category `json:"categories"`
	Query      ProductQuery      `json:"query"`
}

type ProductPage struct {
	Product models.Product   `json:"product"`
	Related []models.Product `json:"related"`
}

type CategoryPage struct {
	Category   models.Category   `json:"category"`
	Products   []models.Product  `json:"products"`
	Pagination models.Pagination `json:"pagination"`
}

type CartPage struct {
	Cart     models.Cart     `json:"cart"`
	Count    int             `json:"count"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type CheckoutPage struct {
	Cart           models.Cart     `json:"cart"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Profile        models.User     `json:"profile"`
	PaymentMethods []string        `json:"paymentMethods"`
}

type OrdersPage struct {
	Orders     []models.Order    `json:"orders"`
	Pagination models.Pagination `json:"pagination"`
}

type OrderPage struct {
	Order   models.Order    `json:"order"`
	Payment *models.Payment `json:"payment,omitempty"`
}

type ProfilePage struct {
	User models.User `json:"user"`
}

func (s *Server) homePage(w http.ResponseWriter, r *http.Request) {
	var page HomePage
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		list, err := check(s.api.GetProducts(ctx, models.PageRequest{Page: 1, Limit: featuredCount}, models.ProductFilter{Featured: true}))
		page.Featured = list.Products
		return err
	})
	g.Go(func() error {
		var err error
		page.Categories, err = check(s.api.GetCategories(ctx))
		return err
	})
	if err := g.Wait(); err != nil {
		s.pageFailed(w, r, err)
		return
	}
	s.writePage(w, page)
}

// loginPage sends signed-in visitors straight to next.
func (s *Server) loginPage(w http.ResponseWriter, r *http.Request) {
	next := localPath(r.URL.Query().Get("next"))
	if auth.FromContext(r.Context()) != "" {
		http.Redirect(w, r, next, http.StatusSeeOther)
		return
	}
	s.writePage(w, LoginPage{Next: next})
}

func (s *Server) productsPage(w http.ResponseWriter, r *http.Request) {
	page := ProductsPage{Query: productQuery(r)}
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		list, err := check(s.api.GetProducts(ctx, page.Query.page(), page.Query.filter()))
		page.Products, page.Pagination = list.Products, list.Pagination
		return err
	})
	g.Go(func() error {
		var err error
		page.Categories, err = check(s.api.GetCategories(ctx))
		return err
	})
	if err := g.Wait(); err != nil {
		s.pageFailed(w, r, err)
		return
	}
	s.writePage(w, page)
}

// productPage fetches the product, then up to four others from its
// category. A failed related fetch leaves Related empty.
func (s *Server) productPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, err := check(s.api.GetProduct(ctx, chi.URLParam(r, "id")))
	if err != nil {
		s.pageFailed(w, r, err)
		return
	}

	page := ProductPage{Product: p, Related: []models.Product{}}
	if p.Category.ID != "" {
		res := s.api.GetProducts(ctx, models.PageRequest{Page: 1, Limit: relatedCount + 1}, models.ProductFilter{Category: p.Category.ID})
		if !res.Success {
			s.logger.Warn(ctx, "related products unavailable", "product", p.ID, "error", res.Error)
		}
		for _, other := range res.Data.Products {
			if other.ID != p.ID && len(page.Related) < relatedCount {
				page.Related = append(page.Related, other)
			}
		}
	}
	s.writePage(w, page)
}

func (s *Server) categoryPage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var page CategoryPage
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		page.Category, err = check(s.api.GetCategory(ctx, id))
		return err
	})
	g.Go(func() error {
		list, err := check(s.api.GetProducts(ctx, pageParam(r), models.ProductFilter{Category: id}))
		page.Products, page.Pagination = list.Products, list.Pagination
		return err
	})
	if err := g.Wait(); err != nil {
		s.pageFailed(w, r, err)
		return
	}
	s.writePage(w, page)
}

func (s *Server) cartPage(w http.ResponseWriter, r *http.Request) {
	c, err := check(s.api.GetCart(r.Context()))
	if err != nil {
		s.pageFailed(w, r, err)
		return
	}
	if c.Items == nil {
		c.Items = []models.CartItem{}
	}
	s.writePage(w, CartPage{Cart: c, Count: c.Count(), Subtotal: c.Subtotal()})
}

// checkoutPage sends visitors with an empty cart back to /cart.
func (s *Server) checkoutPage(w http.ResponseWriter, r *http.Request) {
	var page CheckoutPage
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		page.Cart, err = check(s.api.GetCart(ctx))
		return err
	})
	g.Go(func() error {
		var err error
		page.Profile, err = check(s.api.GetProfile(ctx))
		return err
	})
	if err := g.Wait(); err != nil {
		s.pageFailed(w, r, err)
		return
	}
	if len(page.Cart.Items) == 0 {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}
	page.Subtotal = page.Cart.Subtotal()
	page.PaymentMethods = []string{services.PaymentCard, services.PaymentCOD}
	s.writePage(w, page)
}

func (s *Server) ordersPage(w http.ResponseWriter, r *http.Request) {
	list, err := check(s.api.GetMyOrders(r.Context(), pageParam(r)))
	if err != nil {
		s.pageFailed(w, r, err)
		return
	}
	s.writePage(w, OrdersPage{Orders: list.Orders, Pagination: list.Pagination})
}

// orderPage adds the payment of card orders when the backend has one.
func (s *Server) orderPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	o, err := check(s.api.GetOrder(ctx, chi.URLParam(r, "id")))
	if err != nil {
		s.pageFailed(w, r, err)
		return
	}
	page := OrderPage{Order: o}
	if o.PaymentMethod == services.PaymentCard {
		if res := s.api.GetPayment(ctx, o.ID); res.Success {
			page.Payment = &res.Data
		}
	}
	s.writePage(w, page)
}

func (s *Server) profilePage(w http.ResponseWriter, r *http.Request) {
	u, err := check(s.api.GetProfile(r.Context()))
	if err != nil {
		s.pageFailed(w, r, err)
		return
	}
	s.writePage(w, ProfilePage{User: u})
}
