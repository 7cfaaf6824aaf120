package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrijs2005/storefront/internal/client/api"
	"github.com/dmitrijs2005/storefront/internal/client/auth"
	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/dmitrijs2005/storefront/internal/netx"
)

type Server struct {
	api          *api.Client
	cookieName   string
	cookieSecure bool
	now          func() time.Time
	logger       logging.Logger
}

type Option func(*Server)

// WithCookie sets the token cookie name and its Secure attribute.
func WithCookie(name string, secure bool) Option {
	return func(s *Server) {
		if name != "" {
			s.cookieName = name
		}
		s.cookieSecure = secure
	}
}

func WithLogger(l logging.Logger) Option {
	return func(s *Server) { s.logger = l }
}

func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// New returns a Server that calls the backend through client, reading the
// token from each request's context.
func New(client *api.Client, opts ...Option) *Server {
	s := &Server{
		api:        client.WithTokens(auth.RequestTokens),
		cookieName: common.TokenCookieName,
		now:        time.Now,
		logger:     logging.Nop(),
	}
	for _, o := range opts {
		o(s)
	}
	s.logger = s.logger.With("module", "web")
	return s
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(netx.RequestLogging(s.logger))
	r.Use(s.withToken)

	r.Get("/", s.homePage)
	r.Get("/login", s.loginPage)
	r.Get("/products", s.productsPage)
	r.Get("/products/{id}", s.productPage)
	r.Get("/categories/{id}", s.categoryPage)

	r.Group(func(r chi.Router) {
		r.Use(s.requireSession)

		r.Get("/cart", s.cartPage)
		r.Get("/checkout", s.checkoutPage)
		r.Get("/orders", s.ordersPage)
		r.Get("/orders/{id}", s.orderPage)
		r.Get("/profile", s.profilePage)

		r.Route("/admin", func(r chi.Router) {
			r.Get("/products", s.adminProductsPage)
			r.Get("/categories", s.adminCategoriesPage)
			r.Get("/users", s.adminUsersPage)
			r.Get("/carts", s.adminCartsPage)
			r.Get("/orders", s.adminOrdersPage)
		})
	})

	r.Route("/actions", func(r chi.Router) {
		r.Post("/login", s.login)
		r.Post("/register", s.register)
		r.Post("/logout", s.logout)
		r.Put("/profile", s.updateProfile)

		r.Post("/cart", s.addToCart)
		r.Delete("/cart", s.clearCart)
		r.Put("/cart/{productId}", s.updateCartItem)
		r.Delete("/cart/{productId}", s.removeFromCart)

		r.Post("/orders", s.createOrder)
		r.Put("/orders/{id}/cancel", s.cancelOrder)
		r.Post("/payments/intent", s.createPaymentIntent)
		r.Post("/payments/confirm", s.confirmPayment)

		r.Route("/admin", func(r chi.Router) {
			r.Post("/products", s.createProduct)
			r.Put("/products/{id}", s.updateProduct)
			r.Delete("/products/{id}", s.deleteProduct)

			r.Post("/categories", s.createCategory)
			r.Put("/categories/{id}", s.updateCategory)
			r.Delete("/categories/{id}", s.deleteCategory)

			r.Post("/users", s.createAdmin)
			r.Put("/users/{id}", s.updateUser)
			r.Delete("/users/{id}", s.deleteUser)

			r.Delete("/carts/{userId}", s.deleteUserCart)
			r.Patch("/orders/{id}/status", s.updateOrderStatus)
		})
	})

	return r
}
