package fakeapi

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/dmitrijs2005/storefront/internal/netx"
)

// Server holds the whole backend state in memory. All handlers serialize on
// one mutex.
type Server struct {
	mu         sync.Mutex
	users      map[string]*user
	emails     map[string]string
	categories map[string]*category
	catOrder   []string
	products   map[string]*product
	carts      map[string]*cart
	orders     []*order
	payments   map[string]*payment
	uploads    map[string]upload

	secret     []byte
	tokenTTL   time.Duration
	bcryptCost int
	now        func() time.Time
	logger     logging.Logger
}

type Option func(*Server)

func WithSecret(secret string) Option {
	return func(s *Server) { s.secret = []byte(secret) }
}

func WithTokenTTL(d time.Duration) Option {
	return func(s *Server) { s.tokenTTL = d }
}

func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

func WithLogger(l logging.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithBcryptCost lowers the hashing cost, for tests.
func WithBcryptCost(cost int) Option {
	return func(s *Server) { s.bcryptCost = cost }
}

// New returns a seeded Server.
func New(opts ...Option) (*Server, error) {
	s := &Server{
		users:      map[string]*user{},
		emails:     map[string]string{},
		categories: map[string]*category{},
		products:   map[string]*product{},
		carts:      map[string]*cart{},
		payments:   map[string]*payment{},
		uploads:    map[string]upload{},
		secret:     []byte("storefront-dev-secret"),
		tokenTTL:   24 * time.Hour,
		bcryptCost: bcrypt.DefaultCost,
		now:        time.Now,
		logger:     logging.Nop(),
	}
	for _, o := range opts {
		o(s)
	}
	s.logger = s.logger.With("module", "fakeapi")
	if err := s.seed(); err != nil {
		return nil, err
	}
	return s, nil
}

// Handler serves the API under common.APIPrefix and uploaded files under
// /uploads.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(netx.RequestLogging(s.logger))

	r.Get("/uploads/{name}", s.serveUpload)

	r.Route(common.APIPrefix, func(r chi.Router) {
		r.Get("/health", s.health)

		r.Post("/auth/register", s.register)
		r.Post("/auth/login", s.login)

		r.Get("/products", s.listProducts)
		r.Get("/products/{id}", s.getProduct)
		r.Get("/categories", s.listCategories)
		r.Get("/categories/{id}", s.getCategory)

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)

			r.Get("/users/profile", s.getProfile)
			r.Put("/users/profile", s.updateProfile)

			r.Get("/cart", s.getCart)
			r.Post("/cart", s.addToCart)
			r.Delete("/cart", s.clearCart)
			r.Put("/cart/{productId}", s.updateCartItem)
			r.Delete("/cart/{productId}", s.removeFromCart)

			r.Post("/orders", s.createOrder)
			r.Get("/orders/my", s.myOrders)
			r.Get("/orders/{id}", s.getOrder)
			r.Put("/orders/{id}/cancel", s.cancelOrder)

			r.Post("/payments/create-intent", s.createPaymentIntent)
			r.Post("/payments/confirm", s.confirmPayment)
			r.Get("/payments/order/{orderId}", s.getPayment)

			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)

				r.Post("/products", s.createProduct)
				r.Put("/products/{id}", s.updateProduct)
				r.Delete("/products/{id}", s.deleteProduct)

				r.Post("/categories", s.createCategory)
				r.Put("/categories/{id}", s.updateCategory)
				r.Delete("/categories/{id}", s.deleteCategory)

				r.Get("/cart/admin", s.listCarts)
				r.Get("/cart/admin/{userId}", s.getUserCart)
				r.Delete("/cart/admin/{userId}", s.deleteUserCart)

				r.Get("/orders/admin", s.listOrders)
				r.Put("/orders/admin/{id}/status", s.updateOrderStatus)

				r.Get("/admin/users", s.listUsers)
				r.Post("/admin/users", s.createUser)
				r.Get("/admin/users/{id}", s.getUser)
				r.Put("/admin/users/{id}", s.updateUser)
				r.Delete("/admin/users/{id}", s.deleteUser)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		fail(w, http.StatusNotFound, "Route not found")
	})
	return r
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) serveUpload(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	u, ok := s.uploads[chi.URLParam(r, "name")]
	s.mu.Unlock()
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", u.contentType)
	_, _ = w.Write(u.data)
}

func (s *Server) addUser(name, email, password, role string) (*user, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, err
	}
	u := &user{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Role:      role,
		CreatedAt: s.now(),
		hash:      hash,
	}
	s.users[u.ID] = u
	s.emails[email] = u.ID
	return u, nil
}

func (s *Server) addCategory(id, name, description string) {
	s.categories[id] = &category{ID: id, Name: name, Description: description}
	s.catOrder = append(s.catOrder, id)
}

func (s *Server) seed() error {
	if _, err := s.addUser("Store Admin", AdminEmail, AdminPassword, roleAdmin); err != nil {
		return err
	}
	if _, err := s.addUser("Sample Shopper", UserEmail, UserPassword, roleUser); err != nil {
		return err
	}

	s.addCategory("cat-shirts", "Shirts", "Tees and shirts")
	s.addCategory("cat-shoes", "Shoes", "Sneakers and boots")
	s.addCategory("cat-bags", "Bags", "Backpacks and totes")

	seed := []product{
		{ID: "prod-classic-tee", Name: "Classic Tee", Description: "Cotton crew neck", Price: decimal.RequireFromString("19.90"), CategoryID: "cat-shirts", Sizes: []string{"S", "M", "L"}, Colors: []string{"white", "black"}, Stock: 50, Featured: true},
		{ID: "prod-oxford-shirt", Name: "Oxford Shirt", Description: "Button-down oxford", Price: decimal.RequireFromString("49.00"), CategoryID: "cat-shirts", Sizes: []string{"M", "L"}, Colors: []string{"blue"}, Stock: 20},
		{ID: "prod-runner", Name: "Trail Runner", Description: "Lightweight running shoe", Price: decimal.RequireFromString("89.99"), CategoryID: "cat-shoes", Sizes: []string{"42", "43", "44"}, Stock: 10, Featured: true},
		{ID: "prod-boot", Name: "Leather Boot", Description: "Waterproof leather boot", Price: decimal.RequireFromString("129.00"), CategoryID: "cat-shoes", Sizes: []string{"42", "43"}, Stock: 2},
		{ID: "prod-backpack", Name: "Day Backpack", Description: "20L everyday backpack", Price: decimal.RequireFromString("59.50"), CategoryID: "cat-bags", Colors: []string{"grey", "olive"}, Stock: 15},
		{ID: "prod-tote", Name: "Canvas Tote", Description: "Heavy canvas tote", Price: decimal.RequireFromString("14.00"), CategoryID: "cat-bags", Stock: 0},
	}
	base := s.now()
	for i := range seed {
		p := seed[i]
		p.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		s.products[p.ID] = &p
	}
	return nil
}
