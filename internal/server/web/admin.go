package web

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/storefront/internal/client/models"
)

// Admin pages need a session; the backend decides whether it is an admin
// one and its refusal surfaces as the error panel.

type AdminProductsPage struct {
	Products   []models.Product  `json:"products"`
	Pagination models.Pagination `json:"pagination"`
	Categories []models.Category `json:"categories"`
	Query      ProductQuery      `json:"query"`
}

type AdminCategoriesPage struct {
	Categories []models.Category `json:"categories"`
}

type AdminUsersPage struct {
	Users      []models.User     `json:"users"`
	Pagination models.Pagination `json:"pagination"`
	Filter     UserQuery         `json:"filter"`
}

type UserQuery struct {
	Role   string `json:"role,omitempty"`
	Search string `json:"search,omitempty"`
}

type AdminCartsPage struct {
	Carts      []models.Cart     `json:"carts"`
	Pagination models.Pagination `json:"pagination"`
}

type AdminOrdersPage struct {
	Orders     []models.Order    `json:"orders"`
	Pagination models.Pagination `json:"pagination"`
	Status     string            `json:"status,omitempty"`
	Statuses   []string          `json:"statuses"`
}

var orderStatuses = []string{
	models.OrderPending,
	models.OrderProcessing,
	models.OrderShipped,
	models.OrderDelivered,
	models.OrderCancelled,
}

func (s *Server) adminProductsPage(w http.ResponseWriter, r *http.Request) {
	page := AdminProductsPage{Query: productQuery(r)}
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

func (s *Server) adminCategoriesPage(w http.ResponseWriter, r *http.Request) {
	cats, err := check(s.api.GetCategories(r.Context()))
	if err != nil {
		s.pageFailed(w, r, err)
		return
	}
	s.writePage(w, AdminCategoriesPage{Categories: cats})
}

func (s *Server) adminUsersPage(w http.ResponseWriter, r *http.Request) {
	q := UserQuery{Role: r.URL.Query().Get("role"), Search: r.URL.Query().Get("search")}
	list, err := check(s.api.GetUsers(r.Context(), pageParam(r), models.UserFilter{Role: q.Role, Search: q.Search}))
	if err != nil {
		s.pageFailed(w, r, err)
		return
	}
	s.writePage(w, AdminUsersPage{Users: list.Users, Pagination: list.Pagination, Filter: q})
}

func (s *Server) adminCartsPage(w http.ResponseWriter, r *http.Request) {
	list, err := check(s.api.GetAllCarts(r.Context(), pageParam(r)))
	if err != nil {
		s.pageFailed(w, r, err)
		return
	}
	s.writePage(w, AdminCartsPage{Carts: list.Carts, Pagination: list.Pagination})
}

func (s *Server) adminOrdersPage(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	list, err := check(s.api.GetAllOrders(r.Context(), pageParam(r), status))
	if err != nil {
		s.pageFailed(w, r, err)
		return
	}
	s.writePage(w, AdminOrdersPage{Orders: list.Orders, Pagination: list.Pagination, Status: status, Statuses: orderStatuses})
}
