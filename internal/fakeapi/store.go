package fakeapi

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Seeded accounts.
const (
	AdminEmail    = "admin@storefront.test"
	AdminPassword = "admin123"
	UserEmail     = "user@storefront.test"
	UserPassword  = "user1234"
)

const (
	roleUser  = "user"
	roleAdmin = "admin"
)

const (
	statusPending    = "pending"
	statusProcessing = "processing"
	statusShipped    = "shipped"
	statusDelivered  = "delivered"
	statusCancelled  = "cancelled"
)

var orderStatuses = []string{statusPending, statusProcessing, statusShipped, statusDelivered, statusCancelled}

type user struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Avatar    string    `json:"avatar,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"createdAt"`

	hash []byte
}

type category struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
}

type product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	Photos      []string
	CategoryID  string
	Sizes       []string
	Colors      []string
	Stock       int
	Featured    bool
	CreatedAt   time.Time
}

type cartLine struct {
	ProductID     string
	Quantity      int
	SelectedSize  string
	SelectedColor string
}

type cart struct {
	ID        string
	UserID    string
	Lines     []cartLine
	UpdatedAt time.Time
}

type orderLine struct {
	ProductID     string          `json:"-"`
	Name          string          `json:"-"`
	Quantity      int             `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	SelectedSize  string          `json:"selectedSize,omitempty"`
	SelectedColor string          `json:"selectedColor,omitempty"`
}

type address struct {
	FullName   string `json:"fullName"`
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
	Phone      string `json:"phone,omitempty"`
}

func (a address) complete() bool {
	return strings.TrimSpace(a.FullName) != "" &&
		strings.TrimSpace(a.Street) != "" &&
		strings.TrimSpace(a.City) != ""
}

type order struct {
	ID            string
	UserID        string
	Lines         []orderLine
	Address       address
	PaymentMethod string
	Status        string
	IsPaid        bool
	Total         decimal.Decimal
	CreatedAt     time.Time
}

type payment struct {
	ID       string          `json:"id"`
	OrderID  string          `json:"orderId"`
	UserID   string          `json:"-"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	Status   string          `json:"status"`
	Secret   string          `json:"-"`
}

type upload struct {
	contentType string
	data        []byte
}
