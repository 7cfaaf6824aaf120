// Package guestcart stores the cart of a signed-out user in the local state
// database until it can be merged into the server cart.
package guestcart

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Item is one guest cart line. Lines are unique per product, size and color.
type Item struct {
	ID            string
	ProductID     string
	Name          string
	Price         decimal.Decimal
	Quantity      int
	SelectedSize  string
	SelectedColor string
	AddedAt       time.Time
}

func (i Item) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type Repository interface {
	// Add inserts a line or increases the quantity of the matching one.
	Add(ctx context.Context, item Item) error
	// SetQuantity sets the quantity of every line of a product.
	SetQuantity(ctx context.Context, productID string, quantity int) error
	// Remove deletes every line of a product.
	Remove(ctx context.Context, productID string) error
	// RemoveLine deletes one line by id.
	RemoveLine(ctx context.Context, id string) error
	List(ctx context.Context) ([]Item, error)
	Clear(ctx context.Context) error
}
