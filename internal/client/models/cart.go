package models

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// CartProduct is the product summary embedded in a cart line. The backend
// sends it populated ({_id, name, photos, price}) or as a bare id.
type CartProduct struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Photos []string        `json:"photos,omitempty"`
	Price  decimal.Decimal `json:"price"`
}

func (p *CartProduct) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var id string
		if err := json.Unmarshal(b, &id); err != nil {
			return err
		}
		*p = CartProduct{ID: id}
		return nil
	}
	type alias CartProduct
	var aux struct {
		alias
		MongoID string `json:"_id"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*p = CartProduct(aux.alias)
	if p.ID == "" {
		p.ID = aux.MongoID
	}
	return nil
}

type CartItem struct {
	Product       CartProduct     `json:"product"`
	Quantity      int             `json:"quantity"`
	SelectedSize  string          `json:"selectedSize,omitempty"`
	SelectedColor string          `json:"selectedColor,omitempty"`
	Price         decimal.Decimal `json:"price"`
}

// LineTotal is unit price times quantity. The line price wins over the
// product price when the backend sent one.
func (i CartItem) LineTotal() decimal.Decimal {
	unit := i.Price
	if unit.IsZero() {
		unit = i.Product.Price
	}
	return unit.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type Cart struct {
	ID         string          `json:"id,omitempty"`
	UserID     string          `json:"userId,omitempty"`
	Items      []CartItem      `json:"items"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	TotalItems int             `json:"totalItems"`
}

// Subtotal sums the line totals.
func (c Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range c.Items {
		sum = sum.Add(it.LineTotal())
	}
	return sum
}

// Count sums the quantities.
func (c Cart) Count() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

// Find returns the first line for productID.
func (c Cart) Find(productID string) (CartItem, bool) {
	for _, it := range c.Items {
		if it.Product.ID == productID {
			return it, true
		}
	}
	return CartItem{}, false
}

// AddToCartInput is the body of an add-to-cart action.
type AddToCartInput struct {
	ProductID     string `json:"productId"`
	Quantity      int    `json:"quantity"`
	SelectedSize  string `json:"selectedSize,omitempty"`
	SelectedColor string `json:"selectedColor,omitempty"`
}

// CartList is one page of carts in the admin view.
type CartList struct {
	Carts      []Cart     `json:"carts"`
	Pagination Pagination `json:"pagination"`
}
