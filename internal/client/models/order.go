package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
)

type OrderItem struct {
	Product       Ref             `json:"product"`
	Quantity      int             `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	SelectedSize  string          `json:"selectedSize,omitempty"`
	SelectedColor string          `json:"selectedColor,omitempty"`
}

type ShippingAddress struct {
	FullName   string `json:"fullName"`
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
	Phone      string `json:"phone,omitempty"`
}

type Order struct {
	ID              string          `json:"id"`
	User            Ref             `json:"user"`
	Items           []OrderItem     `json:"items"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
	Status          string          `json:"status"`
	IsPaid          bool            `json:"isPaid"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	CreatedAt       *time.Time      `json:"createdAt,omitempty"`
}

func (o *Order) UnmarshalJSON(b []byte) error {
	type alias Order
	var aux struct {
		alias
		MongoID string `json:"_id"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*o = Order(aux.alias)
	if o.ID == "" {
		o.ID = aux.MongoID
	}
	return nil
}

// OrderInput is the body of order creation.
type OrderInput struct {
	Items           []OrderItemInput `json:"items"`
	ShippingAddress ShippingAddress  `json:"shippingAddress"`
	PaymentMethod   string           `json:"paymentMethod"`
}

type OrderItemInput struct {
	ProductID     string `json:"productId"`
	Quantity      int    `json:"quantity"`
	SelectedSize  string `json:"selectedSize,omitempty"`
	SelectedColor string `json:"selectedColor,omitempty"`
}

// OrderItemsFromCart turns cart lines into order lines.
func OrderItemsFromCart(c Cart) []OrderItemInput {
	items := make([]OrderItemInput, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, OrderItemInput{
			ProductID:     it.Product.ID,
			Quantity:      it.Quantity,
			SelectedSize:  it.SelectedSize,
			SelectedColor: it.SelectedColor,
		})
	}
	return items
}

type OrderList struct {
	Orders     []Order    `json:"orders"`
	Pagination Pagination `json:"pagination"`
}
