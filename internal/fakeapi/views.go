package fakeapi

import (
	"time"

	"github.com/shopspring/decimal"
)

type ref struct {
	ID   string `json:"_id"`
	Name string `json:"name,omitempty"`
}

type productView struct {
	ID          string          `json:"_id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Photos      []string        `json:"photos"`
	Category    any             `json:"category"`
	Sizes       []string        `json:"sizes"`
	Colors      []string        `json:"colors"`
	Stock       int             `json:"stock"`
	Featured    bool            `json:"featured"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type cartProductView struct {
	ID     string          `json:"_id"`
	Name   string          `json:"name"`
	Photos []string        `json:"photos"`
	Price  decimal.Decimal `json:"price"`
}

type cartItemView struct {
	Product       any             `json:"product"`
	Quantity      int             `json:"quantity"`
	SelectedSize  string          `json:"selectedSize,omitempty"`
	SelectedColor string          `json:"selectedColor,omitempty"`
	Price         decimal.Decimal `json:"price"`
}

type cartView struct {
	ID         string          `json:"_id"`
	User       string          `json:"user"`
	Items      []cartItemView  `json:"items"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	TotalItems int             `json:"totalItems"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

type orderItemView struct {
	orderLine
	Product ref `json:"product"`
}

type orderView struct {
	ID              string          `json:"_id"`
	User            string          `json:"user"`
	Items           []orderItemView `json:"items"`
	ShippingAddress address         `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
	Status          string          `json:"status"`
	IsPaid          bool            `json:"isPaid"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// The views below are built with s.mu held.

func (s *Server) productView(p *product) productView {
	var cat any = p.CategoryID
	if c, ok := s.categories[p.CategoryID]; ok {
		cat = ref{ID: c.ID, Name: c.Name}
	}
	return productView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Photos:      nonNil(p.Photos),
		Category:    cat,
		Sizes:       nonNil(p.Sizes),
		Colors:      nonNil(p.Colors),
		Stock:       p.Stock,
		Featured:    p.Featured,
		CreatedAt:   p.CreatedAt,
	}
}

// cartView populates products that still exist and falls back to the bare
// id for deleted ones.
func (s *Server) cartView(c *cart) cartView {
	v := cartView{ID: c.ID, User: c.UserID, Items: []cartItemView{}, TotalPrice: decimal.Zero, UpdatedAt: c.UpdatedAt}
	for _, l := range c.Lines {
		item := cartItemView{
			Product:       l.ProductID,
			Quantity:      l.Quantity,
			SelectedSize:  l.SelectedSize,
			SelectedColor: l.SelectedColor,
		}
		if p, ok := s.products[l.ProductID]; ok {
			item.Product = cartProductView{ID: p.ID, Name: p.Name, Photos: nonNil(p.Photos), Price: p.Price}
			item.Price = p.Price
		}
		v.Items = append(v.Items, item)
		v.TotalItems += l.Quantity
		v.TotalPrice = v.TotalPrice.Add(item.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return v
}

func orderViewOf(o *order) orderView {
	v := orderView{
		ID:              o.ID,
		User:            o.UserID,
		Items:           make([]orderItemView, 0, len(o.Lines)),
		ShippingAddress: o.Address,
		PaymentMethod:   o.PaymentMethod,
		Status:          o.Status,
		IsPaid:          o.IsPaid,
		TotalAmount:     o.Total,
		CreatedAt:       o.CreatedAt,
	}
	for _, l := range o.Lines {
		v.Items = append(v.Items, orderItemView{orderLine: l, Product: ref{ID: l.ProductID, Name: l.Name}})
	}
	return v
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
