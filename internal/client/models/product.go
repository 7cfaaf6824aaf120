package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Photos      []string        `json:"photos,omitempty"`
	Category    Ref             `json:"category"`
	Sizes       []string        `json:"sizes,omitempty"`
	Colors      []string        `json:"colors,omitempty"`
	Stock       int             `json:"stock"`
	Featured    bool            `json:"featured,omitempty"`
	CreatedAt   *time.Time      `json:"createdAt,omitempty"`
}

func (p *Product) UnmarshalJSON(b []byte) error {
	type alias Product
	var aux struct {
		alias
		MongoID string `json:"_id"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*p = Product(aux.alias)
	if p.ID == "" {
		p.ID = aux.MongoID
	}
	return nil
}

// ProductFilter narrows a product listing. Zero values are not sent.
type ProductFilter struct {
	Category string
	Search   string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Sort     string
	Featured bool
}

// ProductList is one page of products.
type ProductList struct {
	Products   []Product  `json:"products"`
	Pagination Pagination `json:"pagination"`
}

// ProductInput is the payload of admin create/update. Photos are uploaded
// as multipart parts next to the scalar fields.
type ProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Category    string
	Sizes       []string
	Colors      []string
	Stock       int
	Featured    bool
	Photos      []Upload
}
