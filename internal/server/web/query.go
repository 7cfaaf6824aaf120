package web

import (
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/dmitrijs2005/storefront/internal/client/models"
)

const (
	defaultPageSize = 12
	featuredCount   = 8
	relatedCount    = 4
)

// ProductQuery is the catalog filter as read from the URL.
type ProductQuery struct {
	Page     int              `json:"page"`
	Limit    int              `json:"limit"`
	Category string           `json:"category,omitempty"`
	Search   string           `json:"search,omitempty"`
	Sort     string           `json:"sort,omitempty"`
	MinPrice *decimal.Decimal `json:"minPrice,omitempty"`
	MaxPrice *decimal.Decimal `json:"maxPrice,omitempty"`
}

func (q ProductQuery) page() models.PageRequest {
	return models.PageRequest{Page: q.Page, Limit: q.Limit}
}

func (q ProductQuery) filter() models.ProductFilter {
	return models.ProductFilter{
		Category: q.Category,
		Search:   q.Search,
		Sort:     q.Sort,
		MinPrice: q.MinPrice,
		MaxPrice: q.MaxPrice,
	}
}

func intParam(r *http.Request, key string, def int) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || n < 1 {
		return def
	}
	return n
}

// pageParam reads page and limit with the catalog defaults.
func pageParam(r *http.Request) models.PageRequest {
	return models.PageRequest{Page: intParam(r, "page", 1), Limit: intParam(r, "limit", defaultPageSize)}
}

// decimalParam ignores values that do not parse.
func decimalParam(r *http.Request, key string) *decimal.Decimal {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return nil
	}
	return &d
}

func productQuery(r *http.Request) ProductQuery {
	q := r.URL.Query()
	p := pageParam(r)
	return ProductQuery{
		Page:     p.Page,
		Limit:    p.Limit,
		Category: q.Get("category"),
		Search:   q.Get("search"),
		Sort:     q.Get("sort"),
		MinPrice: decimalParam(r, "minPrice"),
		MaxPrice: decimalParam(r, "maxPrice"),
	}
}
