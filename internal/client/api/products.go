package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/storefront/internal/client/models"
)

// GetProducts lists one page of products. Public.
func (c *Client) GetProducts(ctx context.Context, page models.PageRequest, f models.ProductFilter) Result[models.ProductList] {
	q := pageQuery(page)
	setIf(q, "category", f.Category)
	setIf(q, "search", f.Search)
	setIf(q, "sort", f.Sort)
	if f.MinPrice != nil {
		q.Set("minPrice", f.MinPrice.String())
	}
	if f.MaxPrice != nil {
		q.Set("maxPrice", f.MaxPrice.String())
	}
	if f.Featured {
		q.Set("featured", "true")
	}

	return call(ctx, c, request{
		op:       "products.list",
		method:   http.MethodGet,
		path:     "/products",
		query:    q,
		fallback: "Failed to fetch products",
	}, func(w wire) (models.ProductList, error) {
		items, pg, err := listAndPagination[models.Product](w.payload(), "products")
		if err != nil {
			return models.ProductList{}, err
		}
		return models.ProductList{Products: items, Pagination: fillPagination(pg, page, len(items))}, nil
	})
}

// GetProduct fetches one product. Public.
func (c *Client) GetProduct(ctx context.Context, id string) Result[models.Product] {
	return call(ctx, c, request{
		op:       "products.get",
		method:   http.MethodGet,
		path:     "/products/" + url.PathEscape(id),
		fallback: "Failed to fetch product",
	}, decodeObject[models.Product]("product"))
}

// CreateProduct uploads a new product with its photos. Admin.
func (c *Client) CreateProduct(ctx context.Context, in models.ProductInput) Result[models.Product] {
	return call(ctx, c, request{
		op:       "products.create",
		method:   http.MethodPost,
		path:     "/products",
		form:     productForm(in),
		auth:     true,
		fallback: "Failed to create product",
		precheck: func() string {
			if in.Name == "" {
				return "Product name is required"
			}
			return ""
		},
	}, decodeObject[models.Product]("product"))
}

// UpdateProduct changes a product; empty fields are left unchanged. Admin.
func (c *Client) UpdateProduct(ctx context.Context, id string, in models.ProductInput) Result[models.Product] {
	return call(ctx, c, request{
		op:       "products.update",
		method:   http.MethodPut,
		path:     "/products/" + url.PathEscape(id),
		form:     productForm(in),
		auth:     true,
		fallback: "Failed to update product",
	}, decodeObject[models.Product]("product"))
}

// DeleteProduct removes a product. Admin.
func (c *Client) DeleteProduct(ctx context.Context, id string) Result[Empty] {
	return call(ctx, c, request{
		op:       "products.delete",
		method:   http.MethodDelete,
		path:     "/products/" + url.PathEscape(id),
		auth:     true,
		fallback: "Failed to delete product",
	}, decodeNothing)
}

func productForm(in models.ProductInput) *multipartForm {
	f := &multipartForm{}
	f.set("name", in.Name).
		set("description", in.Description).
		set("category", in.Category).
		setAll("sizes", in.Sizes).
		setAll("colors", in.Colors)
	if !in.Price.IsZero() {
		f.set("price", in.Price.String())
	}
	if in.Stock > 0 {
		f.set("stock", strconv.Itoa(in.Stock))
	}
	if in.Featured {
		f.set("featured", "true")
	}
	for i := range in.Photos {
		f.file("photos", &in.Photos[i])
	}
	return f
}

func pageQuery(p models.PageRequest) url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	return q
}

func setIf(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}
