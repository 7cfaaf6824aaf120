package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/storefront/internal/client/models"
)

// GetCategories lists all categories. Public.
func (c *Client) GetCategories(ctx context.Context) Result[[]models.Category] {
	return call(ctx, c, request{
		op:       "categories.list",
		method:   http.MethodGet,
		path:     "/categories",
		fallback: "Failed to fetch categories",
	}, decodeList[models.Category]("categories"))
}

// GetCategory fetches one category. Public.
func (c *Client) GetCategory(ctx context.Context, id string) Result[models.Category] {
	return call(ctx, c, request{
		op:       "categories.get",
		method:   http.MethodGet,
		path:     "/categories/" + url.PathEscape(id),
		fallback: "Failed to fetch category",
	}, decodeObject[models.Category]("category"))
}

// CreateCategory creates a category with an optional image. Admin.
func (c *Client) CreateCategory(ctx context.Context, in models.CategoryInput) Result[models.Category] {
	return call(ctx, c, request{
		op:       "categories.create",
		method:   http.MethodPost,
		path:     "/categories",
		form:     categoryForm(in),
		auth:     true,
		fallback: "Failed to create category",
		precheck: func() string {
			if in.Name == "" {
				return "Category name is required"
			}
			return ""
		},
	}, decodeObject[models.Category]("category"))
}

// UpdateCategory changes a category. Admin.
func (c *Client) UpdateCategory(ctx context.Context, id string, in models.CategoryInput) Result[models.Category] {
	return call(ctx, c, request{
		op:       "categories.update",
		method:   http.MethodPut,
		path:     "/categories/" + url.PathEscape(id),
		form:     categoryForm(in),
		auth:     true,
		fallback: "Failed to update category",
	}, decodeObject[models.Category]("category"))
}

// DeleteCategory removes a category. Admin.
func (c *Client) DeleteCategory(ctx context.Context, id string) Result[Empty] {
	return call(ctx, c, request{
		op:       "categories.delete",
		method:   http.MethodDelete,
		path:     "/categories/" + url.PathEscape(id),
		auth:     true,
		fallback: "Failed to delete category",
	}, decodeNothing)
}

func categoryForm(in models.CategoryInput) *multipartForm {
	f := &multipartForm{}
	return f.set("name", in.Name).
		set("description", in.Description).
		file("image", in.Image)
}
