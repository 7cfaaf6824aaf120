package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/storefront/internal/client/models"
)

// GetUsers lists one page of users. Admin.
func (c *Client) GetUsers(ctx context.Context, page models.PageRequest, f models.UserFilter) Result[models.UserList] {
	q := pageQuery(page)
	setIf(q, "role", f.Role)
	setIf(q, "search", f.Search)

	return call(ctx, c, request{
		op:       "users.list",
		method:   http.MethodGet,
		path:     "/admin/users",
		query:    q,
		auth:     true,
		fallback: "Failed to fetch users",
	}, func(w wire) (models.UserList, error) {
		items, pg, err := listAndPagination[models.User](w.payload(), "users")
		if err != nil {
			return models.UserList{}, err
		}
		return models.UserList{Users: items, Pagination: fillPagination(pg, page, len(items))}, nil
	})
}

// GetUser fetches one user. Admin.
func (c *Client) GetUser(ctx context.Context, id string) Result[models.User] {
	return call(ctx, c, request{
		op:       "users.get",
		method:   http.MethodGet,
		path:     "/admin/users/" + url.PathEscape(id),
		auth:     true,
		fallback: "Failed to fetch user",
	}, decodeObject[models.User]("user"))
}

// CreateAdmin creates a user with the admin role. Admin.
func (c *Client) CreateAdmin(ctx context.Context, in models.UserInput) Result[models.User] {
	in.Role = models.RoleAdmin
	return call(ctx, c, request{
		op:       "users.create_admin",
		method:   http.MethodPost,
		path:     "/admin/users",
		form:     userForm(in),
		auth:     true,
		fallback: "Failed to create admin",
		precheck: func() string {
			if in.Email == "" || in.Password == "" {
				return "Email and password are required"
			}
			return ""
		},
	}, decodeObject[models.User]("user"))
}

// UpdateUser changes a user. Admin.
func (c *Client) UpdateUser(ctx context.Context, id string, in models.UserInput) Result[models.User] {
	return call(ctx, c, request{
		op:       "users.update",
		method:   http.MethodPut,
		path:     "/admin/users/" + url.PathEscape(id),
		form:     userForm(in),
		auth:     true,
		fallback: "Failed to update user",
	}, decodeObject[models.User]("user"))
}

// DeleteUser removes a user. Admin.
func (c *Client) DeleteUser(ctx context.Context, id string) Result[Empty] {
	return call(ctx, c, request{
		op:       "users.delete",
		method:   http.MethodDelete,
		path:     "/admin/users/" + url.PathEscape(id),
		auth:     true,
		fallback: "Failed to delete user",
	}, decodeNothing)
}
