package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/storefront/internal/client/models"
)

// Login exchanges credentials for a token and the user profile.
func (c *Client) Login(ctx context.Context, cr models.Credentials) Result[models.AuthData] {
	return call(ctx, c, request{
		op:       "auth.login",
		method:   http.MethodPost,
		path:     "/auth/login",
		body:     cr,
		fallback: "Login failed",
		precheck: func() string {
			if cr.Email == "" || cr.Password == "" {
				return "Email and password are required"
			}
			return ""
		},
	}, decodeAuth)
}

// Register creates an account and signs it in.
func (c *Client) Register(ctx context.Context, r models.Registration) Result[models.AuthData] {
	return call(ctx, c, request{
		op:       "auth.register",
		method:   http.MethodPost,
		path:     "/auth/register",
		body:     r,
		fallback: "Registration failed",
		precheck: func() string {
			if r.Name == "" || r.Email == "" || r.Password == "" {
				return "Name, email and password are required"
			}
			return ""
		},
	}, decodeAuth)
}

// GetProfile returns the signed-in user.
func (c *Client) GetProfile(ctx context.Context) Result[models.User] {
	return call(ctx, c, request{
		op:       "auth.profile",
		method:   http.MethodGet,
		path:     "/users/profile",
		auth:     true,
		fallback: "Failed to fetch profile",
	}, decodeObject[models.User]("user"))
}

// UpdateProfile changes the signed-in user's profile, optionally uploading an
// avatar.
func (c *Client) UpdateProfile(ctx context.Context, in models.UserInput) Result[models.User] {
	return call(ctx, c, request{
		op:       "auth.update_profile",
		method:   http.MethodPut,
		path:     "/users/profile",
		form:     userForm(in),
		auth:     true,
		fallback: "Failed to update profile",
	}, decodeObject[models.User]("user"))
}

// decodeAuth accepts {token, user} under data or at the top level.
func decodeAuth(w wire) (models.AuthData, error) {
	a, err := decodeData[models.AuthData](w)
	if err != nil {
		return a, err
	}
	if a.Token == "" {
		return a, errors.New("missing token")
	}
	return a, nil
}

func userForm(in models.UserInput) *multipartForm {
	f := &multipartForm{}
	return f.set("name", in.Name).
		set("email", in.Email).
		set("password", in.Password).
		set("role", in.Role).
		set("phone", in.Phone).
		file("avatar", in.Avatar)
}
