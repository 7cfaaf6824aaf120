package auth

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/netx"
)

type ctxKey struct{}

// WithToken returns a context carrying token.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, ctxKey{}, token)
}

// FromContext returns the token stored by WithToken, or "".
func FromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	tok, _ := ctx.Value(ctxKey{}).(string)
	return tok
}

type requestTokens struct{}

func (requestTokens) Token(ctx context.Context) string { return FromContext(ctx) }

// RequestTokens reads the token of the request being served from its
// context.
var RequestTokens = requestTokens{}

// TokenFromRequest extracts the token from the named cookie, falling back to
// an "Authorization: Bearer" header.
func TokenFromRequest(r *http.Request, cookieName string) string {
	if cookieName == "" {
		cookieName = common.TokenCookieName
	}
	if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
		return c.Value
	}
	return netx.BearerToken(r)
}
