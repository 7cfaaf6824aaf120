package fakeapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/netx"
)

type ctxKey struct{}

func currentUser(ctx context.Context) *user {
	u, _ := ctx.Value(ctxKey{}).(*user)
	return u
}

// authenticate resolves the bearer token to a user. The user is copied so
// handlers may read it without holding the lock.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := netx.BearerToken(r)
		if token == "" {
			fail(w, http.StatusUnauthorized, "Not authorized, no token")
			return
		}
		claims, err := parseToken(token, s.secret, s.now())
		if errors.Is(err, common.ErrTokenExpired) {
			fail(w, http.StatusUnauthorized, "Not authorized, token expired")
			return
		}
		if err != nil {
			s.logger.Debug(r.Context(), "token rejected", "error", err.Error())
			fail(w, http.StatusUnauthorized, "Not authorized, token failed")
			return
		}

		s.mu.Lock()
		u, ok := s.users[claims.UserID]
		var cp user
		if ok {
			cp = *u
		}
		s.mu.Unlock()
		if !ok {
			fail(w, http.StatusUnauthorized, "Not authorized, user not found")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, &cp)))
	})
}

func requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if u := currentUser(r.Context()); u == nil || u.Role != roleAdmin {
			fail(w, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
