package web

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/client/auth"
)

// withToken puts the request's token in its context. An expired token is
// dropped so the visitor is treated as signed out.
func (s *Server) withToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := auth.TokenFromRequest(r, s.cookieName)
		if token != "" && auth.Expired(token, s.now()) {
			s.logger.Debug(r.Context(), "dropping expired token")
			token = ""
		}
		next.ServeHTTP(w, r.WithContext(auth.WithToken(r.Context(), token)))
	})
}

// requireSession redirects visitors without a token to the login page,
// remembering where they were going.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth.FromContext(r.Context()) == "" {
			http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// localPath returns p if it is a path on this site, "/" otherwise.
func localPath(p string) string {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.HasPrefix(p, "/\\") {
		return "/"
	}
	return p
}
