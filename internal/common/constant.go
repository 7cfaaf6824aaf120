package common

const (
	// AuthorizationHeaderName carries the bearer token on outbound requests.
	AuthorizationHeaderName = "Authorization"

	// BearerPrefix precedes the token in the Authorization header.
	BearerPrefix = "Bearer "

	// TokenCookieName is the cookie that mirrors the token for server-rendered pages.
	TokenCookieName = "token"

	// APIPrefix is the versioned path prefix of the backend REST API.
	APIPrefix = "/api/v1"
)
