// Package auth answers "what is the current bearer token" for the two
// contexts the storefront runs in: a page request, where the token travels
// in a cookie or Authorization header, and the interactive shell, where it
// is persisted in the local state database. Both accessors return an empty
// string when there is no usable token and never fail.
package auth
