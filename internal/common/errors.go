// Package common defines shared constants and sentinel errors used across
// the storefront client, the page server and the fake backend. Callers should
// use errors.Is to match these values.
package common

import "errors"

var (
	// Local storage errors.
	ErrorNotFound = errors.New("not found")

	// Session errors.
	ErrorUnauthorized = errors.New("unauthorized")
	ErrInvalidToken   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token expired")

	// Remote call errors.
	ErrorRemote      = errors.New("remote action failed")
	ErrorUnavailable = errors.New("server unavailable")
	ErrorConflict    = errors.New("conflict")

	// Validation errors.
	ErrorValidation = errors.New("validation error")
	ErrorEmptyCart  = errors.New("cart is empty")
)
