package metadata

import (
	"context"
)

// Well-known keys.
const (
	KeyToken = "auth.token"
	KeyUser  = "auth.user"
)

// Repository is a string key/value store in the local state database.
type Repository interface {
	// Get returns ok=false when key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	// Delete removes keys; absent keys are ignored.
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string]string, error)
}
