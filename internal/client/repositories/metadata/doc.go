// Package metadata stores session values (token, cached profile) of the
// interactive client.
package metadata
