// Package models defines the storefront data shapes shared by the API
// wrappers, the cart cache, the page server and the shell.
//
// Decoding is tolerant where the backend is inconsistent: identifiers may
// arrive as "id" or "_id", references may be populated objects or bare ids,
// and prices may be JSON numbers or numeric strings.
package models
