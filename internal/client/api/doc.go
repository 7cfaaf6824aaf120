// Package api wraps every backend operation as a remote action returning a
// Result envelope. Wrappers never return Go errors: transport failures,
// malformed bodies and backend rejections all come back as Result values
// with Success false and a human-readable Error.
//
// The backend is not consistent about response shapes, so every response
// goes through one normalization step (parseWire) before decoding.
package api
