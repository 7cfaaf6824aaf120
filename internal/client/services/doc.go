// Package services holds the use cases of the storefront shell: signing in
// and out, the cart (server-side for signed-in users, local for guests) and
// checkout. Remote failures come back as errors wrapping
// common.ErrorRemote with the backend's message.
package services
