// Package web is the page composition server. GET routes return page models
// as JSON, composed from one or more backend calls made with the visitor's
// token; routes under /actions run a single backend operation and return its
// api.Result envelope.
//
// The token travels in a cookie (or an Authorization header) and is put in
// the request context before any handler runs. Pages that need a session
// redirect to /login?next=<path> when there is none. A page whose data
// cannot be fetched answers 502 with an ErrorPanel.
//
// Page data is a seed: nothing is cached between a page and later actions.
package web
