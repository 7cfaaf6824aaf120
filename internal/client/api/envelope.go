package api

import (
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/storefront/internal/common"
)

// User-facing failure messages.
const (
	MsgAuthRequired    = "Authentication required"
	MsgNoOrderItems    = "No items in order"
	MsgNetwork         = "Unable to connect to the server. Please check your connection."
	MsgTimeout         = "The server took too long to respond. Please try again."
	MsgCanceled        = "Request canceled"
	MsgInvalidResponse = "Invalid response from server"
)

// Result is the envelope every remote action returns. When Success is true
// Data holds the payload; otherwise Error holds a non-empty, human-readable
// message and Data is the zero value.
type Result[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

func OK[T any](data T, message string) Result[T] {
	return Result[T]{Success: true, Data: data, Message: message}
}

func Fail[T any](msg string) Result[T] {
	if msg == "" {
		msg = "Something went wrong"
	}
	return Result[T]{Error: msg}
}

// Err returns nil on success and an error wrapping common.ErrorRemote
// otherwise, for callers that work with Go errors.
func (r Result[T]) Err() error {
	if r.Success {
		return nil
	}
	return fmt.Errorf("%w: %s", common.ErrorRemote, r.Error)
}

// Empty is the payload of actions whose response body carries nothing the
// caller needs (deletes, status changes).
type Empty struct{}

// statusMessage is the generic message for an HTTP status, or "" when the
// status has no dedicated wording.
func statusMessage(status int) string {
	switch {
	case status == http.StatusBadRequest:
		return "The request was invalid"
	case status == http.StatusUnauthorized:
		return "Your session has expired. Please log in again."
	case status == http.StatusForbidden:
		return "You do not have permission to perform this action"
	case status == http.StatusNotFound:
		return "The requested resource was not found"
	case status == http.StatusConflict:
		return "The resource was changed by someone else. Please reload and try again."
	case status == http.StatusUnprocessableEntity:
		return "Some fields are invalid"
	case status == http.StatusTooManyRequests:
		return "Too many requests. Please wait a moment and try again."
	case status >= 500:
		return "Server error. Please try again later."
	}
	return ""
}

// failureMessage picks the server message, then the status wording, then
// the per-operation fallback.
func failureMessage(server string, status int, fallback string) string {
	if server != "" {
		return server
	}
	if !success2xx(status) {
		if m := statusMessage(status); m != "" {
			return m
		}
	}
	return fallback
}
