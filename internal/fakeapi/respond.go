package fakeapi

import (
	"net/http"

	"github.com/dmitrijs2005/storefront/internal/netx"
)

// flag names the success discriminator a handler answers with.
type flag string

const (
	canonical  flag = "success"
	misspelled flag = "sucess"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	netx.WriteJSON(w, status, v)
}

// reply writes {<flag>: true, data, message}. Nil data and empty message are
// left out.
func reply(w http.ResponseWriter, status int, f flag, data any, message string) {
	body := map[string]any{string(f): true}
	if data != nil {
		body["data"] = data
	}
	if message != "" {
		body["message"] = message
	}
	writeJSON(w, status, body)
}

// replyFlat writes the flag next to the given top-level fields.
func replyFlat(w http.ResponseWriter, status int, f flag, fields map[string]any) {
	body := map[string]any{string(f): true}
	for k, v := range fields {
		body[k] = v
	}
	writeJSON(w, status, body)
}

func fail(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"success": false, "message": message})
}

func decodeBody(r *http.Request, v any) error {
	return netx.DecodeJSON(nil, r, v)
}
