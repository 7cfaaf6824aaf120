package web

import (
	"net/http"

	"github.com/dmitrijs2005/storefront/internal/client/api"
	"github.com/dmitrijs2005/storefront/internal/netx"
)

// ErrorPanel is the body of a page whose data could not be fetched. Retry is
// the path to request again.
type ErrorPanel struct {
	Error string `json:"error"`
	Retry string `json:"retry"`
}

// fetchError carries a failed envelope's message through errgroup.
type fetchError string

func (e fetchError) Error() string { return string(e) }

// check turns a failed envelope into a fetchError.
func check[T any](res api.Result[T]) (T, error) {
	if !res.Success {
		var zero T
		return zero, fetchError(res.Error)
	}
	return res.Data, nil
}

func (s *Server) writePage(w http.ResponseWriter, v any) {
	netx.WriteJSON(w, http.StatusOK, v)
}

func (s *Server) pageFailed(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Warn(r.Context(), "page data unavailable", "path", r.URL.Path, "error", err.Error())
	netx.WriteJSON(w, http.StatusBadGateway, ErrorPanel{Error: err.Error(), Retry: r.URL.RequestURI()})
}

// writeResult sends an action's envelope. Envelopes are always 200; the
// outcome is in the body.
func writeResult[T any](w http.ResponseWriter, res api.Result[T]) {
	netx.WriteJSON(w, http.StatusOK, res)
}

// badRequest answers an action whose input could not be read.
func badRequest(w http.ResponseWriter, msg string) {
	netx.WriteJSON(w, http.StatusBadRequest, api.Fail[api.Empty](msg))
}
