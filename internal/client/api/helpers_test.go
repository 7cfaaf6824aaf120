package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func staticToken(tok string) TokenSource {
	return TokenFunc(func(context.Context) string { return tok })
}

// countingServer serves h and counts requests.
func countingServer(t *testing.T, h http.HandlerFunc) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var n atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n.Add(1)
		h(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, &n
}

func jsonReply(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

// failingClient returns a client whose transport always fails with err and
// counts attempts.
func failingClient(err error, tok string) (*Client, *atomic.Int32) {
	var n atomic.Int32
	hc := &http.Client{Transport: roundTripperFunc(func(*http.Request) (*http.Response, error) {
		n.Add(1)
		return nil, err
	})}
	return New("http://backend.invalid", staticToken(tok), WithHTTPClient(hc)), &n
}

var errDial = errors.New("dial tcp: connection refused")
