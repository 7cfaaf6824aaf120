package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/logging"
)

// maxBodySize caps how much of a response body is read.
const maxBodySize = 8 << 20

// TokenSource yields the bearer token for the current context. An empty
// string means there is none; implementations never fail.
type TokenSource interface {
	Token(ctx context.Context) string
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func(ctx context.Context) string

func (f TokenFunc) Token(ctx context.Context) string { return f(ctx) }

// Client performs the backend operations. It is safe for concurrent use.
type Client struct {
	baseURL string
	prefix  string
	http    *http.Client
	tokens  TokenSource
	logger  logging.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the default *http.Client (30s timeout).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTimeout sets the timeout of the default *http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithPrefix overrides the versioned API prefix (default "/api/v1").
func WithPrefix(p string) Option {
	return func(c *Client) { c.prefix = "/" + strings.Trim(p, "/") }
}

// New returns a Client for the backend at baseURL. tokens may be nil for a
// client that only calls public endpoints.
func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		prefix:  common.APIPrefix,
		http:    &http.Client{Timeout: 30 * time.Second},
		tokens:  tokens,
		logger:  logging.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	c.logger = c.logger.With("module", "api")
	return c
}

// WithTokens returns a shallow copy of c that reads tokens from t. The page
// server uses it to bind one shared client to a request's cookie.
func (c *Client) WithTokens(t TokenSource) *Client {
	cp := *c
	cp.tokens = t
	return &cp
}

// request describes one backend operation.
type request struct {
	op       string
	method   string
	path     string
	query    url.Values
	body     any
	form     *multipartForm
	auth     bool
	fallback string

	// precheck runs after the token check and before any I/O; a non-empty
	// return value fails the call with that message.
	precheck func() string
}

type rawResponse struct {
	status int
	body   []byte
}

func (c *Client) token(ctx context.Context) string {
	if c.tokens == nil {
		return ""
	}
	return c.tokens.Token(ctx)
}

// call runs r and folds every outcome into a Result.
func call[T any](ctx context.Context, c *Client, r request, decode func(wire) (T, error)) Result[T] {
	log := c.logger.With("op", r.op)

	var token string
	if r.auth {
		token = c.token(ctx)
		if token == "" {
			log.Debug(ctx, "no token, skipping request")
			return Fail[T](MsgAuthRequired)
		}
	}
	if r.precheck != nil {
		if msg := r.precheck(); msg != "" {
			return Fail[T](msg)
		}
	}

	resp, err := c.send(ctx, r, token)
	if err != nil {
		msg := transportMessage(ctx, err)
		log.Warn(ctx, "request failed", "method", r.method, "path", r.path, "error", err.Error())
		if errors.Is(err, errEncode) {
			msg = r.fallback
		}
		return Fail[T](msg)
	}

	w, err := parseWire(resp.status, resp.body)
	if err != nil {
		log.Warn(ctx, "malformed response", "status", resp.status, "error", err.Error())
		if !success2xx(resp.status) {
			return Fail[T](failureMessage("", resp.status, r.fallback))
		}
		return Fail[T](MsgInvalidResponse)
	}

	if !success2xx(resp.status) || !w.ok {
		msg := failureMessage(w.serverMessage(), resp.status, r.fallback)
		log.Warn(ctx, "backend reported failure", "status", resp.status, "error", msg)
		return Fail[T](msg)
	}

	data, err := decode(w)
	if err != nil {
		log.Warn(ctx, "cannot decode payload", "error", err.Error())
		return Fail[T](MsgInvalidResponse)
	}

	log.Debug(ctx, "request succeeded", "status", resp.status)
	return OK(data, w.message)
}

var errEncode = errors.New("encode request")

func (c *Client) send(ctx context.Context, r request, token string) (*rawResponse, error) {
	u := c.baseURL + c.prefix + r.path
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}

	body, contentType, err := r.encode()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errEncode, err)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errEncode, err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	c.logger.Debug(ctx, "sending request", "op", r.op, "method", r.method, "url", u)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, err
	}
	return &rawResponse{status: resp.StatusCode, body: b}, nil
}

func (r request) encode() (io.Reader, string, error) {
	switch {
	case r.form != nil:
		return r.form.encode()
	case r.body != nil:
		b, err := json.Marshal(r.body)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(b), "application/json", nil
	}
	return nil, "", nil
}

func success2xx(status int) bool {
	return status >= 200 && status < 300
}

func transportMessage(ctx context.Context, err error) string {
	switch {
	case errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled):
		return MsgCanceled
	case errors.Is(err, context.DeadlineExceeded) || isTimeout(err):
		return MsgTimeout
	}
	return MsgNetwork
}

func isTimeout(err error) bool {
	var te interface{ Timeout() bool }
	return errors.As(err, &te) && te.Timeout()
}

// Ping reports whether the backend answers HTTP at all. Any response, even
// an error status, counts as reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+c.prefix+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrorUnavailable, err)
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
	_ = resp.Body.Close()
	return nil
}
