package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/client/models"
)

// Known response shapes of the backend.
type shape int

const (
	// {"success": true, "data": ..., "message": ...}
	shapeCanonical shape = iota
	// {"sucess": true, ...}: a misspelled discriminator some endpoints use.
	shapeMisspelled
	// [ ... ]: a list returned without an envelope.
	shapeBareArray
	// {"products": [...], "pagination": {...}}: an object without a discriminator.
	shapeUnflagged
	// empty body (204 No Content and friends).
	shapeEmpty
)

var errNotJSON = errors.New("response is not a JSON object or array")

// truthy decodes the flag values seen on the wire: booleans, numbers and the
// strings "true"/"1".
type truthy bool

func (t *truthy) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case bool:
		*t = truthy(x)
	case float64:
		*t = x != 0
	case string:
		s := strings.ToLower(strings.TrimSpace(x))
		*t = s == "true" || s == "1"
	default:
		*t = false
	}
	return nil
}

// wire is a response reduced to what the wrappers need.
type wire struct {
	shape   shape
	ok      bool
	data    json.RawMessage
	body    json.RawMessage
	message string
	errMsg  string
}

// parseWire maps every known response shape to a wire value. ok reflects the
// discriminator (either spelling) or, for shapes without one, the HTTP status.
func parseWire(status int, body []byte) (wire, error) {
	body = bytes.TrimSpace(body)

	if len(body) == 0 {
		return wire{shape: shapeEmpty, ok: success2xx(status)}, nil
	}

	switch body[0] {
	case '[':
		if !json.Valid(body) {
			return wire{}, errNotJSON
		}
		return wire{shape: shapeBareArray, ok: success2xx(status), data: body, body: body}, nil
	case '{':
	default:
		return wire{}, errNotJSON
	}

	var env struct {
		Success *truthy         `json:"success"`
		Sucess  *truthy         `json:"sucess"`
		Data    json.RawMessage `json:"data"`
		Message string          `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return wire{}, err
	}

	w := wire{
		data:    env.Data,
		body:    body,
		message: env.Message,
		errMsg:  errorText(env.Error),
	}

	switch {
	case env.Success != nil:
		w.shape = shapeCanonical
		w.ok = bool(*env.Success) || (env.Sucess != nil && bool(*env.Sucess))
	case env.Sucess != nil:
		w.shape = shapeMisspelled
		w.ok = bool(*env.Sucess)
	default:
		w.shape = shapeUnflagged
		w.ok = success2xx(status) && w.errMsg == ""
	}
	return w, nil
}

// errorText reads an "error" field sent as a string or as {"message": ...}.
func errorText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj.Message
	}
	return ""
}

func (w wire) serverMessage() string {
	if w.message != "" {
		return w.message
	}
	return w.errMsg
}

// payload is the data field, or the whole body when there is none.
func (w wire) payload() json.RawMessage {
	if isNull(w.data) {
		if w.shape == shapeEmpty {
			return nil
		}
		return w.body
	}
	return w.data
}

func isNull(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) == 0 || bytes.Equal(t, []byte("null"))
}

// decodeData decodes the payload into T.
func decodeData[T any](w wire) (T, error) {
	var v T
	p := w.payload()
	if isNull(p) {
		return v, nil
	}
	err := json.Unmarshal(p, &v)
	return v, err
}

// decodeNothing ignores the payload.
func decodeNothing(wire) (Empty, error) {
	return Empty{}, nil
}

// decodeObject decodes payload[key] when the payload nests the object under
// key ({"product": {...}}), and the payload itself otherwise.
func decodeObject[T any](key string) func(wire) (T, error) {
	return func(w wire) (T, error) {
		var v T
		p := w.payload()
		if isNull(p) {
			return v, errors.New("empty payload")
		}
		if inner, ok := field(p, key); ok {
			p = inner
		}
		err := json.Unmarshal(p, &v)
		return v, err
	}
}

// decodeList accepts a bare array or an object holding the array under key.
func decodeList[T any](key string) func(wire) ([]T, error) {
	return func(w wire) ([]T, error) {
		items, _, err := listAndPagination[T](w.payload(), key)
		return items, err
	}
}

// listAndPagination extracts a list and, when present, its pagination from
// the shapes {key: [...], pagination: {...}}, [...] and {key: [...]}.
func listAndPagination[T any](p json.RawMessage, key string) ([]T, *models.Pagination, error) {
	items := []T{}
	if isNull(p) {
		return items, nil, nil
	}
	p = bytes.TrimSpace(p)
	if p[0] == '[' {
		err := json.Unmarshal(p, &items)
		return items, nil, err
	}

	raw, ok := field(p, key)
	if !ok {
		return nil, nil, errors.New("missing " + key)
	}
	if !isNull(raw) {
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, nil, err
		}
	}

	pr, ok := field(p, "pagination")
	if !ok || isNull(pr) {
		return items, nil, nil
	}
	var wp wirePagination
	if err := json.Unmarshal(pr, &wp); err != nil {
		return nil, nil, err
	}
	pg := wp.normalize()
	return items, &pg, nil
}

// field returns obj[key] if obj is a JSON object containing key.
func field(obj json.RawMessage, key string) (json.RawMessage, bool) {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(obj, &m); err != nil {
		return nil, false
	}
	v, ok := m[key]
	return v, ok
}

// wirePagination lists the key spellings the backend uses for pagination.
type wirePagination struct {
	Page          int `json:"page"`
	CurrentPage   int `json:"currentPage"`
	Limit         int `json:"limit"`
	PerPage       int `json:"perPage"`
	Total         int `json:"total"`
	TotalItems    int `json:"totalItems"`
	TotalProducts int `json:"totalProducts"`
	TotalPages    int `json:"totalPages"`
	Pages         int `json:"pages"`
}

func (p wirePagination) normalize() models.Pagination {
	return models.Pagination{
		Page:       firstPositive(p.Page, p.CurrentPage),
		Limit:      firstPositive(p.Limit, p.PerPage),
		Total:      firstPositive(p.Total, p.TotalItems, p.TotalProducts),
		TotalPages: firstPositive(p.TotalPages, p.Pages),
	}
}

// synthesizePagination fills in pagination for list responses that had none.
func synthesizePagination(req models.PageRequest, n int) models.Pagination {
	page := firstPositive(req.Page, 1)
	limit := firstPositive(req.Limit, n)
	total := (page-1)*limit + n
	pages := page
	if req.Limit > 0 && n == req.Limit {
		pages = page + 1
	}
	return models.Pagination{Page: page, Limit: limit, Total: total, TotalPages: pages}
}

// fillPagination completes missing fields from the request and item count.
func fillPagination(p *models.Pagination, req models.PageRequest, n int) models.Pagination {
	if p == nil {
		return synthesizePagination(req, n)
	}
	out := *p
	if out.Page == 0 {
		out.Page = firstPositive(req.Page, 1)
	}
	if out.Limit == 0 {
		out.Limit = firstPositive(req.Limit, n)
	}
	if out.TotalPages == 0 && out.Limit > 0 {
		out.TotalPages = (out.Total + out.Limit - 1) / out.Limit
	}
	return out
}

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}
