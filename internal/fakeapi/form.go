package fakeapi

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

const (
	maxUploadSize = 5 << 20
	maxFormMemory = 16 << 20

	defaultLimit = 12
	maxLimit     = 100
)

var errUploadTooLarge = errors.New("file too large")

// form is a parsed multipart or urlencoded body.
type form struct {
	values map[string][]string
	files  map[string][]*multipart.FileHeader
}

func parseForm(r *http.Request) (*form, error) {
	f := &form{}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		if err := r.ParseMultipartForm(maxFormMemory); err != nil {
			return nil, err
		}
		f.values = r.MultipartForm.Value
		f.files = r.MultipartForm.File
		return f, nil
	}
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	f.values = r.PostForm
	return f, nil
}

// get returns the first value of key and whether the key was sent.
func (f *form) get(key string) (string, bool) {
	v, ok := f.values[key]
	if !ok || len(v) == 0 {
		return "", false
	}
	return strings.TrimSpace(v[0]), true
}

// list returns every value of key, splitting comma-separated entries.
func (f *form) list(key string) ([]string, bool) {
	raw, ok := f.values[key]
	if !ok {
		return nil, false
	}
	out := []string{}
	for _, v := range raw {
		for _, part := range strings.Split(v, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out, true
}

// saveUploads stores the files sent under key and returns their URLs.
// Called with s.mu held.
func (s *Server) saveUploads(f *form, key string) ([]string, error) {
	var urls []string
	for _, fh := range f.files[key] {
		if fh.Size > maxUploadSize {
			return nil, errUploadTooLarge
		}
		file, err := fh.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(io.LimitReader(file, maxUploadSize))
		_ = file.Close()
		if err != nil {
			return nil, err
		}

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = http.DetectContentType(data)
		}
		name := uuid.NewString() + strings.ToLower(filepath.Ext(fh.Filename))
		s.uploads[name] = upload{contentType: ct, data: data}
		urls = append(urls, "/uploads/"+name)
	}
	return urls, nil
}

func queryInt(r *http.Request, key string, def int) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || n < 1 {
		return def
	}
	return n
}

// pageParams reads page and limit, defaulting to 1 and 12.
func pageParams(r *http.Request) (page, limit int) {
	return queryInt(r, "page", 1), min(queryInt(r, "limit", defaultLimit), maxLimit)
}

// paginate returns the requested page of items and the page count.
func paginate[T any](items []T, page, limit int) ([]T, int) {
	pages := (len(items) + limit - 1) / limit
	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}, pages
	}
	end := min(start+limit, len(items))
	return items[start:end], pages
}
