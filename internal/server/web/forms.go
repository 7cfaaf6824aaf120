package web

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dmitrijs2005/storefront/internal/client/models"
)

const maxFormMemory = 32 << 20

// form is a submitted admin or profile form. Uploaded files are passed to
// the backend as they are; close releases them.
type form struct {
	values  map[string][]string
	files   map[string][]*multipart.FileHeader
	opened  []io.Closer
	cleanup func() error
}

func readForm(r *http.Request) (*form, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		if err := r.ParseMultipartForm(maxFormMemory); err != nil {
			return nil, err
		}
		return &form{values: r.MultipartForm.Value, files: r.MultipartForm.File, cleanup: r.MultipartForm.RemoveAll}, nil
	}
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return &form{values: r.PostForm}, nil
}

func (f *form) close() {
	for _, c := range f.opened {
		_ = c.Close()
	}
	if f.cleanup != nil {
		_ = f.cleanup()
	}
}

func (f *form) value(key string) string {
	if v := f.values[key]; len(v) > 0 {
		return strings.TrimSpace(v[0])
	}
	return ""
}

// list accepts repeated fields and comma-separated values.
func (f *form) list(key string) []string {
	var out []string
	for _, v := range f.values[key] {
		for _, part := range strings.Split(v, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

func (f *form) uploads(key string) ([]models.Upload, error) {
	var out []models.Upload
	for _, fh := range f.files[key] {
		file, err := fh.Open()
		if err != nil {
			return nil, err
		}
		f.opened = append(f.opened, file)
		out = append(out, models.Upload{
			FileName:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Content:     file,
		})
	}
	return out, nil
}

func (f *form) upload(key string) (*models.Upload, error) {
	ups, err := f.uploads(key)
	if err != nil || len(ups) == 0 {
		return nil, err
	}
	return &ups[0], nil
}

var errBadField = errors.New("invalid field")

func (f *form) productInput() (models.ProductInput, error) {
	in := models.ProductInput{
		Name:        f.value("name"),
		Description: f.value("description"),
		Category:    f.value("category"),
		Sizes:       f.list("sizes"),
		Colors:      f.list("colors"),
		Featured:    f.value("featured") == "true" || f.value("featured") == "on",
	}
	if v := f.value("price"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return in, errBadField
		}
		in.Price = d
	}
	if v := f.value("stock"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return in, errBadField
		}
		in.Stock = n
	}
	photos, err := f.uploads("photos")
	in.Photos = photos
	return in, err
}

func (f *form) categoryInput() (models.CategoryInput, error) {
	img, err := f.upload("image")
	return models.CategoryInput{Name: f.value("name"), Description: f.value("description"), Image: img}, err
}

func (f *form) userInput() (models.UserInput, error) {
	avatar, err := f.upload("avatar")
	return models.UserInput{
		Name:     f.value("name"),
		Email:    f.value("email"),
		Password: f.value("password"),
		Role:     f.value("role"),
		Phone:    f.value("phone"),
		Avatar:   avatar,
	}, err
}
