package api

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"

	"github.com/dmitrijs2005/storefront/internal/client/models"
)

// multipartForm collects scalar fields and file parts for upload endpoints.
type multipartForm struct {
	fields []formField
	files  []formFile
}

type formField struct {
	name, value string
}

type formFile struct {
	name   string
	upload models.Upload
}

// set adds a field; empty values are skipped so partial updates leave the
// backend's value unchanged.
func (f *multipartForm) set(name, value string) *multipartForm {
	if value != "" {
		f.fields = append(f.fields, formField{name: name, value: value})
	}
	return f
}

// setAll adds one field per value under the same name.
func (f *multipartForm) setAll(name string, values []string) *multipartForm {
	for _, v := range values {
		f.set(name, v)
	}
	return f
}

func (f *multipartForm) file(name string, u *models.Upload) *multipartForm {
	if u != nil && u.Content != nil {
		f.files = append(f.files, formFile{name: name, upload: *u})
	}
	return f
}

func (f *multipartForm) encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for _, fld := range f.fields {
		if err := mw.WriteField(fld.name, fld.value); err != nil {
			return nil, "", err
		}
	}

	for _, ff := range f.files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, ff.name, ff.upload.FileName))
		ct := ff.upload.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)

		part, err := mw.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(part, ff.upload.Content); err != nil {
			return nil, "", fmt.Errorf("copy %s: %w", ff.upload.FileName, err)
		}
	}

	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}
