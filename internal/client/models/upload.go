package models

import "io"

// Upload is one file sent as a multipart part (product photo, category
// image, avatar).
type Upload struct {
	FileName    string
	ContentType string
	Content     io.Reader
}
