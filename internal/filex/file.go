package filex

import (
	"bufio"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
)

// EnsureParentDir creates the directory that will hold path.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}

// File is an opened local file ready to be uploaded.
type File struct {
	Name        string
	ContentType string
	*bufio.Reader
	f *os.File
}

func (f *File) Close() error { return f.f.Close() }

// Open opens path for upload. The content type comes from the extension,
// or from sniffing the first bytes when the extension is unknown.
func Open(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	fi, err := fh.Stat()
	if err != nil {
		_ = fh.Close()
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if fi.IsDir() {
		_ = fh.Close()
		return nil, fmt.Errorf("%s is a directory", path)
	}

	r := bufio.NewReaderSize(fh, 512)
	ct := mime.TypeByExtension(filepath.Ext(path))
	if ct == "" {
		head, _ := r.Peek(512)
		ct = http.DetectContentType(head)
	}

	return &File{Name: filepath.Base(path), ContentType: ct, Reader: r, f: fh}, nil
}
