package assets

import (
	"context"
	"errors"
	"io"
	"mime"
	"path"
	"strings"
	"time"
)

// ErrNotFound is returned when a source has no object under a name.
var ErrNotFound = errors.New("assets: not found")

// ErrInvalidName is returned for names that escape the source root.
var ErrInvalidName = errors.New("assets: invalid name")

// Info describes a stored asset.
type Info struct {
	Name        string
	Size        int64
	ContentType string
	ModTime     time.Time
	ETag        string
}

// Source provides read access to stored assets.
type Source interface {
	// Stat returns metadata for name without reading its content.
	Stat(ctx context.Context, name string) (Info, error)

	// Open returns the content of name. The caller closes the reader.
	Open(ctx context.Context, name string) (io.ReadCloser, Info, error)
}

// cleanName normalizes a slash-separated asset name and rejects traversal.
func cleanName(name string) (string, error) {
	if name == "" || strings.Contains(name, "\\") || strings.ContainsRune(name, 0) {
		return "", ErrInvalidName
	}
	cleaned := path.Clean("/" + name)[1:]
	if cleaned == "" || cleaned == "." {
		return "", ErrInvalidName
	}
	for _, part := range strings.Split(name, "/") {
		if part == ".." {
			return "", ErrInvalidName
		}
	}
	return cleaned, nil
}

// contentTypeFor guesses a content type from the name's extension.
func contentTypeFor(name string) string {
	switch path.Ext(name) {
	case ".js", ".mjs":
		return "text/javascript; charset=utf-8"
	case ".json":
		return "application/json"
	case ".css":
		return "text/css; charset=utf-8"
	}
	if t := mime.TypeByExtension(path.Ext(name)); t != "" {
		return t
	}
	return "application/octet-stream"
}
