package assets

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// DirSource serves assets from a local directory.
type DirSource struct {
	root string
}

var _ Source = (*DirSource)(nil)

// NewDirSource creates a DirSource rooted at dir.
func NewDirSource(dir string) *DirSource {
	return &DirSource{root: dir}
}

// Root returns the directory the source reads from.
func (s *DirSource) Root() string {
	return s.root
}

func (s *DirSource) path(name string) (string, string, error) {
	cleaned, err := cleanName(name)
	if err != nil {
		return "", "", err
	}
	return cleaned, filepath.Join(s.root, filepath.FromSlash(cleaned)), nil
}

// Stat implements Source.
func (s *DirSource) Stat(ctx context.Context, name string) (Info, error) {
	if err := ctx.Err(); err != nil {
		return Info{}, err
	}
	cleaned, full, err := s.path(name)
	if err != nil {
		return Info{}, err
	}
	fi, err := os.Stat(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Info{}, ErrNotFound
		}
		return Info{}, err
	}
	if fi.IsDir() {
		return Info{}, ErrNotFound
	}
	return Info{
		Name:        cleaned,
		Size:        fi.Size(),
		ContentType: contentTypeFor(cleaned),
		ModTime:     fi.ModTime(),
	}, nil
}

// Open implements Source.
func (s *DirSource) Open(ctx context.Context, name string) (io.ReadCloser, Info, error) {
	info, err := s.Stat(ctx, name)
	if err != nil {
		return nil, Info{}, err
	}
	_, full, _ := s.path(name)
	f, err := os.Open(full)
	if err != nil {
		return nil, Info{}, err
	}
	return f, info, nil
}
