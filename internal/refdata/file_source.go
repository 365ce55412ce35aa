package refdata

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// FileSource reads datasets as <name>.json files from a directory.
type FileSource struct {
	fsys fs.FS
}

// NewFileSource reads datasets from dir.
func NewFileSource(dir string) (*FileSource, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("refdata: data directory must not be empty")
	}
	return &FileSource{fsys: os.DirFS(dir)}, nil
}

// NewFSSource reads datasets from an arbitrary file system.
func NewFSSource(fsys fs.FS) (*FileSource, error) {
	if fsys == nil {
		return nil, errors.New("refdata: file system must not be nil")
	}
	return &FileSource{fsys: fsys}, nil
}

func (f *FileSource) Read(_ context.Context, dataset string) ([]byte, error) {
	raw, err := fs.ReadFile(f.fsys, dataset+".json")
	if err != nil {
		return nil, fmt.Errorf("refdata: read %s: %w", dataset, err)
	}
	return raw, nil
}
