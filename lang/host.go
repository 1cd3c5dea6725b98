package lang

import (
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/readahead"
)

// Host provides the evaluator with access to module sources.
type Host interface {
	// ReadFile returns the contents of the file at path.
	ReadFile(path string) (string, error)
	// ResolvePath resolves rel against the directory base. An empty base
	// means the current working directory.
	ResolvePath(base, rel string) (string, error)
}

// OSHost is a [Host] backed by the local file system.
type OSHost struct{}

// ReadFile implements [Host].
func (OSHost) ReadFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	ra := readahead.NewReader(file)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

// ResolvePath implements [Host].
func (OSHost) ResolvePath(base, rel string) (string, error) {
	if filepath.IsAbs(rel) {
		return filepath.Clean(rel), nil
	}

	return filepath.Abs(filepath.Join(base, rel))
}

// MapHost is an in-memory [Host] keyed by slash-separated paths.
type MapHost map[string]string

// ReadFile implements [Host].
func (h MapHost) ReadFile(path string) (string, error) {
	src, ok := h[filepath.ToSlash(path)]
	if !ok {
		return "", &os.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
	}

	return src, nil
}

// ResolvePath implements [Host].
func (MapHost) ResolvePath(base, rel string) (string, error) {
	if filepath.IsAbs(rel) || base == "" {
		return filepath.ToSlash(filepath.Clean(rel)), nil
	}

	return filepath.ToSlash(filepath.Join(base, rel)), nil
}
