package links

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/spf13/afero"

	"github.com/ytget/ig-downloader/internal/model"
)

// Input file format
const (
	DefaultInputFile = "links.txt"
	Separator        = ","
)

// Reader reads link fragments from a file
type Reader struct {
	fs afero.Fs
}

// NewReader creates a reader over the given filesystem
func NewReader(fsys afero.Fs) *Reader {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &Reader{fs: fsys}
}

// Read returns the comma-separated fragments of path, each trimmed of
// surrounding whitespace. Empty fragments are kept.
func (r *Reader) Read(path string) ([]model.Link, error) {
	data, err := afero.ReadFile(r.fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &InputError{Path: path, Err: fs.ErrNotExist}
		}
		return nil, &InputError{Path: path, Err: err}
	}

	content := strings.TrimSpace(string(data))
	if content == "" {
		return nil, ErrEmptyInput
	}

	return Parse(content), nil
}

// Parse splits content on the separator and trims every piece
func Parse(content string) []model.Link {
	parts := strings.Split(content, Separator)
	links := make([]model.Link, 0, len(parts))
	for _, part := range parts {
		links = append(links, model.Link(strings.TrimSpace(part)))
	}
	return links
}
