package fs

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

type Config struct {
	Dir string `yaml:"dir"`
}

type Writer struct {
	dir string
}

// NewWriter creates the output directory if it does not exist yet.
// Existing files with the same name are overwritten on Store.
func NewWriter(cfg Config) (*Writer, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = "."
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create report dir")
	}

	return &Writer{dir: dir}, nil
}

func (w *Writer) Store(ctx context.Context, objName string, r io.Reader) (string, error) {
	path := filepath.Join(w.dir, objName)

	f, err := os.Create(path)
	if err != nil {
		return "", errors.Wrap(err, "create report file")
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", errors.Wrap(err, "write report file")
	}

	return path, nil
}
