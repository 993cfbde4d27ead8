package reportstore

import (
	"context"
	"io"

	"github.com/craibuc/trustedemployee/pkg/reportstore/fs"
	"github.com/craibuc/trustedemployee/pkg/reportstore/minio"
	"github.com/pkg/errors"
)

type Config struct {
	Store string       `yaml:"store"`
	Fs    fs.Config    `yaml:"fs"`
	Minio minio.Config `yaml:"minio"`
}

// Writer persists one named report object and returns its location.
type Writer interface {
	Store(ctx context.Context, objName string, r io.Reader) (string, error)
}

func NewWriter(cfg Config) (Writer, error) {
	switch cfg.Store {
	case "fs", "":
		return fs.NewWriter(cfg.Fs)
	case "minio":
		return minio.NewWriter(cfg.Minio)
	}

	return nil, errors.Errorf("invalid report store: %s", cfg.Store)
}
