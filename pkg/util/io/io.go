package io

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
)

// TryGetSize reports the byte size of readers whose length is knowable
// without consuming them.
func TryGetSize(r io.Reader) (int64, error) {
	switch v := r.(type) {
	case *bytes.Reader:
		return int64(v.Len()), nil
	case *bytes.Buffer:
		return int64(v.Len()), nil
	case *os.File:
		stat, err := v.Stat()
		if err != nil {
			return 0, errors.Wrap(err, "stat file for size")
		}
		return stat.Size(), nil
	}

	return 0, errors.Errorf("unsupported type of io.Reader: %T", r)
}
