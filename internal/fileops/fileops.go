// Package fileops creates output files without ever replacing existing ones.
package fileops

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

var ErrAlreadyExists = errors.New("file already exists")

// CreateExclusive creates path for reading and writing. It fails with
// ErrAlreadyExists instead of truncating a file that is already there.
func CreateExclusive(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("%w: %s", ErrAlreadyExists, path)
		}
		return nil, err
	}
	return f, nil
}
