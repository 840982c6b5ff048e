// Package fsutil guards the files the generator writes.
package fsutil

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

// ErrExists marks errors about an output path that is already taken.
var ErrExists = errors.New("output file exists")

func existsError(path string) error {
	return errors.Mark(errors.Newf("Requested output file exists: %s", path), ErrExists)
}

// Exists reports whether path names an existing file or directory.
func Exists(path string) (bool, error) {
	_, err := os.Lstat(filepath.Clean(path))
	switch {
	case err == nil:
		return true, nil
	case os.IsNotExist(err):
		return false, nil
	default:
		return false, errors.Wrapf(err, "stat %s", path)
	}
}

// CheckNew returns an ErrExists error when path is already taken.
func CheckNew(path string) error {
	exists, err := Exists(path)
	if err != nil {
		return err
	}
	if exists {
		return existsError(path)
	}
	return nil
}

// CreateNew creates path for writing and fails with ErrExists when it is
// already there, even if it appeared after an earlier Exists check.
func CreateNew(path string) (*os.File, error) {
	f, err := os.OpenFile(filepath.Clean(path), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return nil, existsError(path)
		}
		return nil, errors.Wrapf(err, "create %s", path)
	}
	return f, nil
}
