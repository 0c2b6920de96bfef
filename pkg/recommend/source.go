package recommend

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
)

// SourceChecker reports whether a validated relative path exists in the
// package source.
type SourceChecker interface {
	Exists(rel string) (bool, error)
}

// DirSource checks paths against a directory on disk.
type DirSource struct {
	Root string
}

// Exists reports whether Root/rel is a regular file, following symlinks.
// Paths that do not resolve are reported as missing. Other errors (such as
// permission problems) are returned.
func (s DirSource) Exists(rel string) (bool, error) {
	info, err := os.Stat(filepath.Join(s.Root, filepath.FromSlash(rel)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) ||
			errors.Is(err, syscall.ENOTDIR) ||
			errors.Is(err, syscall.ELOOP) {
			return false, nil
		}

		return false, fmt.Errorf("check source file: %w", err)
	}

	return info.Mode().IsRegular(), nil
}
