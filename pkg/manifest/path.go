package manifest

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidPath is wrapped by every error returned from [Validate].
	ErrInvalidPath = errors.New("invalid path")

	ErrEmptyPath     = fmt.Errorf("%w: empty", ErrInvalidPath)
	ErrAbsolutePath  = fmt.Errorf("%w: absolute", ErrInvalidPath)
	ErrPathTraversal = fmt.Errorf("%w: contains '..' segment", ErrInvalidPath)
)

// Validate checks that raw is a usable relative path and returns it trimmed.
// The original casing is preserved.
func Validate(raw string) (string, error) {
	rel := strings.TrimSpace(raw)
	if rel == "" {
		return "", ErrEmptyPath
	}

	if strings.HasPrefix(rel, "/") {
		return "", fmt.Errorf("%q: %w", rel, ErrAbsolutePath)
	}

	for segment := range strings.SplitSeq(rel, "/") {
		if segment == ".." {
			return "", fmt.Errorf("%q: %w", rel, ErrPathTraversal)
		}
	}

	return rel, nil
}
