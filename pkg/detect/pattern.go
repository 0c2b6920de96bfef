package detect

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"syscall"
)

// Wildcard is the segment matching any single name.
const Wildcard = "*"

var (
	ErrInvalidPattern    = errors.New("invalid pattern")
	ErrMultipleWildcards = fmt.Errorf("%w: more than one wildcard segment", ErrInvalidPattern)
)

// Pattern is a relative, slash-separated location with at most one wildcard
// segment.
type Pattern struct {
	raw      string
	segments []string
	wildcard int // Index of the wildcard segment, or -1.
}

// ParsePattern parses s into a [Pattern].
func ParsePattern(s string) (Pattern, error) {
	p := Pattern{raw: s, wildcard: -1}

	if s == "" {
		return p, fmt.Errorf("%w: empty", ErrInvalidPattern)
	}
	if strings.HasPrefix(s, "/") {
		return p, fmt.Errorf("%w: %q is absolute", ErrInvalidPattern, s)
	}

	for segment := range strings.SplitSeq(s, "/") {
		switch {
		case segment == "" || segment == ".":
			continue
		case segment == "..":
			return p, fmt.Errorf("%w: %q contains '..'", ErrInvalidPattern, s)
		case segment == Wildcard:
			if p.wildcard >= 0 {
				return p, fmt.Errorf("%q: %w", s, ErrMultipleWildcards)
			}

			p.wildcard = len(p.segments)
		case strings.ContainsAny(segment, "*?["):
			return p, fmt.Errorf("%w: %q: only whole-segment wildcards are supported", ErrInvalidPattern, s)
		}

		p.segments = append(p.segments, segment)
	}

	return p, nil
}

// MustParsePattern parses s and panics on error.
func MustParsePattern(s string) Pattern {
	p, err := ParsePattern(s)
	if err != nil {
		panic(err)
	}

	return p
}

func (p Pattern) String() string {
	return p.raw
}

// HasWildcard reports whether p contains a wildcard segment.
func (p Pattern) HasWildcard() bool {
	return p.wildcard >= 0
}

// Match returns the paths under root that p resolves to, in lexical order of
// the wildcard segment. Literal segments only need to exist (a dangling
// symlink counts). The wildcard segment skips hidden entries and, unless it
// is the last segment, only matches directories.
//
// Missing paths yield no matches. Other filesystem errors are returned.
func (p Pattern) Match(root string) ([]string, error) {
	if !p.HasWildcard() {
		full := filepath.Join(root, filepath.Join(p.segments...))

		ok, err := exists(full)
		if err != nil || !ok {
			return nil, err
		}

		return []string{full}, nil
	}

	base := filepath.Join(root, filepath.Join(p.segments[:p.wildcard]...))
	rest := p.segments[p.wildcard+1:]

	entries, err := os.ReadDir(base)
	if err != nil {
		if isAbsent(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("read directory: %w", err)
	}

	var matches []string

	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		candidate := filepath.Join(base, entry.Name())

		if len(rest) == 0 {
			matches = append(matches, candidate)
			continue
		}

		isDir, err := isDirectory(candidate, entry)
		if err != nil {
			return nil, err
		}
		if !isDir {
			continue
		}

		full := filepath.Join(candidate, filepath.Join(rest...))

		ok, err := exists(full)
		if err != nil {
			return nil, err
		}
		if ok {
			matches = append(matches, full)
		}
	}

	slices.Sort(matches)

	return matches, nil
}

// exists reports whether path exists without following a final symlink.
func exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if isAbsent(err) {
		return false, nil
	}

	return false, fmt.Errorf("stat %s: %w", path, err)
}

func isDirectory(path string, entry fs.DirEntry) (bool, error) {
	if entry.IsDir() {
		return true, nil
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		if isAbsent(err) || errors.Is(err, syscall.ELOOP) {
			return false, nil
		}

		return false, fmt.Errorf("stat %s: %w", path, err)
	}

	return info.IsDir(), nil
}

// isAbsent reports whether err means the path does not exist.
func isAbsent(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}
