package manifest

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
)

// Maximum accepted manifest line length.
const maxLineSize = 1 << 20

// Entry is a single non-blank, non-comment manifest line.
type Entry struct {
	// Raw is the line with surrounding whitespace removed. It has not been
	// validated yet.
	Raw string
	// Line is the 1-based line number in the manifest.
	Line int
}

// Read returns the entries of the manifest in r, in file order.
func Read(r io.Reader) ([]Entry, error) {
	var entries []Entry

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	line := 0
	for scanner.Scan() {
		line++

		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		entries = append(entries, Entry{Raw: text, Line: line})
	}

	err := scanner.Err()
	if err != nil {
		return nil, fmt.Errorf("scan manifest: %w", err)
	}

	return entries, nil
}

// ReadFile reads the manifest at path.
func ReadFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: Manifest path is user provided.
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	return Read(bytes.NewReader(data))
}
