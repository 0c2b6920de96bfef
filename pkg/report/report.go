package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aidrax/promptrec/pkg/recommend"
	"github.com/aidrax/promptrec/pkg/yaml"
)

const (
	SummaryFile      = "summary.txt"
	AnalysisJSONFile = "analysis.json"
	AnalysisYAMLFile = "analysis.yaml"
)

type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
)

var (
	ErrUnknownFormat = errors.New("unknown format")

	AllFormats = []string{
		string(FormatText),
		string(FormatYAML),
	}
)

// ParseFormat returns the [Format] named s.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "":
		return FormatText, nil
	case FormatText, FormatYAML:
		return f, nil
	}

	return "", fmt.Errorf("%w: %q, must be one of: %s", ErrUnknownFormat, s, strings.Join(AllFormats, ", "))
}

// ListFile returns the file name used for bucket b.
func ListFile(b recommend.Bucket) string {
	return string(b) + ".txt"
}

// Writer writes report files into a directory.
type Writer struct {
	dir    string
	format Format
}

// WriterOpt configures a [Writer].
type WriterOpt func(*Writer)

// WithFormat selects the extra analysis format. [FormatText] writes only the
// JSON analysis, [FormatYAML] adds analysis.yaml.
func WithFormat(f Format) WriterOpt {
	return func(w *Writer) {
		w.format = f
	}
}

func NewWriter(dir string, opts ...WriterOpt) *Writer {
	w := &Writer{
		dir:    dir,
		format: FormatText,
	}
	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write creates the output directory and writes every report file. It
// returns the paths written, in write order. Outside the yaml format an
// existing analysis.yaml is removed.
func (w *Writer) Write(rep *recommend.Report) ([]string, error) {
	err := os.MkdirAll(w.dir, 0o750)
	if err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	var written []string

	write := func(name string, data []byte) error {
		p := filepath.Join(w.dir, name)

		err := os.WriteFile(p, data, 0o600)
		if err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}

		slog.Debug("wrote report file", slog.String("path", p), slog.Int("bytes", len(data)))
		written = append(written, p)

		return nil
	}

	for _, b := range recommend.AllBuckets {
		err = write(ListFile(b), FormatList(rep.List(b)))
		if err != nil {
			return written, err
		}
	}

	sum := rep.Summary()

	err = write(SummaryFile, []byte(SummaryText(sum)))
	if err != nil {
		return written, err
	}

	data, err := AnalysisJSON(sum)
	if err != nil {
		return written, err
	}

	err = write(AnalysisJSONFile, data)
	if err != nil {
		return written, err
	}

	if w.format == FormatYAML {
		data, err = AnalysisYAML(sum)
		if err != nil {
			return written, err
		}

		err = write(AnalysisYAMLFile, data)
		if err != nil {
			return written, err
		}
	} else {
		// Drop a stale file from an earlier yaml run.
		err = os.Remove(filepath.Join(w.dir, AnalysisYAMLFile))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return written, fmt.Errorf("remove %s: %w", AnalysisYAMLFile, err)
		}
	}

	return written, nil
}

// FormatList joins paths with newlines. The result ends with a newline
// unless paths is empty.
func FormatList(paths []string) []byte {
	if len(paths) == 0 {
		return []byte{}
	}

	return []byte(strings.Join(paths, "\n") + "\n")
}

// SummaryText renders s as fixed-width text.
func SummaryText(s recommend.Summary) string {
	var b strings.Builder

	for _, row := range summaryRows(s) {
		fmt.Fprintf(&b, "%-22s%s\n", row.label+":", row.value)
	}

	return b.String()
}

// AnalysisJSON renders s as indented JSON. Keys come out sorted because
// [recommend.Summary] declares its fields in key order.
func AnalysisJSON(s recommend.Summary) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)

	err := enc.Encode(s)
	if err != nil {
		return nil, fmt.Errorf("encode analysis: %w", err)
	}

	return buf.Bytes(), nil
}

// AnalysisYAML renders s as YAML.
func AnalysisYAML(s recommend.Summary) ([]byte, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)

	err := enc.Encode(s)
	if err != nil {
		return nil, fmt.Errorf("encode analysis yaml: %w", err)
	}

	err = enc.Close()
	if err != nil {
		return nil, fmt.Errorf("encode analysis yaml: %w", err)
	}

	return buf.Bytes(), nil
}

type row struct {
	label string
	value string
	count int
}

func summaryRows(s recommend.Summary) []row {
	counts := []row{
		{label: "Total in manifest", count: s.TotalInManifest},
		{label: "Recommended", count: s.RecommendedCount},
		{label: "System-critical", count: s.SystemCriticalCount},
		{label: "Not-needed", count: s.NotNeededCount},
		{label: "Optional-unmatched", count: s.OptionalUnmatchedCount},
		{label: "Planned for install", count: s.InstallCount},
		{label: "Invalid entries", count: s.InvalidEntryCount},
		{label: "Missing files", count: s.MissingFileCount},
	}

	rows := make([]row, 0, len(counts)+3)
	rows = append(rows, row{label: "Profile", value: s.Profile, count: -1})

	for _, c := range counts {
		c.value = fmt.Sprint(c.count)
		rows = append(rows, c)
	}

	rows = append(rows,
		row{label: "Detected components", value: joinOrNone(s.DetectedComponents), count: -1},
		row{label: "Missing components", value: joinOrNone(s.MissingComponents), count: -1},
	)

	return rows
}

func joinOrNone(names []string) string {
	if len(names) == 0 {
		return "(none)"
	}

	return strings.Join(names, ", ")
}
