// Package log builds [slog.Handler]s for the promptrec CLI and carries the
// active logger through a [context.Context].
package log

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/muesli/termenv"

	charmlog "github.com/charmbracelet/log"
)

type (
	Format string
	Level  string

	contextKey struct{}
)

const (
	FormatJSON   Format = "json"
	FormatLogfmt Format = "logfmt"
	FormatText   Format = "text"

	LevelError Level = "error"
	LevelWarn  Level = "warn"
	LevelInfo  Level = "info"
	LevelDebug Level = "debug"
)

var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrUnknownLogLevel  = errors.New("unknown log level")
	ErrUnknownLogFormat = errors.New("unknown log format")

	AllFormats = []string{
		string(FormatJSON),
		string(FormatLogfmt),
		string(FormatText),
	}
	AllLevels = []string{
		string(LevelError),
		string(LevelWarn),
		string(LevelInfo),
		string(LevelDebug),
	}

	levels = map[Level]slog.Level{
		LevelError: slog.LevelError,
		LevelWarn:  slog.LevelWarn,
		"warning":  slog.LevelWarn,
		LevelInfo:  slog.LevelInfo,
		LevelDebug: slog.LevelDebug,
	}
)

// Options configure [NewHandler].
type Options struct {
	Format Format
	Level  slog.Level
}

// ParseOptions converts the --log-level and --log-format flag values.
func ParseOptions(level, format string) (Options, error) {
	lvl, err := GetLevel(level)
	if err != nil {
		return Options{}, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	f, err := GetFormat(format)
	if err != nil {
		return Options{}, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	return Options{Level: lvl, Format: f}, nil
}

// CreateHandlerWithStrings creates a [slog.Handler] by strings.
func CreateHandlerWithStrings(w io.Writer, logLevel, logFormat string) (slog.Handler, error) {
	opts, err := ParseOptions(logLevel, logFormat)
	if err != nil {
		return nil, err
	}

	return NewHandler(w, opts), nil
}

// NewHandler returns a handler writing to w. Debug level also records the
// source location of each call.
func NewHandler(w io.Writer, opts Options) slog.Handler {
	hopts := &slog.HandlerOptions{
		AddSource: opts.Level <= slog.LevelDebug,
		Level:     opts.Level,
	}

	switch opts.Format {
	case FormatJSON:
		return slog.NewJSONHandler(w, hopts)
	case FormatLogfmt:
		return slog.NewTextHandler(w, hopts)
	default:
		return newCharmHandler(w, opts.Level)
	}
}

func GetLevel(level string) (slog.Level, error) {
	if lvl, ok := levels[Level(strings.ToLower(level))]; ok {
		return lvl, nil
	}

	return 0, fmt.Errorf("%w: %q, must be one of: %s", ErrUnknownLogLevel, level, strings.Join(AllLevels, ", "))
}

func GetFormat(format string) (Format, error) {
	logFmt := Format(strings.ToLower(format))
	if slices.Contains(AllFormats, string(logFmt)) {
		return logFmt, nil
	}

	return "", fmt.Errorf("%w: %q, must be one of: %s", ErrUnknownLogFormat, format, strings.Join(AllFormats, ", "))
}

func newCharmHandler(w io.Writer, level slog.Level) *charmlog.Logger {
	//nolint:gosec // G115: input from GetLevel.
	lvl := int32(level)

	logger := charmlog.NewWithOptions(w, charmlog.Options{
		Level:           charmlog.Level(lvl),
		Formatter:       charmlog.TextFormatter,
		ReportTimestamp: true,
		ReportCaller:    level <= slog.LevelDebug,
		TimeFormat:      time.TimeOnly,
		Prefix:          "promptrec",
	})

	// Colors only when w is a terminal that supports them.
	logger.SetColorProfile(termenv.NewOutput(w).EnvColorProfile())

	return logger
}

// NewContext returns a copy of ctx carrying logger.
func NewContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// WithContext returns the logger stored in ctx by [NewContext], or the
// default logger.
func WithContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(contextKey{}).(*slog.Logger); ok {
		return logger
	}

	return slog.Default()
}
