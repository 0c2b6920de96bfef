package yaml

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
	"github.com/goccy/go-yaml/printer"
	"github.com/goccy/go-yaml/token"
)

func NewPathBuilder() *yaml.PathBuilder {
	return &yaml.PathBuilder{}
}

// ErrorWrapper applies a fixed set of [ErrorOpt]s to every [*Error] it
// wraps.
type ErrorWrapper struct {
	Opts []ErrorOpt
}

func NewErrorWrapper(opts ...ErrorOpt) *ErrorWrapper {
	return &ErrorWrapper{
		Opts: opts,
	}
}

// Wrap wraps an error with additional context for [Error]s.
// If the error isn't an [Error], it returns the original error unmodified.
func (ew *ErrorWrapper) Wrap(err error, opts ...ErrorOpt) error {
	if err == nil {
		return nil
	}

	var yamlErr *Error
	if errors.As(err, &yamlErr) {
		for _, opt := range ew.Opts {
			opt(yamlErr)
		}

		for _, opt := range opts {
			opt(yamlErr)
		}

		return yamlErr
	}

	return err
}

// Error represents a YAML error. It includes the original error, and the
// [*token.Token] or [*yaml.Path] where the error occurred.
type Error struct {
	Err    error
	Path   *yaml.Path
	Token  *token.Token
	Source []byte
}

func NewError(err error, opts ...ErrorOpt) *Error {
	e := &Error{Err: err}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

type ErrorOpt func(e *Error)

func WithPath(path *yaml.Path) ErrorOpt {
	return func(e *Error) {
		e.Path = path
	}
}

func WithToken(tk *token.Token) ErrorOpt {
	return func(e *Error) {
		e.Token = tk
	}
}

func WithSource(source []byte) ErrorOpt {
	return func(e *Error) {
		e.Source = source
	}
}

func (e Error) Error() string {
	if e.Err == nil {
		return ""
	}

	tk := e.token()
	if tk == nil {
		if e.Path != nil {
			return fmt.Sprintf("error at %s: %v", e.Path.String(), e.Err)
		}

		return e.Err.Error()
	}

	var pp printer.Printer

	snippet := pp.PrintErrorToken(tk, false)

	return fmt.Sprintf("[%d:%d] %v:\n%s", tk.Position.Line, tk.Position.Column, e.Err, snippet)
}

func (e Error) Unwrap() error {
	return e.Err
}

// Position returns the 1-based line and column of the error in Source, if
// it is known.
func (e Error) Position() (line, column int, ok bool) {
	tk := e.token()
	if tk == nil || tk.Position == nil {
		return 0, 0, false
	}

	return tk.Position.Line, tk.Position.Column, true
}

// token returns Token, or the token Path points to in Source.
func (e Error) token() *token.Token {
	if e.Token != nil {
		return e.Token
	}
	if e.Path == nil || len(e.Source) == 0 {
		return nil
	}

	tk, err := tokenAt(e.Source, e.Path)
	if err != nil {
		slog.Debug("could not annotate source",
			slog.String("path", e.Path.String()),
			slog.Any("error", err),
		)

		return nil
	}

	return tk
}

// tokenAt returns the token for path in source. Mapping entries resolve to
// their key so the caret points at the offending field name.
func tokenAt(source []byte, path *yaml.Path) (*token.Token, error) {
	file, err := parser.ParseBytes(source, 0)
	if err != nil {
		return nil, fmt.Errorf("parse source: %w", err)
	}

	node, err := path.FilterFile(file)
	if err != nil {
		return nil, fmt.Errorf("filter source by path %s: %w", path, err)
	}

	if parent, key, ok := splitKey(path.String()); ok {
		if tk := mappingKey(file, parent, key); tk != nil {
			return tk, nil
		}
	}

	return node.GetToken(), nil
}

// splitKey splits "$.a.b" into "$.a" and "b". It fails for the root and for
// paths ending in a sequence index.
func splitKey(p string) (parent, key string, ok bool) {
	dot := strings.LastIndexByte(p, '.')
	if dot <= 0 || dot < strings.LastIndexByte(p, '[') {
		return "", "", false
	}

	return p[:dot], p[dot+1:], true
}

func mappingKey(file *ast.File, parent, key string) *token.Token {
	pp, err := yaml.PathString(parent)
	if err != nil {
		return nil
	}

	node, err := pp.FilterFile(file)
	if err != nil {
		return nil
	}

	mapping, ok := node.(*ast.MappingNode)
	if !ok {
		return nil
	}

	for _, v := range mapping.Values {
		if v.Key.String() == key {
			return v.Key.GetToken()
		}
	}

	return nil
}
